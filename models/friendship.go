package models

import (
	"time"

	"gorm.io/gorm"
)

// Friendship is stored once per pair with User1ID < User2ID and queried
// in both directions. The composite unique index makes a concurrent
// duplicate add fail at the storage layer instead of racing a lookup.
type Friendship struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	User1ID   string    `json:"user1_id" gorm:"not null;size:191;uniqueIndex:uk_friendships_pair"`
	User2ID   string    `json:"user2_id" gorm:"not null;size:191;uniqueIndex:uk_friendships_pair"`
	CreatedAt time.Time `json:"created_at"`

	User1 User `json:"user1,omitempty" gorm:"foreignKey:User1ID"`
	User2 User `json:"user2,omitempty" gorm:"foreignKey:User2ID"`
}

// BeforeCreate normalizes the pair ordering so (a,b) and (b,a) hit the
// same unique index entry.
func (f *Friendship) BeforeCreate(_ *gorm.DB) error {
	if f.User1ID > f.User2ID {
		f.User1ID, f.User2ID = f.User2ID, f.User1ID
	}
	return nil
}
