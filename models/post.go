package models

import (
	"time"
)

// Post is immutable once created; there is no update path and no UpdatedAt.
type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;index"`
	Content   string    `json:"content" gorm:"not null;size:500"`
	ImageFile string    `json:"image_file" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at"`

	User     User      `json:"user" gorm:"foreignKey:UserID"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID"`
}
