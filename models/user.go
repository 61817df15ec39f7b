package models

import (
	"time"
)

type User struct {
	ID          string `json:"id" gorm:"primaryKey;size:191"`
	Username    string `json:"username" gorm:"uniqueIndex;not null;size:50"`
	Password    string `json:"-" gorm:"not null;size:255"`
	Email       string `json:"email,omitempty" gorm:"size:255"`
	FirstName   string `json:"first_name" gorm:"not null;size:50"`
	LastName    string `json:"last_name" gorm:"not null;size:50"`
	Education   string `json:"education" gorm:"size:255"`
	Employment  string `json:"employment" gorm:"size:255"`
	Music       string `json:"music" gorm:"size:255"`
	Movie       string `json:"movie" gorm:"size:255"`
	Nationality string `json:"nationality" gorm:"size:255"`
	Birthday    string `json:"birthday" gorm:"size:10"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Posts    []Post    `json:"posts,omitempty" gorm:"foreignKey:UserID"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:UserID"`
}

// ProfileFields are the columns a user may change after registration.
// Username and names are fixed at registration time.
type ProfileFields struct {
	Education   string `json:"education" form:"education" binding:"max=255"`
	Employment  string `json:"employment" form:"employment" binding:"max=255"`
	Music       string `json:"music" form:"music" binding:"max=255"`
	Movie       string `json:"movie" form:"movie" binding:"max=255"`
	Nationality string `json:"nationality" form:"nationality" binding:"max=255"`
	Birthday    string `json:"birthday" form:"birthday" binding:"max=10"`
}
