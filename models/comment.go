package models

import (
	"time"
)

type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	PostID    string    `json:"post_id" gorm:"not null;size:191;index"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;index"`
	Body      string    `json:"body" gorm:"not null;size:500"`
	CreatedAt time.Time `json:"created_at"`

	User User `json:"user" gorm:"foreignKey:UserID"`
}
