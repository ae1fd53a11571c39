package models

import (
	"time"
)

// Message is a short post authored by exactly one user. The creation
// timestamp is server-assigned and never updated; ownership never changes.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"-" json:"likes_count"`
	// Liked indicates whether the current requesting user liked this message (computed)
	Liked bool `gorm:"-" json:"liked"`
}
