// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// DefaultImageURL is applied at signup when no profile image is supplied.
const DefaultImageURL = "/static/images/default-pic.png"

// User represents a registered account. The password column holds a bcrypt
// hash and is never serialized.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"unique;not null" json:"username"`
	Email          string    `gorm:"unique;not null" json:"email"`
	Password       string    `gorm:"not null" json:"-"`
	ImageURL       string    `gorm:"not null;default:'/static/images/default-pic.png'" json:"image_url"`
	HeaderImageURL string    `json:"header_image_url"`
	Bio            string    `json:"bio"`
	Location       string    `json:"location"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Messages       []Message `gorm:"foreignKey:UserID" json:"messages,omitempty"`
}
