package models

import (
	"time"
)

// Follow is a directed edge meaning "follower sees followed's messages in
// their feed". The (follower, followed) pair is unique; the self-edge is
// rejected at the service layer before it ever reaches storage.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follower_followed" json:"follower_id"`
	FollowedID uint      `gorm:"not null;uniqueIndex:idx_follower_followed" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Follower User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followed User `gorm:"foreignKey:FollowedID" json:"followed,omitempty"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
