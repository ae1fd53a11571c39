package seed

import (
	"fmt"

	"warbler/internal/models"

	"gorm.io/gorm"
)

// Options controls the size of a demo dataset.
type Options struct {
	Users           int
	MessagesPerUser int
	FollowsPerUser  int
	LikesPerUser    int
	MaxDays         int
}

// DefaultOptions is a small but lively demo mesh.
func DefaultOptions() Options {
	return Options{
		Users:           25,
		MessagesPerUser: 8,
		FollowsPerUser:  6,
		LikesPerUser:    10,
		MaxDays:         30,
	}
}

// Demo populates the database with a random social mesh: users, their
// messages, a follow graph and scattered likes.
func Demo(db *gorm.DB, opts Options) error {
	f := NewFactory(db)

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}

	var messages []*models.Message
	for _, user := range users {
		for i := 0; i < opts.MessagesPerUser; i++ {
			message, err := f.CreateMessage(user, opts.MaxDays)
			if err != nil {
				return fmt.Errorf("seed message: %w", err)
			}
			messages = append(messages, message)
		}
	}

	for _, user := range users {
		for i := 0; i < opts.FollowsPerUser; i++ {
			target := users[f.rand.Intn(len(users))]
			if err := f.CreateFollow(user.ID, target.ID); err != nil {
				return fmt.Errorf("seed follow: %w", err)
			}
		}
		for i := 0; i < opts.LikesPerUser && len(messages) > 0; i++ {
			message := messages[f.rand.Intn(len(messages))]
			if err := f.CreateLike(user.ID, message.ID); err != nil {
				return fmt.Errorf("seed like: %w", err)
			}
		}
	}

	return nil
}
