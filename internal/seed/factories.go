// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"warbler/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultPassword is the password every seeded account gets, so demo logins
// are predictable.
const DefaultPassword = "password123"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a user with fake profile data. Overrides run before
// the insert.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: gofakeit.Username(),
		Email:    gofakeit.Email(),
		Password: string(hashed),
		ImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/400/400", gofakeit.UUID()),
		Bio:      gofakeit.Sentence(8),
		Location: gofakeit.City(),
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateMessage persists a short message for the user with a created_at
// spread over the past maxDays days.
func (f *Factory) CreateMessage(user *models.User, maxDays int) (*models.Message, error) {
	if maxDays <= 0 {
		maxDays = 30
	}

	text := gofakeit.Sentence(f.rand.Intn(12) + 3)
	if len(text) > 140 {
		text = text[:140]
	}

	message := &models.Message{
		Text:   text,
		UserID: user.ID,
		CreatedAt: time.Now().
			Add(-time.Duration(f.rand.Intn(maxDays*24*60)) * time.Minute),
	}
	if err := f.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

// CreateFollow persists a follow edge; existing edges are left alone.
func (f *Factory) CreateFollow(followerID, followedID uint) error {
	if followerID == followedID {
		return nil
	}
	return f.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Follow{FollowerID: followerID, FollowedID: followedID}).Error
}

// CreateLike persists a like; existing likes are left alone.
func (f *Factory) CreateLike(userID, messageID uint) error {
	return f.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Like{UserID: userID, MessageID: messageID}).Error
}
