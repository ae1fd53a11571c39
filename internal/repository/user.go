// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"warbler/internal/cache"
	"warbler/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByIDWithMessages(ctx context.Context, id uint, limit int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	Search(ctx context.Context, query string, limit, offset int) ([]models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// userCacheEntry mirrors models.User for Redis storage. The model hides the
// password hash from JSON, so marshaling the model itself would strip the
// credential on every cache round trip and break current-password checks.
type userCacheEntry struct {
	ID             uint      `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Password       string    `json:"password"`
	ImageURL       string    `json:"image_url"`
	HeaderImageURL string    `json:"header_image_url"`
	Bio            string    `json:"bio"`
	Location       string    `json:"location"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func newUserCacheEntry(u *models.User) userCacheEntry {
	return userCacheEntry{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Password:       u.Password,
		ImageURL:       u.ImageURL,
		HeaderImageURL: u.HeaderImageURL,
		Bio:            u.Bio,
		Location:       u.Location,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (e userCacheEntry) user() *models.User {
	return &models.User{
		ID:             e.ID,
		Username:       e.Username,
		Email:          e.Email,
		Password:       e.Password,
		ImageURL:       e.ImageURL,
		HeaderImageURL: e.HeaderImageURL,
		Bio:            e.Bio,
		Location:       e.Location,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var entry userCacheEntry

	err := cache.Aside(ctx, cache.UserKey(id), &entry, cache.UserTTL, func() error {
		var user models.User
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		entry = newUserCacheEntry(&user)
		return nil
	})

	if err != nil {
		return nil, err
	}
	return entry.user(), nil
}

func (r *userRepository) GetByIDWithMessages(ctx context.Context, id uint, limit int) (*models.User, error) {
	var user models.User
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	if err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC").Limit(limit)
		}).
		Preload("Messages.User").
		First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return translateUserUniqueError(err)
		}
		return models.NewInternalError(err)
	}
	return nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

// translateUserUniqueError maps a unique violation on the users table to the
// offending column. The constraint name embeds the column, so string matching
// is enough to tell username from email. This is only a backstop for races;
// the service pre-checks both columns to report duplicates together.
func translateUserUniqueError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "username"):
		return models.NewDuplicateUsernameError()
	case strings.Contains(msg, "email"):
		return models.NewDuplicateEmailError()
	default:
		return models.NewValidationError("User already exists")
	}
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return translateUserUniqueError(err)
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

// Delete removes the user and everything hanging off them in one
// transaction: likes the user gave, likes received on their messages,
// follow edges on either side, their messages, then the row itself.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id IN (?)",
			tx.Model(&models.Message{}).Select("id").Where("user_id = ?", id),
		).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR followed_id = ?", id, id).Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, id)
	cache.InvalidateFeed(ctx, id)
	return nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) Search(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	var users []models.User
	pattern := "%" + query + "%"
	if err := r.db.WithContext(ctx).
		Where("username LIKE ?", pattern).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
