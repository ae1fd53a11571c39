package repository

import (
	"context"

	"warbler/internal/cache"
	"warbler/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines persistence operations for likes.
type LikeRepository interface {
	Create(ctx context.Context, like *models.Like) error
	Delete(ctx context.Context, userID, messageID uint) error
	Exists(ctx context.Context, userID, messageID uint) (bool, error)
	Toggle(ctx context.Context, userID, messageID uint) (liked bool, err error)
	LikedMessages(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository returns a new LikeRepository implementation.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create inserts the like if it does not already exist. Idempotent under
// concurrent requests thanks to the unique (user_id, message_id) index.
func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(like).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateMessage(ctx, like.MessageID)
	// The liker's cached feed bakes their Liked flags.
	cache.InvalidateFeed(ctx, like.UserID)
	return nil
}

// Delete removes the like. Removing a like that is not there is a no-op.
func (r *likeRepository) Delete(ctx context.Context, userID, messageID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Delete(&models.Like{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateMessage(ctx, messageID)
	cache.InvalidateFeed(ctx, userID)
	return nil
}

func (r *likeRepository) Exists(ctx context.Context, userID, messageID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Toggle flips the like state in one transaction and reports the resulting
// state. The delete-first strategy keeps concurrent toggles from double
// counting: whichever transaction deletes the row wins the "unlike" side and
// the loser's insert is absorbed by ON CONFLICT DO NOTHING.
func (r *likeRepository) Toggle(ctx context.Context, userID, messageID uint) (bool, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND message_id = ?", userID, messageID).
			Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}
		liked = true
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Like{UserID: userID, MessageID: messageID}).Error
	})
	if err != nil {
		return false, models.NewInternalError(err)
	}
	cache.InvalidateMessage(ctx, messageID)
	cache.InvalidateFeed(ctx, userID)
	return liked, nil
}

// LikedMessages returns the messages a user has liked, newest like first.
func (r *likeRepository) LikedMessages(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Table("messages").
		Joins("JOIN likes l ON messages.id = l.message_id").
		Where("l.user_id = ?", userID).
		Order("l.created_at DESC").
		Limit(limit).
		Offset(offset).
		Preload("User").
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}
