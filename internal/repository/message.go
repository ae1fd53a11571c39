package repository

import (
	"context"
	"errors"

	"warbler/internal/cache"
	"warbler/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines persistence operations for messages.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Message, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int, viewerID uint) ([]models.Message, error)
	Feed(ctx context.Context, authorIDs []uint, limit int, viewerID uint) ([]models.Message, error)
	Delete(ctx context.Context, id uint) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository returns a new MessageRepository implementation.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateFeed(ctx, message.UserID)
	return nil
}

// GetByID reads the message through the cache. The cached copy carries the
// like count but never a viewer's Liked flag; that is resolved fresh per
// request since the same key serves every viewer.
func (r *messageRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Message, error) {
	var message models.Message

	err := cache.Aside(ctx, cache.MessageKey(id), &message, cache.MessageTTL, func() error {
		if err := r.db.WithContext(ctx).
			Preload("User").
			First(&message, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Message", id)
			}
			return models.NewInternalError(err)
		}
		msgs := []models.Message{message}
		if err := r.attachLikeData(ctx, msgs, 0); err != nil {
			return err
		}
		message = msgs[0]
		return nil
	})
	if err != nil {
		return nil, err
	}

	if viewerID != 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.Like{}).
			Where("user_id = ? AND message_id = ?", viewerID, id).
			Count(&count).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
		message.Liked = count > 0
	}
	return &message, nil
}

func (r *messageRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int, viewerID uint) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.attachLikeData(ctx, messages, viewerID); err != nil {
		return nil, err
	}
	return messages, nil
}

// Feed returns the newest messages authored by any of authorIDs, most recent
// first. Callers include the viewer's own ID in authorIDs so their posts
// appear alongside the accounts they follow.
//
// The result is cached per viewer for FeedTTL, so the viewer's Liked flags
// may be baked in. Follow changes, own posts and own like toggles
// invalidate the viewer's key; a followee's new message shows up when the
// short TTL lapses rather than via fan-out invalidation.
func (r *messageRepository) Feed(ctx context.Context, authorIDs []uint, limit int, viewerID uint) ([]models.Message, error) {
	if len(authorIDs) == 0 {
		return []models.Message{}, nil
	}
	if viewerID == 0 {
		return r.feedQuery(ctx, authorIDs, limit, viewerID)
	}

	var messages []models.Message
	err := cache.Aside(ctx, cache.FeedKey(viewerID), &messages, cache.FeedTTL, func() error {
		got, err := r.feedQuery(ctx, authorIDs, limit, viewerID)
		if err != nil {
			return err
		}
		messages = got
		return nil
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) feedQuery(ctx context.Context, authorIDs []uint, limit int, viewerID uint) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id IN ?", authorIDs).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.attachLikeData(ctx, messages, viewerID); err != nil {
		return nil, err
	}
	return messages, nil
}

// Delete removes the message and its likes in a single transaction.
func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Message{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateMessage(ctx, id)
	return nil
}

type likeCount struct {
	MessageID uint
	Count     int
}

// attachLikeData fills the computed LikesCount and Liked fields for a page of
// messages with two grouped queries instead of one per row.
func (r *messageRepository) attachLikeData(ctx context.Context, messages []models.Message, viewerID uint) error {
	if len(messages) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}

	var counts []likeCount
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Select("message_id, COUNT(*) as count").
		Where("message_id IN ?", ids).
		Group("message_id").
		Scan(&counts).Error; err != nil {
		return models.NewInternalError(err)
	}
	countByID := make(map[uint]int, len(counts))
	for _, c := range counts {
		countByID[c.MessageID] = c.Count
	}

	likedByID := make(map[uint]bool)
	if viewerID != 0 {
		var likedIDs []uint
		if err := r.db.WithContext(ctx).
			Model(&models.Like{}).
			Where("user_id = ? AND message_id IN ?", viewerID, ids).
			Pluck("message_id", &likedIDs).Error; err != nil {
			return models.NewInternalError(err)
		}
		for _, id := range likedIDs {
			likedByID[id] = true
		}
	}

	for i := range messages {
		messages[i].LikesCount = countByID[messages[i].ID]
		messages[i].Liked = likedByID[messages[i].ID]
	}
	return nil
}
