package repository

import (
	"context"

	"warbler/internal/cache"
	"warbler/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines persistence operations for the follow graph.
type FollowRepository interface {
	Create(ctx context.Context, follow *models.Follow) error
	Delete(ctx context.Context, followerID, followedID uint) error
	IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error)
	Followers(ctx context.Context, userID uint) ([]models.User, error)
	Following(ctx context.Context, userID uint) ([]models.User, error)
	FollowingIDs(ctx context.Context, userID uint) ([]uint, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository returns a new FollowRepository implementation.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create inserts the edge if it does not already exist. The unique index on
// (follower_id, followed_id) plus ON CONFLICT DO NOTHING makes the operation
// idempotent under concurrent requests.
func (r *followRepository) Create(ctx context.Context, follow *models.Follow) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(follow).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateFeed(ctx, follow.FollowerID)
	return nil
}

// Delete removes the edge. Deleting an edge that is not there is a no-op.
func (r *followRepository) Delete(ctx context.Context, followerID, followedID uint) error {
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateFeed(ctx, followerID)
	return nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows f ON users.id = f.follower_id").
		Where("f.followed_id = ?", userID).
		Order("users.id").
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *followRepository) Following(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows f ON users.id = f.followed_id").
		Where("f.follower_id = ?", userID).
		Order("users.id").
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *followRepository) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("followed_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}
