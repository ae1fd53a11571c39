package service

import (
	"context"

	"warbler/internal/models"
	"warbler/internal/repository"
)

// FollowService manages the follow graph.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// Follow creates the follower -> target edge. Following yourself is
// rejected; following someone you already follow is a no-op.
func (s *FollowService) Follow(ctx context.Context, followerID, targetID uint) error {
	if followerID == targetID {
		return models.NewSelfFollowError("follow")
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}
	return s.followRepo.Create(ctx, &models.Follow{
		FollowerID: followerID,
		FollowedID: targetID,
	})
}

// Unfollow removes the follower -> target edge. Unfollowing someone you do
// not follow is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, followerID, targetID uint) error {
	if followerID == targetID {
		return models.NewSelfFollowError("unfollow")
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}
	return s.followRepo.Delete(ctx, followerID, targetID)
}

// Followers returns the users following userID.
func (s *FollowService) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Followers(ctx, userID)
}

// Following returns the users userID follows.
func (s *FollowService) Following(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Following(ctx, userID)
}

// IsFollowing reports whether followerID follows targetID.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, targetID uint) (bool, error) {
	return s.followRepo.IsFollowing(ctx, followerID, targetID)
}
