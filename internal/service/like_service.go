package service

import (
	"context"

	"warbler/internal/models"
	"warbler/internal/repository"
)

// LikeService manages likes on messages.
type LikeService struct {
	likeRepo    repository.LikeRepository
	messageRepo repository.MessageRepository
}

// NewLikeService returns a new LikeService.
func NewLikeService(likeRepo repository.LikeRepository, messageRepo repository.MessageRepository) *LikeService {
	return &LikeService{likeRepo: likeRepo, messageRepo: messageRepo}
}

// Toggle flips the user's like on the message and reports the resulting
// state. Liking your own message is allowed.
func (s *LikeService) Toggle(ctx context.Context, userID, messageID uint) (liked bool, err error) {
	if _, err := s.messageRepo.GetByID(ctx, messageID, 0); err != nil {
		return false, err
	}
	return s.likeRepo.Toggle(ctx, userID, messageID)
}

// Like sets the like unconditionally; already liked is a no-op.
func (s *LikeService) Like(ctx context.Context, userID, messageID uint) error {
	if _, err := s.messageRepo.GetByID(ctx, messageID, 0); err != nil {
		return err
	}
	return s.likeRepo.Create(ctx, &models.Like{UserID: userID, MessageID: messageID})
}

// Unlike clears the like unconditionally; not liked is a no-op.
func (s *LikeService) Unlike(ctx context.Context, userID, messageID uint) error {
	if _, err := s.messageRepo.GetByID(ctx, messageID, 0); err != nil {
		return err
	}
	return s.likeRepo.Delete(ctx, userID, messageID)
}

// LikedMessages returns the messages the user has liked, newest like first.
func (s *LikeService) LikedMessages(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	return s.likeRepo.LikedMessages(ctx, userID, limit, offset)
}
