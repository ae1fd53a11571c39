package service

import (
	"context"
	"strings"

	"warbler/internal/models"
	"warbler/internal/repository"
)

// FeedLimit caps how many messages a single feed request returns.
const FeedLimit = 100

// MaxMessageLength matches the column limit enforced at the form layer.
const MaxMessageLength = 140

// MessageService manages message lifecycle and the home feed.
type MessageService struct {
	messageRepo repository.MessageRepository
	followRepo  repository.FollowRepository
}

// NewMessageService returns a new MessageService.
func NewMessageService(messageRepo repository.MessageRepository, followRepo repository.FollowRepository) *MessageService {
	return &MessageService{messageRepo: messageRepo, followRepo: followRepo}
}

// Post creates a message owned by userID. Text must be non-empty after
// trimming and within the length limit; the original text is stored as sent.
func (s *MessageService) Post(ctx context.Context, userID uint, text string) (*models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, models.NewEmptyTextError()
	}
	if len(text) > MaxMessageLength {
		return nil, models.NewValidationError("Message must be 140 characters or fewer")
	}

	message := &models.Message{
		Text:   text,
		UserID: userID,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// Get returns a single message, with like data computed for the viewer.
// viewerID zero means anonymous.
func (s *MessageService) Get(ctx context.Context, id uint, viewerID uint) (*models.Message, error) {
	return s.messageRepo.GetByID(ctx, id, viewerID)
}

// MessagesByUser returns a page of one user's messages, newest first.
func (s *MessageService) MessagesByUser(ctx context.Context, userID uint, limit, offset int, viewerID uint) ([]models.Message, error) {
	return s.messageRepo.GetByUserID(ctx, userID, limit, offset, viewerID)
}

// Delete removes a message. Only the owner may delete it.
func (s *MessageService) Delete(ctx context.Context, userID, messageID uint) error {
	message, err := s.messageRepo.GetByID(ctx, messageID, 0)
	if err != nil {
		return err
	}
	if message.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own messages")
	}
	return s.messageRepo.Delete(ctx, messageID)
}

// Feed returns the newest messages from the user and the accounts they
// follow, most recent first, capped at FeedLimit.
func (s *MessageService) Feed(ctx context.Context, userID uint) ([]models.Message, error) {
	followingIDs, err := s.followRepo.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	authorIDs := append(followingIDs, userID)
	return s.messageRepo.Feed(ctx, authorIDs, FeedLimit, userID)
}
