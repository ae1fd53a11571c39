package service

import (
	"context"
	"strings"

	"warbler/internal/models"
	"warbler/internal/repository"
)

// UserService exposes read operations over users.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers returns a page of users. A non-empty query narrows the result to
// usernames containing the query as a substring; an empty query lists
// everyone.
func (s *UserService) ListUsers(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.userRepo.List(ctx, limit, offset)
	}
	return s.userRepo.Search(ctx, query, limit, offset)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetUserWithMessages returns the user's profile together with their most
// recent messages.
func (s *UserService) GetUserWithMessages(ctx context.Context, id uint, limit int) (*models.User, error) {
	return s.userRepo.GetByIDWithMessages(ctx, id, limit)
}
