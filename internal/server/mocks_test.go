package server

import (
	"context"

	"warbler/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDWithMessages(ctx context.Context, id uint, limit int) (*models.User, error) {
	args := m.Called(ctx, id, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Search(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, query, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// MockMessageRepository is a mock of the MessageRepository interface
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *models.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) GetByID(ctx context.Context, id, viewerID uint) (*models.Message, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockMessageRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int, viewerID uint) ([]models.Message, error) {
	args := m.Called(ctx, userID, limit, offset, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockMessageRepository) Feed(ctx context.Context, authorIDs []uint, limit int, viewerID uint) ([]models.Message, error) {
	args := m.Called(ctx, authorIDs, limit, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockMessageRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFollowRepository is a mock of the FollowRepository interface
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Create(ctx context.Context, follow *models.Follow) error {
	args := m.Called(ctx, follow)
	return args.Error(0)
}

func (m *MockFollowRepository) Delete(ctx context.Context, followerID, followedID uint) error {
	args := m.Called(ctx, followerID, followedID)
	return args.Error(0)
}

func (m *MockFollowRepository) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	args := m.Called(ctx, followerID, followedID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockFollowRepository) Following(ctx context.Context, userID uint) ([]models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockFollowRepository) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

// MockLikeRepository is a mock of the LikeRepository interface
type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Create(ctx context.Context, like *models.Like) error {
	args := m.Called(ctx, like)
	return args.Error(0)
}

func (m *MockLikeRepository) Delete(ctx context.Context, userID, messageID uint) error {
	args := m.Called(ctx, userID, messageID)
	return args.Error(0)
}

func (m *MockLikeRepository) Exists(ctx context.Context, userID, messageID uint) (bool, error) {
	args := m.Called(ctx, userID, messageID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) Toggle(ctx context.Context, userID, messageID uint) (bool, error) {
	args := m.Called(ctx, userID, messageID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) LikedMessages(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}
