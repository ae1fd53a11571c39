package service

import (
	"context"
	"errors"
	"testing"

	"warbler/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userRepoStub struct {
	getByIDFn             func(context.Context, uint) (*models.User, error)
	getByIDWithMessagesFn func(context.Context, uint, int) (*models.User, error)
	getByEmailFn          func(context.Context, string) (*models.User, error)
	getByUsernameFn       func(context.Context, string) (*models.User, error)
	createFn              func(context.Context, *models.User) error
	updateFn              func(context.Context, *models.User) error
	deleteFn              func(context.Context, uint) error
	listFn                func(context.Context, int, int) ([]models.User, error)
	searchFn              func(context.Context, string, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDWithMessages(ctx context.Context, id uint, limit int) (*models.User, error) {
	return s.getByIDWithMessagesFn(ctx, id, limit)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Search(ctx context.Context, q string, limit, offset int) ([]models.User, error) {
	return s.searchFn(ctx, q, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:             func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByIDWithMessagesFn: func(context.Context, uint, int) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:          func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn:       func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:              func(context.Context, *models.User) error { return nil },
		updateFn:              func(context.Context, *models.User) error { return nil },
		deleteFn:              func(context.Context, uint) error { return nil },
		listFn:                func(context.Context, int, int) ([]models.User, error) { return nil, nil },
		searchFn:              func(context.Context, string, int, int) ([]models.User, error) { return nil, nil },
	}
}

type messageRepoStub struct {
	createFn      func(context.Context, *models.Message) error
	getByIDFn     func(context.Context, uint, uint) (*models.Message, error)
	getByUserIDFn func(context.Context, uint, int, int, uint) ([]models.Message, error)
	feedFn        func(context.Context, []uint, int, uint) ([]models.Message, error)
	deleteFn      func(context.Context, uint) error
}

func (s *messageRepoStub) Create(ctx context.Context, m *models.Message) error {
	return s.createFn(ctx, m)
}
func (s *messageRepoStub) GetByID(ctx context.Context, id, viewerID uint) (*models.Message, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *messageRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int, viewerID uint) ([]models.Message, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset, viewerID)
}
func (s *messageRepoStub) Feed(ctx context.Context, authorIDs []uint, limit int, viewerID uint) ([]models.Message, error) {
	return s.feedFn(ctx, authorIDs, limit, viewerID)
}
func (s *messageRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopMessageRepo() *messageRepoStub {
	return &messageRepoStub{
		createFn:  func(context.Context, *models.Message) error { return nil },
		getByIDFn: func(context.Context, uint, uint) (*models.Message, error) { return &models.Message{}, nil },
		getByUserIDFn: func(context.Context, uint, int, int, uint) ([]models.Message, error) {
			return nil, nil
		},
		feedFn:   func(context.Context, []uint, int, uint) ([]models.Message, error) { return nil, nil },
		deleteFn: func(context.Context, uint) error { return nil },
	}
}

type followRepoStub struct {
	createFn       func(context.Context, *models.Follow) error
	deleteFn       func(context.Context, uint, uint) error
	isFollowingFn  func(context.Context, uint, uint) (bool, error)
	followersFn    func(context.Context, uint) ([]models.User, error)
	followingFn    func(context.Context, uint) ([]models.User, error)
	followingIDsFn func(context.Context, uint) ([]uint, error)
}

func (s *followRepoStub) Create(ctx context.Context, f *models.Follow) error {
	return s.createFn(ctx, f)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followedID uint) error {
	return s.deleteFn(ctx, followerID, followedID)
}
func (s *followRepoStub) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followedID)
}
func (s *followRepoStub) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followersFn(ctx, userID)
}
func (s *followRepoStub) Following(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followingFn(ctx, userID)
}
func (s *followRepoStub) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.followingIDsFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:       func(context.Context, *models.Follow) error { return nil },
		deleteFn:       func(context.Context, uint, uint) error { return nil },
		isFollowingFn:  func(context.Context, uint, uint) (bool, error) { return false, nil },
		followersFn:    func(context.Context, uint) ([]models.User, error) { return nil, nil },
		followingFn:    func(context.Context, uint) ([]models.User, error) { return nil, nil },
		followingIDsFn: func(context.Context, uint) ([]uint, error) { return nil, nil },
	}
}

type likeRepoStub struct {
	createFn        func(context.Context, *models.Like) error
	deleteFn        func(context.Context, uint, uint) error
	existsFn        func(context.Context, uint, uint) (bool, error)
	toggleFn        func(context.Context, uint, uint) (bool, error)
	likedMessagesFn func(context.Context, uint, int, int) ([]models.Message, error)
}

func (s *likeRepoStub) Create(ctx context.Context, l *models.Like) error {
	return s.createFn(ctx, l)
}
func (s *likeRepoStub) Delete(ctx context.Context, userID, messageID uint) error {
	return s.deleteFn(ctx, userID, messageID)
}
func (s *likeRepoStub) Exists(ctx context.Context, userID, messageID uint) (bool, error) {
	return s.existsFn(ctx, userID, messageID)
}
func (s *likeRepoStub) Toggle(ctx context.Context, userID, messageID uint) (bool, error) {
	return s.toggleFn(ctx, userID, messageID)
}
func (s *likeRepoStub) LikedMessages(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	return s.likedMessagesFn(ctx, userID, limit, offset)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		createFn: func(context.Context, *models.Like) error { return nil },
		deleteFn: func(context.Context, uint, uint) error { return nil },
		existsFn: func(context.Context, uint, uint) (bool, error) { return false, nil },
		toggleFn: func(context.Context, uint, uint) (bool, error) { return false, nil },
		likedMessagesFn: func(context.Context, uint, int, int) ([]models.Message, error) {
			return nil, nil
		},
	}
}

// assertCode asserts err contains an AppError with the given code.
func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, models.HasCode(err, code), "expected code %s, got %T: %v", code, err, err)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}
