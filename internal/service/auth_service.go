// Package service contains the application's business logic.
package service

import (
	"context"
	"errors"
	"strings"

	"warbler/internal/models"
	"warbler/internal/repository"
	"warbler/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the username does not exist, so the
// unknown-user path costs the same as a real bcrypt check.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("warbler-dummy-password"), bcrypt.DefaultCost)

// AuthService handles signup, credential checks, profile updates and
// account deletion.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService returns a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// SignupInput carries the fields accepted at registration.
type SignupInput struct {
	Username string
	Email    string
	Password string
	ImageURL string
}

// Signup validates the input, checks both unique columns up front so a
// request that collides on username AND email reports both failures at
// once, then stores the user with a bcrypt password hash.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	var dupErrs []error
	if existing, err := s.userRepo.GetByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if existing != nil {
		dupErrs = append(dupErrs, models.NewDuplicateUsernameError())
	}
	if existing, err := s.userRepo.GetByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		dupErrs = append(dupErrs, models.NewDuplicateEmailError())
	}
	if len(dupErrs) > 0 {
		return nil, errors.Join(dupErrs...)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	imageURL := in.ImageURL
	if imageURL == "" {
		imageURL = models.DefaultImageURL
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hashed),
		ImageURL: imageURL,
	}

	// The unique indexes close the race between the pre-checks and the
	// insert; the repository translates a violation back into the same
	// duplicate errors.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies the username/password pair. Unknown username and
// wrong password both return the identical authentication error.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, models.NewAuthenticationFailedError()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewAuthenticationFailedError()
	}
	return user, nil
}

// UpdateProfileInput carries the editable profile fields. Password is the
// user's CURRENT password, required to confirm the edit.
type UpdateProfileInput struct {
	Username       string
	Email          string
	ImageURL       string
	HeaderImageURL string
	Bio            string
	Location       string
	Password       string
}

// UpdateProfile re-authenticates with the current password, then applies the
// edits. Uniqueness checks exclude the user's own row so saving an unchanged
// username or email is not a conflict.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, models.NewAuthenticationFailedError()
	}

	var dupErrs []error
	if in.Username != "" && in.Username != user.Username {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if existing, err := s.userRepo.GetByUsername(ctx, in.Username); err != nil {
			return nil, err
		} else if existing != nil && existing.ID != userID {
			dupErrs = append(dupErrs, models.NewDuplicateUsernameError())
		}
	}
	if in.Email != "" && in.Email != user.Email {
		if err := validation.ValidateEmail(in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if existing, err := s.userRepo.GetByEmail(ctx, in.Email); err != nil {
			return nil, err
		} else if existing != nil && existing.ID != userID {
			dupErrs = append(dupErrs, models.NewDuplicateEmailError())
		}
	}
	if len(dupErrs) > 0 {
		return nil, errors.Join(dupErrs...)
	}

	if in.Username != "" {
		user.Username = in.Username
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.ImageURL != "" {
		user.ImageURL = in.ImageURL
	}
	if in.HeaderImageURL != "" {
		user.HeaderImageURL = in.HeaderImageURL
	}
	user.Bio = in.Bio
	user.Location = in.Location

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the account with all its messages, likes and follow
// edges.
func (s *AuthService) DeleteUser(ctx context.Context, userID uint) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}
