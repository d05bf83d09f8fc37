// File: internal/user/service.go
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kudos_web/internal/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service is the credential store used by the route handlers.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetOtherUsers(ctx context.Context, id uuid.UUID) ([]User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input ProfileInput) error
	SetProfilePicture(ctx context.Context, id uuid.UUID, url string) (previous string, err error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	ProfilePictures(ctx context.Context) ([]string, error)
}

// ServiceImplementation implements Service on top of a Repository.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new user service.
func NewService(repo Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{repo: repo, logger: logger}
}

// Register creates a user and its profile. The email must not be taken.
func (s *ServiceImplementation) Register(ctx context.Context, input RegisterInput) (*User, error) {
	count, err := s.repo.CountByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user by email: %w", err)
	}
	if count > 0 {
		return nil, ErrUserExists
	}

	hashedPassword, err := common.HashPassword(input.Password)
	if err != nil {
		s.logger.Error("Failed to hash password during registration", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Profile: Profile{
			FirstName: strings.TrimSpace(input.FirstName),
			LastName:  strings.TrimSpace(input.LastName),
		},
	}
	if err := s.repo.Create(ctx, u); err != nil {
		// Lost the race against a concurrent registration for the same address.
		if errors.Is(err, ErrUserExists) {
			return nil, ErrUserExists
		}
		s.logger.Error("Failed to create user in repository", zap.Error(err), zap.String("email", u.Email))
		return nil, err
	}

	s.logger.Info("User registered successfully", zap.String("userID", u.ID.String()))
	return u, nil
}

// Login returns the user when email and password match. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *ServiceImplementation) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.logger.Info("User not found during login", zap.String("email", NormalizeEmail(email)))
			return nil, ErrInvalidLogin
		}
		s.logger.Error("Error finding user by email during login", zap.Error(err))
		return nil, fmt.Errorf("login lookup: %w", err)
	}
	if !common.CheckPasswordHash(password, u.PasswordHash) {
		s.logger.Warn("Invalid password attempt", zap.String("userID", u.ID.String()))
		return nil, ErrInvalidLogin
	}
	return u, nil
}

func (s *ServiceImplementation) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			s.logger.Error("Error finding user by ID", zap.Error(err), zap.String("userID", id.String()))
		}
		return nil, err
	}
	return u, nil
}

// GetOtherUsers lists everybody but id, ordered by first name.
func (s *ServiceImplementation) GetOtherUsers(ctx context.Context, id uuid.UUID) ([]User, error) {
	return s.repo.ListOthers(ctx, id)
}

func (s *ServiceImplementation) UpdateProfile(ctx context.Context, id uuid.UUID, input ProfileInput) error {
	if err := s.repo.UpdateProfile(ctx, id, input); err != nil {
		return err
	}
	s.logger.Info("Profile updated", zap.String("userID", id.String()))
	return nil
}

// SetProfilePicture stores url as the user's avatar and returns the one it replaced.
func (s *ServiceImplementation) SetProfilePicture(ctx context.Context, id uuid.UUID, url string) (string, error) {
	return s.repo.SwapProfilePicture(ctx, id, url)
}

// DeleteUser removes the user, their profile and every kudo they sent or received.
func (s *ServiceImplementation) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("User deleted", zap.String("userID", id.String()))
	return nil
}

func (s *ServiceImplementation) ProfilePictures(ctx context.Context) ([]string, error) {
	return s.repo.ProfilePictures(ctx)
}
