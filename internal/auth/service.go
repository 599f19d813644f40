// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/carterperez-dev/greensteps/internal/core"
	"github.com/carterperez-dev/greensteps/internal/middleware"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
)

type UserInfo struct {
	ID       int64
	Email    string
	Password string
}

type UserProvider interface {
	Create(ctx context.Context, email, storedPassword string) (*UserInfo, error)
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetIDByEmail(ctx context.Context, email string) (int64, error)
	UpdatePassword(ctx context.Context, id int64, storedPassword string) error
}

type Service struct {
	users  UserProvider
	hasher core.PasswordHasher
}

func NewService(users UserProvider, hasher core.PasswordHasher) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
	}
}

// Register stores a new account. The email is taken as given; callers
// decide what input to accept.
func (s *Service) Register(
	ctx context.Context,
	email, password string,
) (*UserInfo, error) {
	stored, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, email, stored)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Authenticate returns the user whose email and password both match.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(
	ctx context.Context,
	email, password string,
) (*UserInfo, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			s.hasher.VerifyMissing(password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, upgraded, err := s.hasher.Verify(password, user.Password)
	if err != nil {
		middleware.GetLogger(ctx).Warn("unreadable stored password",
			"user_id", user.ID,
			"error", err,
		)
		return nil, ErrInvalidCredentials
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	if upgraded != "" {
		if err := s.users.UpdatePassword(ctx, user.ID, upgraded); err != nil {
			middleware.GetLogger(ctx).Warn("password upgrade failed",
				"user_id", user.ID,
				"error", err,
			)
		} else {
			user.Password = upgraded
		}
	}

	return user, nil
}

// GetUserID wraps core.ErrNotFound when the email has no account.
func (s *Service) GetUserID(ctx context.Context, email string) (int64, error) {
	id, err := s.users.GetIDByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	return id, nil
}
