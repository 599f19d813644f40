// AngelaMos | 2026
// service.go

package user

import (
	"context"

	"github.com/carterperez-dev/greensteps/internal/auth"
)

var _ auth.UserProvider = (*Service)(nil)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetIDByEmail(ctx context.Context, email string) (int64, error) {
	return s.repo.GetIDByEmail(ctx, email)
}

// Create stores email exactly as given. Accounts are matched
// case-sensitively.
func (s *Service) Create(
	ctx context.Context,
	email, storedPassword string,
) (*auth.UserInfo, error) {
	user := &User{
		Email:    email,
		Password: storedPassword,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	id int64,
	storedPassword string,
) error {
	return s.repo.UpdatePassword(ctx, id, storedPassword)
}

func (s *Service) GetMe(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:       u.ID,
		Email:    u.Email,
		Password: u.Password,
	}
}
