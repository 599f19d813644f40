// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/greensteps/internal/core"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetIDByEmail(ctx context.Context, email string) (int64, error)
	UpdatePassword(ctx context.Context, id int64, password string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	query := r.db.Rebind(`
		INSERT INTO users (email, password)
		VALUES (?, ?)
		RETURNING id`)

	err := r.db.GetContext(ctx, &user.ID, query, user.Email, user.Password)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := r.db.Rebind(`
		SELECT id, email, COALESCE(password, '') AS password
		FROM users
		WHERE email = ?`)

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *repository) GetIDByEmail(
	ctx context.Context,
	email string,
) (int64, error) {
	query := r.db.Rebind(`SELECT id FROM users WHERE email = ?`)

	var id int64
	err := r.db.GetContext(ctx, &id, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("get user id: %w", core.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("get user id: %w", err)
	}

	return id, nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id int64,
	password string,
) error {
	query := r.db.Rebind(`UPDATE users SET password = ? WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, password, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}

	return nil
}
