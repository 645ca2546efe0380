package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nilecare/advisory-backend/internal/entity"
)

const uniqueViolation = "23505"

// UserRepository defines the interface for user persistence
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, user entity.User) (*entity.User, error)
}

var _ UserRepository = &UserPostgres{}

type UserPostgres struct {
	db *pgxpool.Pool
}

func NewUserPostgres(db *pgxpool.Pool) *UserPostgres {
	return &UserPostgres{
		db: db,
	}
}

func (r *UserPostgres) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `
SELECT id::text, email, full_name, hashed_password, disabled, is_admin, created_at
FROM users
WHERE email = $1`, strings.ToLower(strings.TrimSpace(email)))

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrUserNotFound
		}
		return nil, wrapStoreError("get user", err)
	}

	return user, nil
}

func (r *UserPostgres) Create(ctx context.Context, user entity.User) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `
INSERT INTO users (email, full_name, hashed_password, disabled, is_admin)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text, email, full_name, hashed_password, disabled, is_admin, created_at`,
		strings.ToLower(strings.TrimSpace(user.Email)), user.FullName, user.HashedPassword, user.Disabled, user.IsAdmin)

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("create user %s: %w", user.Email, entity.ErrUserExists)
		}
		return nil, wrapStoreError("create user", err)
	}

	return created, nil
}
