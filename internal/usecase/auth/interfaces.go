package auth

import (
	"context"

	"github.com/nilecare/advisory-backend/internal/entity"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, user entity.User) (*entity.User, error)
}
