package auth

import (
	"context"

	"github.com/nilecare/advisory-backend/internal/entity"
)

type AuthUsecase interface {
	Login(ctx context.Context, email, password string) (*entity.TokenResponse, error)
	ParseToken(ctx context.Context, token string) (*entity.User, error)
}
