package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/nilecare/advisory-backend/internal/config"
	"github.com/nilecare/advisory-backend/internal/entity"
	"go.uber.org/zap"
)

const tokenTypeBearer = "bearer"

// AuthUsecase issues and verifies HS256 access tokens
type AuthUsecase struct {
	cfg      config.AuthConfig
	userRepo UserRepository
	now      func() time.Time
	logger   *zap.Logger
}

func NewUsecase(cfg config.AuthConfig, userRepo UserRepository, logger *zap.Logger) *AuthUsecase {
	return &AuthUsecase{
		cfg:      cfg,
		userRepo: userRepo,
		now:      time.Now,
		logger:   logger,
	}
}

// Authenticate checks the credentials. Unknown users and wrong passwords
// both return entity.ErrInvalidCredentials.
func (uc *AuthUsecase) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, entity.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !VerifyPassword(password, user.HashedPassword) {
		ctxzap.Info(ctx, "password mismatch", zap.String("user_id", user.ID))
		return nil, entity.ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates and issues an access token
func (uc *AuthUsecase) Login(ctx context.Context, email, password string) (*entity.TokenResponse, error) {
	user, err := uc.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	token, err := uc.IssueToken(user)
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "access token issued", zap.String("user_id", user.ID))

	return token, nil
}

func (uc *AuthUsecase) IssueToken(user *entity.User) (*entity.TokenResponse, error) {
	now := uc.now()
	claims := entity.Claims{
		IsAdmin: boolToInt(user.IsAdmin),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(uc.cfg.AccessTokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(uc.cfg.SecretKey))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &entity.TokenResponse{
		AccessToken: signed,
		TokenType:   tokenTypeBearer,
	}, nil
}

// ParseToken validates the token and loads its active user
func (uc *AuthUsecase) ParseToken(ctx context.Context, token string) (*entity.User, error) {
	var claims entity.Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return []byte(uc.cfg.SecretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(uc.now),
	)
	if err != nil {
		ctxzap.Debug(ctx, "token rejected", zap.Error(err))
		return nil, entity.ErrInvalidToken
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return nil, entity.ErrInvalidToken
	}

	user, err := uc.userRepo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, entity.ErrInvalidToken
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if user.Disabled {
		return nil, entity.ErrInactiveUser
	}

	return user, nil
}

// CreateUser stores a new user with a bcrypt hashed password
func (uc *AuthUsecase) CreateUser(ctx context.Context, email, fullName, password string, isAdmin bool) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email", entity.ErrMissingField)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password", entity.ErrMissingField)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.Create(ctx, entity.User{
		Email:          email,
		FullName:       strings.TrimSpace(fullName),
		HashedPassword: hash,
		IsAdmin:        isAdmin,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	ctxzap.Info(ctx, "user created", zap.String("user_id", user.ID), zap.Bool("is_admin", isAdmin))

	return user, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
