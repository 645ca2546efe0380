package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nilecare/advisory-backend/internal/config"
	"github.com/nilecare/advisory-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memUserRepo struct {
	users map[string]*entity.User
	err   error
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[email]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	return u, nil
}

func (r *memUserRepo) Create(ctx context.Context, user entity.User) (*entity.User, error) {
	if _, ok := r.users[user.Email]; ok {
		return nil, entity.ErrUserExists
	}
	user.ID = "user-" + user.Email
	r.users[user.Email] = &user
	return &user, nil
}

func newTestUsecase(t *testing.T) (*AuthUsecase, *memUserRepo) {
	t.Helper()

	repo := &memUserRepo{users: map[string]*entity.User{}}
	uc := NewUsecase(config.AuthConfig{SecretKey: "test-secret", AccessTokenTTL: 30 * time.Minute}, repo, zap.NewNop())

	_, err := uc.CreateUser(context.Background(), "Farmer@Example.com", "Abebe", "s3cret", false)
	require.NoError(t, err)

	return uc, repo
}

func TestLoginAndParseToken(t *testing.T) {
	uc, _ := newTestUsecase(t)
	ctx := context.Background()

	token, err := uc.Login(ctx, "farmer@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)

	user, err := uc.ParseToken(ctx, token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "farmer@example.com", user.Email)
	assert.Equal(t, "Abebe", user.FullName)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	uc, _ := newTestUsecase(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, "farmer@example.com", "wrong")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)

	_, err = uc.Login(ctx, "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestLogin_StoreFailureIsNotCredentialsError(t *testing.T) {
	uc, repo := newTestUsecase(t)
	repo.err = errors.New("connection reset")

	_, err := uc.Login(context.Background(), "farmer@example.com", "s3cret")
	require.Error(t, err)
	assert.NotErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestParseToken_Expired(t *testing.T) {
	uc, _ := newTestUsecase(t)
	issuedAt := time.Now().Add(-time.Hour)
	uc.now = func() time.Time { return issuedAt }

	token, err := uc.Login(context.Background(), "farmer@example.com", "s3cret")
	require.NoError(t, err)

	uc.now = time.Now
	_, err = uc.ParseToken(context.Background(), token.AccessToken)
	assert.ErrorIs(t, err, entity.ErrInvalidToken)
}

func TestParseToken_WrongSecretAndAlgorithm(t *testing.T) {
	uc, _ := newTestUsecase(t)

	claims := entity.Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "farmer@example.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = uc.ParseToken(context.Background(), forged)
	assert.ErrorIs(t, err, entity.ErrInvalidToken)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = uc.ParseToken(context.Background(), unsigned)
	assert.ErrorIs(t, err, entity.ErrInvalidToken)
}

func TestParseToken_DisabledUser(t *testing.T) {
	uc, repo := newTestUsecase(t)

	token, err := uc.Login(context.Background(), "farmer@example.com", "s3cret")
	require.NoError(t, err)

	repo.users["farmer@example.com"].Disabled = true
	_, err = uc.ParseToken(context.Background(), token.AccessToken)
	assert.ErrorIs(t, err, entity.ErrInactiveUser)
}

func TestParseToken_UnknownUser(t *testing.T) {
	uc, repo := newTestUsecase(t)

	token, err := uc.Login(context.Background(), "farmer@example.com", "s3cret")
	require.NoError(t, err)

	delete(repo.users, "farmer@example.com")
	_, err = uc.ParseToken(context.Background(), token.AccessToken)
	assert.ErrorIs(t, err, entity.ErrInvalidToken)
}

func TestIssueToken_AdminClaim(t *testing.T) {
	uc, _ := newTestUsecase(t)

	token, err := uc.IssueToken(&entity.User{Email: "admin@example.com", IsAdmin: true})
	require.NoError(t, err)

	var claims entity.Claims
	_, err = jwt.ParseWithClaims(token.AccessToken, &claims, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, claims.IsAdmin)
	assert.Equal(t, "admin@example.com", claims.Subject)
}

func TestCreateUser(t *testing.T) {
	uc, _ := newTestUsecase(t)
	ctx := context.Background()

	_, err := uc.CreateUser(ctx, "farmer@example.com", "Dup", "pw", false)
	assert.ErrorIs(t, err, entity.ErrUserExists)

	_, err = uc.CreateUser(ctx, " ", "No Email", "pw", false)
	assert.ErrorIs(t, err, entity.ErrMissingField)
}

func TestPassword_LongInputIsTruncated(t *testing.T) {
	long := strings.Repeat("p", 100)

	hash, err := HashPassword(long)
	require.NoError(t, err)

	assert.True(t, VerifyPassword(long, hash))
	assert.True(t, VerifyPassword(long[:72], hash))
	assert.False(t, VerifyPassword(long[:71], hash))
}
