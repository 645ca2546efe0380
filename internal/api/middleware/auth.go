package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/nilecare/advisory-backend/internal/entity"
	"github.com/nilecare/advisory-backend/internal/pkg/response"
	"go.uber.org/zap"
)

type TokenParser interface {
	ParseToken(ctx context.Context, token string) (*entity.User, error)
}

type userCtxKey struct{}

// UserFromContext returns the user stored by Authenticated
func UserFromContext(ctx context.Context) (*entity.User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(*entity.User)
	return u, ok
}

// Authenticated requires a valid bearer token and stores its user in the context
func Authenticated(parser TokenParser) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, ok := bearerToken(r)
			if !ok {
				response.Unauthorized(w, "Not authenticated")
				return
			}

			user, err := parser.ParseToken(ctx, token)
			switch {
			case err == nil:
			case errors.Is(err, entity.ErrInactiveUser):
				response.Error(w, http.StatusBadRequest, entity.KindValidation, "Inactive user")
				return
			case errors.Is(err, entity.ErrInvalidToken):
				response.Unauthorized(w, "Could not validate credentials")
				return
			default:
				ctxzap.Error(ctx, "token verification failed", zap.Error(err))
				response.Error(w, http.StatusInternalServerError, entity.KindInternal, "internal server error")
				return
			}

			ctx = ctxzap.ToContext(ctx, ctxzap.Extract(ctx).With(zap.String("user_id", user.ID)))
			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, userCtxKey{}, user)))
		})
	}
}

// AdminOnly must run after Authenticated
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "Not authenticated")
			return
		}
		if !user.IsAdmin {
			response.Error(w, http.StatusForbidden, entity.KindForbidden, "Not enough permissions")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
