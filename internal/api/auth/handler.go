package auth

import (
	"errors"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/nilecare/advisory-backend/internal/api/middleware"
	"github.com/nilecare/advisory-backend/internal/entity"
	"github.com/nilecare/advisory-backend/internal/pkg/logger"
	"github.com/nilecare/advisory-backend/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	usecase AuthUsecase
}

func NewHandler(usecase AuthUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// Token handles POST /token with an OAuth2 password form
func (h *Handler) Token(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Token")

	if err := r.ParseForm(); err != nil {
		response.Error(w, http.StatusBadRequest, entity.KindValidation, "invalid form data")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		response.Error(w, http.StatusBadRequest, entity.KindValidation, "username and password are required")
		return
	}

	token, err := h.usecase.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidCredentials) {
			ctxzap.Info(ctx, "login rejected")
			response.Unauthorized(w, "Incorrect username or password")
			return
		}
		ctxzap.Error(ctx, "login failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, entity.KindInternal, "internal server error")
		return
	}

	response.Success(w, token)
}

// Me handles GET /users/me/
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	response.Success(w, entity.UserProfile{
		Username: user.Email,
		Email:    user.Email,
		FullName: user.FullName,
		Disabled: user.Disabled,
		IsAdmin:  boolToInt(user.IsAdmin),
	})
}

// MyItems handles GET /users/me/items/
func (h *Handler) MyItems(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	response.Success(w, []entity.UserItem{{ItemID: 1, Owner: user.Email}})
}

// Verify handles GET /auth/verify
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	response.Success(w, entity.VerifyResponse{
		ID:      user.ID,
		Email:   user.Email,
		IsAdmin: boolToInt(user.IsAdmin),
	})
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
