package system

import (
	"context"
	"net/http"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/nilecare/advisory-backend/internal/pkg/logger"
	"github.com/nilecare/advisory-backend/internal/pkg/response"
	"go.uber.org/zap"
)

const pingTimeout = 3 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Detail   string `json:"detail,omitempty"`
}

type Handler struct {
	db Pinger
}

func NewHandler(db Pinger) *Handler {
	return &Handler{db: db}
}

// Root handles GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]string{
		"status":  "ok",
		"message": "Nile Care AI Farm Advisory backend is running",
	})
}

// Health handles GET /health. A failed database ping is reported as
// degraded with 200 so that the process itself is still seen as alive.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		ctxzap.Warn(ctx, "database ping failed", zap.Error(err))
		response.Success(w, HealthResponse{
			Status:   "degraded",
			Database: "unavailable",
			Detail:   logger.Truncate(err.Error(), 200),
		})
		return
	}

	response.Success(w, HealthResponse{Status: "ok", Database: "ok"})
}
