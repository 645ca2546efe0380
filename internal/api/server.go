package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	advisoryapi "github.com/nilecare/advisory-backend/internal/api/advisory"
	authapi "github.com/nilecare/advisory-backend/internal/api/auth"
	"github.com/nilecare/advisory-backend/internal/api/docs"
	documentapi "github.com/nilecare/advisory-backend/internal/api/document"
	"github.com/nilecare/advisory-backend/internal/api/middleware"
	"github.com/nilecare/advisory-backend/internal/api/system"
	"github.com/nilecare/advisory-backend/internal/config"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers mounted by SetupRouter
type Handlers struct {
	System   *system.Handler
	Advisory *advisoryapi.Handler
	Auth     *authapi.Handler
	Document *documentapi.Handler
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(h Handlers, tokens middleware.TokenParser, corsCfg config.CORSConfig, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(corsCfg, logger))
	r.Use(chimiddleware.Timeout(60 * time.Second))

	docs.RegisterRoutes(r)

	system.RegisterRoutes(r, h.System)
	advisoryapi.RegisterRoutes(r, h.Advisory)
	authapi.RegisterRoutes(r, h.Auth)
	documentapi.RegisterRoutes(r, h.Document, tokens)

	return r
}
