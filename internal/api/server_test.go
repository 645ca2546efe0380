package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	advisoryapi "github.com/nilecare/advisory-backend/internal/api/advisory"
	authapi "github.com/nilecare/advisory-backend/internal/api/auth"
	documentapi "github.com/nilecare/advisory-backend/internal/api/document"
	"github.com/nilecare/advisory-backend/internal/api/system"
	"github.com/nilecare/advisory-backend/internal/config"
	"github.com/nilecare/advisory-backend/internal/entity"
	"github.com/nilecare/advisory-backend/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type nopDeps struct{}

func (nopDeps) Ping(ctx context.Context) error { return nil }

func (nopDeps) Ask(ctx context.Context, req *entity.AskRequest) (*entity.AskResponse, error) {
	return &entity.AskResponse{Answer: "ok", Sources: []string{}}, nil
}

func (nopDeps) Export(ctx context.Context, req *entity.AskRequest, format entity.ResultFormat) (*entity.ExportedAnswer, error) {
	return &entity.ExportedAnswer{}, nil
}

func (nopDeps) Login(ctx context.Context, email, password string) (*entity.TokenResponse, error) {
	return nil, entity.ErrInvalidCredentials
}

func (nopDeps) ParseToken(ctx context.Context, token string) (*entity.User, error) {
	return nil, entity.ErrInvalidToken
}

func (nopDeps) Upload(ctx context.Context, req *entity.UploadRequest) (*entity.UploadResponse, error) {
	return nil, entity.ErrInvalidFile
}

func (nopDeps) List(ctx context.Context) ([]entity.DocumentSummary, error) {
	return nil, nil
}

func newTestServer(cors config.CORSConfig) http.Handler {
	deps := nopDeps{}
	return SetupRouter(Handlers{
		System:   system.NewHandler(deps),
		Advisory: advisoryapi.NewHandler(deps, validator.New(config.FileUploadConfig{})),
		Auth:     authapi.NewHandler(deps),
		Document: documentapi.NewHandler(deps, config.FileUploadConfig{MaxUploadSize: 1 << 20}),
	}, deps, cors, zap.NewNop())
}

func TestRouter_CORSOriginRegex(t *testing.T) {
	h := newTestServer(config.CORSConfig{
		Origins:     "https://nilecare.example",
		OriginRegex: `^https://.*\.vercel\.app$`,
	})

	for origin, allowed := range map[string]bool{
		"https://nilecare.example":     true,
		"https://preview-1.vercel.app": true,
		"https://evil.example":         false,
	} {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", origin)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if allowed {
			assert.Equal(t, origin, rec.Header().Get("Access-Control-Allow-Origin"), origin)
		} else {
			assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"), origin)
		}
	}
}

func TestRouter_RequestIDAndRoutes(t *testing.T) {
	h := newTestServer(config.CORSConfig{Origins: "*"})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/documents", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs/swagger.yaml", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nile Care AI Farm Advisory API")
}
