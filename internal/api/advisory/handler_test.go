package advisory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/nilecare/advisory-backend/internal/config"
	"github.com/nilecare/advisory-backend/internal/entity"
	"github.com/nilecare/advisory-backend/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsecase struct {
	lastReq    *entity.AskRequest
	lastFormat entity.ResultFormat
	err        error
}

func (s *stubUsecase) Ask(ctx context.Context, req *entity.AskRequest) (*entity.AskResponse, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &entity.AskResponse{Answer: "Plant after the first rains.", Sources: []string{"source1", "source2"}}, nil
}

func (s *stubUsecase) Export(ctx context.Context, req *entity.AskRequest, format entity.ResultFormat) (*entity.ExportedAnswer, error) {
	s.lastReq = req
	s.lastFormat = format
	if s.err != nil {
		return nil, s.err
	}
	return &entity.ExportedAnswer{
		Filename:    "advisory-answer-20260101-120000.md",
		ContentType: "text/markdown; charset=utf-8",
		Content:     []byte("# answer"),
	}, nil
}

func newTestRouter(uc *stubUsecase) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(uc, validator.New(config.FileUploadConfig{})))
	return r
}

func post(t *testing.T, h http.Handler, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAsk_Success(t *testing.T) {
	uc := &stubUsecase{}
	rec := post(t, newTestRouter(uc), "/ask", `{"question":"When should I plant teff?","lang":"am","latitude":0,"longitude":0}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body entity.AskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Plant after the first rains.", body.Answer)
	assert.Equal(t, []string{"source1", "source2"}, body.Sources)

	require.NotNil(t, uc.lastReq)
	assert.Equal(t, entity.LangAmharic, uc.lastReq.Lang)
	assert.True(t, uc.lastReq.HasCoordinates())
}

func TestAsk_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"question":`},
		{"missing question", `{"lang":"en"}`},
		{"too short", `{"question":"a"}`},
		{"too long", `{"question":"` + strings.Repeat("x", 201) + `"}`},
		{"unknown language", `{"question":"hello there","lang":"fr"}`},
		{"latitude out of range", `{"question":"hello there","latitude":91,"longitude":0}`},
		{"latitude without longitude", `{"question":"hello there","latitude":9}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUsecase{}
			rec := post(t, newTestRouter(uc), "/ask", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"kind":"validation_error"`)
			assert.Nil(t, uc.lastReq)
		})
	}
}

func TestAsk_ServiceErrorKinds(t *testing.T) {
	uc := &stubUsecase{err: entity.NewServiceError(entity.KindServiceUnavailable, "knowledge base unavailable", nil)}
	rec := post(t, newTestRouter(uc), "/ask", `{"question":"How do I store maize?"}`)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"service_unavailable"`)
}

func TestExport(t *testing.T) {
	uc := &stubUsecase{}
	rec := post(t, newTestRouter(uc), "/ask/export?format=markdown", `{"question":"How do I store maize?"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/markdown; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "advisory-answer-20260101-120000.md")
	assert.Equal(t, "# answer", rec.Body.String())
	assert.Equal(t, entity.FormatMarkdown, uc.lastFormat)
}

func TestExport_DefaultsToMarkdownAndRejectsUnknown(t *testing.T) {
	uc := &stubUsecase{}
	rec := post(t, newTestRouter(uc), "/ask/export", `{"question":"How do I store maize?"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.FormatMarkdown, uc.lastFormat)

	rec = post(t, newTestRouter(uc), "/ask/export?format=xlsx", `{"question":"How do I store maize?"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
