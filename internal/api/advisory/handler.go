package advisory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/nilecare/advisory-backend/internal/entity"
	"github.com/nilecare/advisory-backend/internal/pkg/logger"
	"github.com/nilecare/advisory-backend/internal/pkg/response"
	"go.uber.org/zap"
)

// maxAskBodyBytes bounds the JSON body of ask requests
const maxAskBodyBytes = 64 << 10

type Handler struct {
	usecase   AdvisoryUsecase
	validator RequestValidator
}

func NewHandler(usecase AdvisoryUsecase, validator RequestValidator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// Ask handles POST /ask
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Ask")

	req, ok := h.decodeAsk(ctx, w, r)
	if !ok {
		return
	}

	resp, err := h.usecase.Ask(ctx, req)
	if err != nil {
		response.ServiceError(ctx, w, err)
		return
	}

	response.Success(w, resp)
}

// Export handles POST /ask/export?format=markdown|docx|pdf
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ExportAnswer")

	format := entity.ResultFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = entity.FormatMarkdown
	}
	if !format.IsValid() {
		response.Error(w, http.StatusBadRequest, entity.KindValidation,
			fmt.Sprintf("unsupported format %q, expected markdown, docx or pdf", format))
		return
	}

	req, ok := h.decodeAsk(ctx, w, r)
	if !ok {
		return
	}

	file, err := h.usecase.Export(ctx, req, format)
	if err != nil {
		response.ServiceError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "answer exported", zap.String("format", string(format)), zap.Int("bytes", len(file.Content)))

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Content)
}

func (h *Handler) decodeAsk(ctx context.Context, w http.ResponseWriter, r *http.Request) (*entity.AskRequest, bool) {
	var req entity.AskRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAskBodyBytes)).Decode(&req); err != nil {
		ctxzap.Warn(ctx, "failed to decode ask request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, entity.KindValidation, "request body must be a JSON object")
		return nil, false
	}

	if err := h.validator.ValidateAsk(&req); err != nil {
		ctxzap.Warn(ctx, "invalid ask request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, entity.KindValidation, err.Error())
		return nil, false
	}

	return &req, true
}
