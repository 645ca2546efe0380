package document

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/nilecare/advisory-backend/internal/config"
	"github.com/nilecare/advisory-backend/internal/entity"
	"github.com/nilecare/advisory-backend/internal/pkg/logger"
	"github.com/nilecare/advisory-backend/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	usecase DocumentUsecase
	cfg     config.FileUploadConfig
}

func NewHandler(usecase DocumentUsecase, cfg config.FileUploadConfig) *Handler {
	return &Handler{
		usecase: usecase,
		cfg:     cfg,
	}
}

// Upload handles POST /upload
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UploadDocument")

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.cfg.MaxUploadSize); err != nil {
		ctxzap.Warn(ctx, "failed to parse multipart form", zap.Error(err))
		response.Error(w, http.StatusBadRequest, entity.KindValidation, "invalid form data or size too large")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, entity.KindValidation, "file is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		ctxzap.Error(ctx, "failed to read uploaded file", zap.Error(err))
		response.Error(w, http.StatusBadRequest, entity.KindValidation, "could not read file")
		return
	}

	ctx = logger.AddFields(ctx, zap.String("filename", header.Filename), zap.Int("size", len(content)))

	resp, err := h.usecase.Upload(ctx, &entity.UploadRequest{
		Filename: header.Filename,
		Content:  content,
	})
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, resp)
}

// List handles GET /admin/documents
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListDocuments")

	docs, err := h.usecase.List(ctx)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Debug(ctx, "documents listed", zap.Int("count", len(docs)))

	response.Success(w, docs)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrInvalidExtension),
		errors.Is(err, entity.ErrFileTooLarge),
		errors.Is(err, entity.ErrInvalidFile),
		errors.Is(err, entity.ErrEmptyDocument),
		errors.Is(err, entity.ErrMissingField):
		ctxzap.Warn(ctx, "upload rejected", zap.Error(err))
		response.Error(w, http.StatusBadRequest, entity.KindValidation, err.Error())
	case errors.Is(err, entity.ErrStoreConnection):
		ctxzap.Error(ctx, "document store unavailable", zap.Error(err))
		response.Error(w, http.StatusServiceUnavailable, entity.KindServiceUnavailable, "document store is unavailable, try again later")
	default:
		ctxzap.Error(ctx, "document operation failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, entity.KindDatabase, "database error")
	}
}
