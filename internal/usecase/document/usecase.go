package document

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/nilecare/advisory-backend/internal/config"
	"github.com/nilecare/advisory-backend/internal/entity"
	"github.com/nilecare/advisory-backend/internal/pkg/textract"
	"github.com/nilecare/advisory-backend/internal/pkg/validator"
	"go.uber.org/zap"
)

// DocumentUsecase stores uploaded documents as chunks awaiting embedding
type DocumentUsecase struct {
	store     DocumentStore
	validator UploadValidator
	chunker   *textract.Chunker
	logger    *zap.Logger
}

func NewUsecase(cfg config.FileUploadConfig, store DocumentStore, validator UploadValidator, logger *zap.Logger) *DocumentUsecase {
	return &DocumentUsecase{
		store:     store,
		validator: validator,
		chunker:   textract.NewChunker(cfg.ChunkSize, cfg.ChunkOverlap),
		logger:    logger,
	}
}

// Upload extracts text from the file and persists it as pending chunks
// sharing one upload id. The first stored row is returned.
func (uc *DocumentUsecase) Upload(ctx context.Context, req *entity.UploadRequest) (*entity.UploadResponse, error) {
	filename := validator.SanitizeFilename(req.Filename)
	size := int64(len(req.Content))

	if err := uc.validator.ValidateUpload(filename, size); err != nil {
		return nil, err
	}

	text, err := textract.Extract(filename, req.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidFile, err)
	}

	parts := uc.chunker.Split(text)
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrEmptyDocument, filename)
	}

	uploadID := uuid.New().String()
	docs := make([]entity.Document, 0, len(parts))
	for i, part := range parts {
		docs = append(docs, entity.Document{
			UploadID:    uploadID,
			SrcFileName: filename,
			ChunkIndex:  i,
			Content:     part,
			Status:      entity.DocumentStatusPending,
			Size:        size,
		})
	}

	saved, err := uc.store.CreateChunks(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("save chunks: %w", err)
	}

	ctxzap.Info(ctx, "document uploaded",
		zap.String("upload_id", uploadID),
		zap.String("filename", filename),
		zap.Int64("size", size),
		zap.Int("chunks", len(saved)),
	)

	first := saved[0]
	return &entity.UploadResponse{
		ID:       first.ID,
		Filename: first.SrcFileName,
		Status:   first.Status,
	}, nil
}

// List returns one summary per uploaded file
func (uc *DocumentUsecase) List(ctx context.Context) ([]entity.DocumentSummary, error) {
	summaries, err := uc.store.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	if summaries == nil {
		summaries = []entity.DocumentSummary{}
	}
	return summaries, nil
}
