package document

import (
	"context"

	"github.com/nilecare/advisory-backend/internal/entity"
)

type DocumentStore interface {
	CreateChunks(ctx context.Context, docs []entity.Document) ([]entity.Document, error)
	ListSummaries(ctx context.Context) ([]entity.DocumentSummary, error)
}

// EmbeddingQueue is the part of the store the ingestion worker drains
type EmbeddingQueue interface {
	PendingChunks(ctx context.Context, limit int) ([]entity.Document, error)
	SetEmbedding(ctx context.Context, id int64, embedding []float32) error
	SetStatus(ctx context.Context, id int64, status entity.DocumentStatus) error
}

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type UploadValidator interface {
	ValidateUpload(filename string, size int64) error
}
