package document

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nilecare/advisory-backend/internal/config"
	"github.com/nilecare/advisory-backend/internal/entity"
	"go.uber.org/zap"
)

// Ingestor embeds pending chunks in the background
type Ingestor struct {
	cfg      config.IngestConfig
	embedDim int
	queue    EmbeddingQueue
	embedder Embedder
	logger   *zap.Logger
}

func NewIngestor(cfg config.IngestConfig, embedDim int, queue EmbeddingQueue, embedder Embedder, logger *zap.Logger) *Ingestor {
	return &Ingestor{
		cfg:      cfg,
		embedDim: embedDim,
		queue:    queue,
		embedder: embedder,
		logger:   logger.With(zap.String("component", "ingestor")),
	}
}

// Run processes batches every interval until ctx is cancelled
func (in *Ingestor) Run(ctx context.Context) {
	in.logger.Info("ingestion worker started",
		zap.Duration("interval", in.cfg.Interval),
		zap.Int("batch_size", in.cfg.BatchSize),
	)

	ticker := time.NewTicker(in.cfg.Interval)
	defer ticker.Stop()

	for {
		if _, err := in.ProcessBatch(ctx); err != nil && ctx.Err() == nil {
			in.logger.Error("ingestion batch failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			in.logger.Info("ingestion worker stopped")
			return
		case <-ticker.C:
		}
	}
}

// ProcessBatch embeds one batch of pending chunks and returns how many were processed
func (in *Ingestor) ProcessBatch(ctx context.Context) (int, error) {
	docs, err := in.queue.PendingChunks(ctx, in.cfg.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("fetch pending chunks: %w", err)
	}
	if len(docs) == 0 {
		return 0, nil
	}

	processed := 0
	for _, doc := range docs {
		if ctx.Err() != nil {
			return processed, ctx.Err()
		}

		embedding, err := in.embed(ctx, doc)
		if err != nil {
			in.logger.Warn("chunk embedding failed",
				zap.Int64("document_id", doc.ID),
				zap.String("filename", doc.SrcFileName),
				zap.Error(err),
			)
			if ctx.Err() != nil {
				return processed, ctx.Err()
			}
			if err := in.queue.SetStatus(ctx, doc.ID, entity.DocumentStatusFailed); err != nil {
				return processed, fmt.Errorf("mark chunk %d failed: %w", doc.ID, err)
			}
			continue
		}

		if err := in.queue.SetEmbedding(ctx, doc.ID, embedding); err != nil {
			return processed, fmt.Errorf("store embedding for chunk %d: %w", doc.ID, err)
		}
		processed++
	}

	in.logger.Info("ingestion batch done", zap.Int("pending", len(docs)), zap.Int("processed", processed))

	return processed, nil
}

func (in *Ingestor) embed(ctx context.Context, doc entity.Document) ([]float32, error) {
	return retry.DoWithData(
		func() ([]float32, error) {
			embedding, err := in.embedder.Embed(ctx, doc.Content)
			if err != nil {
				return nil, err
			}
			if len(embedding) != in.embedDim {
				return nil, retry.Unrecoverable(fmt.Errorf("embedding has %d dimensions, want %d", len(embedding), in.embedDim))
			}
			return embedding, nil
		},
		in.cfg.Retry.ToRetryOptions(ctx)...,
	)
}
