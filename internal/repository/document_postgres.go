package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nilecare/advisory-backend/internal/entity"
	"github.com/pgvector/pgvector-go"
)

// DocumentRepository defines the interface for document chunk persistence
type DocumentRepository interface {
	NearestChunks(ctx context.Context, embedding []float32, k int) ([]entity.DocumentChunk, error)
	CreateChunks(ctx context.Context, docs []entity.Document) ([]entity.Document, error)
	ListSummaries(ctx context.Context) ([]entity.DocumentSummary, error)
	PendingChunks(ctx context.Context, limit int) ([]entity.Document, error)
	SetEmbedding(ctx context.Context, id int64, embedding []float32) error
	SetStatus(ctx context.Context, id int64, status entity.DocumentStatus) error
	Ping(ctx context.Context) error
}

var _ DocumentRepository = &DocumentPostgres{}

// DocumentPostgres implements DocumentRepository using PostgreSQL with pgvector
type DocumentPostgres struct {
	db *pgxpool.Pool
}

func NewDocumentPostgres(db *pgxpool.Pool) *DocumentPostgres {
	return &DocumentPostgres{
		db: db,
	}
}

const nearestChunksQuery = `
SELECT id, src_file_name, content, embedding <=> $1 AS distance
FROM documents
WHERE embedding IS NOT NULL
ORDER BY embedding <=> $1
LIMIT $2`

// NearestChunks returns up to k chunks ordered by ascending cosine distance.
// One pooled connection is held for the query and released on every path.
func (r *DocumentPostgres) NearestChunks(ctx context.Context, embedding []float32, k int) ([]entity.DocumentChunk, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, wrapStoreError("acquire connection", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, nearestChunksQuery, pgvector.NewVector(embedding), k)
	if err != nil {
		return nil, wrapStoreError("query nearest chunks", err)
	}
	defer rows.Close()

	chunks := make([]entity.DocumentChunk, 0, k)
	for rows.Next() {
		var c entity.DocumentChunk
		if err := rows.Scan(&c.ID, &c.SourceName, &c.Content, &c.Distance); err != nil {
			return nil, wrapStoreError("scan chunk", err)
		}
		chunks = append(chunks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreError("iterate chunks", err)
	}

	return chunks, nil
}

// CreateChunks inserts all chunks of one upload in a single transaction
func (r *DocumentPostgres) CreateChunks(ctx context.Context, docs []entity.Document) ([]entity.Document, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, wrapStoreError("begin transaction", err)
	}
	defer tx.Rollback(ctx)

	created := make([]entity.Document, 0, len(docs))
	for _, doc := range docs {
		uploadID, err := uuid.Parse(doc.UploadID)
		if err != nil {
			return nil, fmt.Errorf("parse upload ID: %w", err)
		}

		status := doc.Status
		if status == "" {
			status = entity.DocumentStatusPending
		}

		err = tx.QueryRow(ctx, `
INSERT INTO documents (upload_id, src_file_name, chunk_index, content, status, size)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at`,
			uploadID, doc.SrcFileName, doc.ChunkIndex, doc.Content, string(status), doc.Size,
		).Scan(&doc.ID, &doc.CreatedAt)
		if err != nil {
			return nil, wrapStoreError("insert chunk", err)
		}

		doc.Status = status
		created = append(created, doc)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, wrapStoreError("commit transaction", err)
	}

	return created, nil
}

// ListSummaries groups chunks back into their source files
func (r *DocumentPostgres) ListSummaries(ctx context.Context) ([]entity.DocumentSummary, error) {
	rows, err := r.db.Query(ctx, `
SELECT MIN(id), src_file_name, MIN(created_at), MAX(status), MAX(size)
FROM documents
GROUP BY src_file_name
ORDER BY MIN(id)`)
	if err != nil {
		return nil, wrapStoreError("list documents", err)
	}

	summaries, err := pgx.CollectRows(rows, scanSummary)
	if err != nil {
		return nil, wrapStoreError("scan documents", err)
	}

	return summaries, nil
}

// PendingChunks returns the oldest chunks still waiting for an embedding
func (r *DocumentPostgres) PendingChunks(ctx context.Context, limit int) ([]entity.Document, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, upload_id::text, src_file_name, chunk_index, content, status, size, created_at
FROM documents
WHERE status = 'pending'
ORDER BY id
LIMIT $1`, limit)
	if err != nil {
		return nil, wrapStoreError("query pending chunks", err)
	}

	docs, err := pgx.CollectRows(rows, scanDocument)
	if err != nil {
		return nil, wrapStoreError("scan pending chunks", err)
	}

	return docs, nil
}

// SetEmbedding stores the vector and marks the chunk processed
func (r *DocumentPostgres) SetEmbedding(ctx context.Context, id int64, embedding []float32) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE documents SET embedding = $2, status = 'processed' WHERE id = $1`,
		id, pgvector.NewVector(embedding))
	if err != nil {
		return wrapStoreError("set embedding", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set embedding for document %d: %w", id, entity.ErrInvalidParameter)
	}

	return nil
}

func (r *DocumentPostgres) SetStatus(ctx context.Context, id int64, status entity.DocumentStatus) error {
	_, err := r.db.Exec(ctx, `UPDATE documents SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return wrapStoreError("set status", err)
	}

	return nil
}

func (r *DocumentPostgres) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return wrapStoreError("ping", err)
	}
	return nil
}
