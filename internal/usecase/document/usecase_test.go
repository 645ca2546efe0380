package document

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nilecare/advisory-backend/internal/config"
	"github.com/nilecare/advisory-backend/internal/entity"
	pkgRetry "github.com/nilecare/advisory-backend/internal/pkg/retry"
	"github.com/nilecare/advisory-backend/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memStore struct {
	docs       []entity.Document
	embeddings map[int64][]float32
	createErr  error
}

func newMemStore() *memStore {
	return &memStore{embeddings: map[int64][]float32{}}
}

func (s *memStore) CreateChunks(ctx context.Context, docs []entity.Document) ([]entity.Document, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	out := make([]entity.Document, 0, len(docs))
	for _, d := range docs {
		d.ID = int64(len(s.docs) + 1)
		d.CreatedAt = time.Now()
		s.docs = append(s.docs, d)
		out = append(out, d)
	}
	return out, nil
}

func (s *memStore) ListSummaries(ctx context.Context) ([]entity.DocumentSummary, error) {
	return nil, nil
}

func (s *memStore) PendingChunks(ctx context.Context, limit int) ([]entity.Document, error) {
	var pending []entity.Document
	for _, d := range s.docs {
		if d.Status == entity.DocumentStatusPending && len(pending) < limit {
			pending = append(pending, d)
		}
	}
	return pending, nil
}

func (s *memStore) SetEmbedding(ctx context.Context, id int64, embedding []float32) error {
	s.embeddings[id] = embedding
	return s.SetStatus(ctx, id, entity.DocumentStatusProcessed)
}

func (s *memStore) SetStatus(ctx context.Context, id int64, status entity.DocumentStatus) error {
	for i := range s.docs {
		if s.docs[i].ID == id {
			s.docs[i].Status = status
			return nil
		}
	}
	return errors.New("no such document")
}

type stubEmbedder struct {
	dim   int
	calls int
	fail  func(text string) error
}

func (e *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.calls++
	if e.fail != nil {
		if err := e.fail(text); err != nil {
			return nil, err
		}
	}
	return make([]float32, e.dim), nil
}

var uploadCfg = config.FileUploadConfig{
	MaxFileSize:  1024,
	AllowedTypes: []string{".txt", ".md", ".docx"},
	ChunkSize:    100,
	ChunkOverlap: 10,
}

func newTestUsecase(store *memStore) *DocumentUsecase {
	return NewUsecase(uploadCfg, store, validator.New(uploadCfg), zap.NewNop())
}

func TestUpload_StoresPendingChunks(t *testing.T) {
	store := newMemStore()
	uc := newTestUsecase(store)

	content := strings.Repeat("Teff grows well in highland soils. ", 10)
	resp, err := uc.Upload(context.Background(), &entity.UploadRequest{Filename: "my guide.txt", Content: []byte(content)})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "my_guide.txt", resp.Filename)
	assert.Equal(t, entity.DocumentStatusPending, resp.Status)

	require.Greater(t, len(store.docs), 1)
	uploadID := store.docs[0].UploadID
	for i, d := range store.docs {
		assert.Equal(t, uploadID, d.UploadID)
		assert.Equal(t, i, d.ChunkIndex)
		assert.Equal(t, int64(len(content)), d.Size)
		assert.Equal(t, entity.DocumentStatusPending, d.Status)
	}
}

func TestUpload_Rejections(t *testing.T) {
	uc := newTestUsecase(newMemStore())
	ctx := context.Background()

	_, err := uc.Upload(ctx, &entity.UploadRequest{Filename: "report.pdf", Content: []byte("x")})
	assert.ErrorIs(t, err, entity.ErrInvalidExtension)

	_, err = uc.Upload(ctx, &entity.UploadRequest{Filename: "big.txt", Content: make([]byte, 2048)})
	assert.ErrorIs(t, err, entity.ErrFileTooLarge)

	_, err = uc.Upload(ctx, &entity.UploadRequest{Filename: "empty.txt", Content: nil})
	assert.ErrorIs(t, err, entity.ErrInvalidFile)

	_, err = uc.Upload(ctx, &entity.UploadRequest{Filename: "blank.md", Content: []byte("  \n\n  ")})
	assert.ErrorIs(t, err, entity.ErrEmptyDocument)
}

func TestUpload_StoreFailure(t *testing.T) {
	store := newMemStore()
	store.createErr = errors.New("connection refused")

	_, err := newTestUsecase(store).Upload(context.Background(), &entity.UploadRequest{Filename: "a.txt", Content: []byte("maize")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save chunks")
}

func TestList_NeverNil(t *testing.T) {
	got, err := newTestUsecase(newMemStore()).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func newTestIngestor(store *memStore, embedder *stubEmbedder) *Ingestor {
	cfg := config.IngestConfig{
		Interval:  time.Millisecond,
		BatchSize: 10,
		Retry:     pkgRetry.RetryConfig{Attempts: 2, Delay: time.Millisecond, MaxDelay: time.Millisecond},
	}
	return NewIngestor(cfg, 4, store, embedder, zap.NewNop())
}

func seedPending(store *memStore, contents ...string) {
	docs := make([]entity.Document, 0, len(contents))
	for i, c := range contents {
		docs = append(docs, entity.Document{SrcFileName: "guide.txt", ChunkIndex: i, Content: c, Status: entity.DocumentStatusPending})
	}
	_, _ = store.CreateChunks(context.Background(), docs)
}

func TestIngestor_ProcessBatch(t *testing.T) {
	store := newMemStore()
	seedPending(store, "one", "two", "three")

	n, err := newTestIngestor(store, &stubEmbedder{dim: 4}).ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for _, d := range store.docs {
		assert.Equal(t, entity.DocumentStatusProcessed, d.Status)
		assert.Len(t, store.embeddings[d.ID], 4)
	}
}

func TestIngestor_RetriesThenMarksFailed(t *testing.T) {
	store := newMemStore()
	seedPending(store, "good", "bad")

	embedder := &stubEmbedder{dim: 4, fail: func(text string) error {
		if text == "bad" {
			return errors.New("upstream 500")
		}
		return nil
	}}

	n, err := newTestIngestor(store, embedder).ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 3, embedder.calls)

	assert.Equal(t, entity.DocumentStatusProcessed, store.docs[0].Status)
	assert.Equal(t, entity.DocumentStatusFailed, store.docs[1].Status)
}

func TestIngestor_DimensionMismatchIsNotRetried(t *testing.T) {
	store := newMemStore()
	seedPending(store, "one")

	embedder := &stubEmbedder{dim: 3}
	n, err := newTestIngestor(store, embedder).ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 1, embedder.calls)
	assert.Equal(t, entity.DocumentStatusFailed, store.docs[0].Status)
}

func TestIngestor_RunStopsOnCancel(t *testing.T) {
	store := newMemStore()
	seedPending(store, "one")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		newTestIngestor(store, &stubEmbedder{dim: 4}).Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ingestor did not stop after cancel")
	}
}
