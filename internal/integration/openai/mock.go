package openai

import (
	"context"
	"hash/fnv"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/nilecare/advisory-backend/internal/entity"
	"go.uber.org/zap"
)

// MockConnector returns deterministic vectors and canned answers for local runs
type MockConnector struct {
	dim    int
	logger *zap.Logger
}

func NewMockConnector(dim int, logger *zap.Logger) *MockConnector {
	return &MockConnector{
		dim:    dim,
		logger: logger,
	}
}

// Embed derives a stable pseudo-vector from the text hash
func (m *MockConnector) Embed(ctx context.Context, text string) ([]float32, error) {
	ctxzap.Debug(ctx, "[MOCK] embedding text", zap.Int("text_length", len(text)))

	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToLower(text)))
	seed := h.Sum64()

	vec := make([]float32, m.dim)
	for i := range vec {
		seed = seed*6364136223846793005 + 1442695040888963407
		vec[i] = float32(seed>>40)/float32(1<<24) - 0.5
	}
	return vec, nil
}

func (m *MockConnector) ChatCompletion(ctx context.Context, systemPrompt string, messages []entity.ChatMessage, maxTokens int) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating answer", zap.Int("max_tokens", maxTokens))

	return "Based on the available agricultural guidance, apply well-rotted compost before planting, " +
		"keep the soil evenly moist and monitor the crop weekly for pests.", nil
}
