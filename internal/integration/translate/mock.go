package translate

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector detects every text as English and echoes translations
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) DetectLanguage(ctx context.Context, text string) (string, error) {
	ctxzap.Debug(ctx, "[MOCK] detecting language")
	return fallbackLanguage, nil
}

func (m *MockConnector) Translate(ctx context.Context, text, src, dest string) (string, error) {
	ctxzap.Debug(ctx, "[MOCK] translating text", zap.String("source", src), zap.String("target", dest))
	return text, nil
}
