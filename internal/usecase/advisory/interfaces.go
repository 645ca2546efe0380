package advisory

import (
	"context"

	"github.com/nilecare/advisory-backend/internal/entity"
	"github.com/nilecare/advisory-backend/internal/pkg/formatter"
)

type Translator interface {
	DetectLanguage(ctx context.Context, text string) (string, error)
	Translate(ctx context.Context, text, src, dest string) (string, error)
}

type LLMConnector interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	ChatCompletion(ctx context.Context, systemPrompt string, messages []entity.ChatMessage, maxTokens int) (string, error)
}

type WeatherConnector interface {
	GetWeather(ctx context.Context, location string, lat, lon *float64) (string, error)
}

type ChunkStore interface {
	NearestChunks(ctx context.Context, embedding []float32, k int) ([]entity.DocumentChunk, error)
}

type FormatterFactory interface {
	Create(format entity.ResultFormat) (formatter.Formatter, error)
}
