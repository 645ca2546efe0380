package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/nilecare/advisory-backend/internal/config"
	"github.com/nilecare/advisory-backend/internal/entity"
	"github.com/nilecare/advisory-backend/internal/integration/common"
	pkghttp "github.com/nilecare/advisory-backend/pkg/http"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.openai.com/v1"

var ErrEmptyCompletion = errors.New("empty completion response")

type Connector struct {
	config    config.OpenAIConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.OpenAIConnectorConfig,
	logger *zap.Logger,
) *Connector {
	var extra []pkghttp.HttpOpts
	if cfg.APIKey != "" {
		extra = append(extra, pkghttp.WithAuthToken(cfg.APIKey))
	}

	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, defaultBaseURL, logger, extra...),
		config:    cfg,
		logger:    logger,
	}
}

// Embed returns the embedding vector of text
func (c *Connector) Embed(ctx context.Context, text string) ([]float32, error) {
	ctxzap.Debug(ctx, "requesting embedding", zap.Int("text_length", len(text)))

	req := &entity.EmbeddingRequest{
		Model: c.config.EmbeddingModel,
		Input: strings.ReplaceAll(text, "\n", " "),
	}

	var resp entity.EmbeddingResponse
	if err := c.connector.DoRequest(ctx, http.MethodPost, c.config.EmbeddingsEndpoint, req, &resp); err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}

	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("invalid embedding response: no vectors returned")
	}

	ctxzap.Debug(ctx, "embedding received", zap.Int("dimensions", len(resp.Data[0].Embedding)))

	return resp.Data[0].Embedding, nil
}

// ChatCompletion sends the system prompt followed by messages and returns the first choice
func (c *Connector) ChatCompletion(ctx context.Context, systemPrompt string, messages []entity.ChatMessage, maxTokens int) (string, error) {
	ctxzap.Info(ctx, "generating answer via chat completion", zap.String("model", c.config.GenModel))

	all := make([]entity.ChatMessage, 0, len(messages)+1)
	all = append(all, entity.ChatMessage{Role: entity.RoleSystem, Content: systemPrompt})
	all = append(all, messages...)

	req := &entity.ChatCompletionRequest{
		Model:     c.config.GenModel,
		Messages:  all,
		MaxTokens: maxTokens,
	}

	var resp entity.ChatCompletionResponse
	if err := c.connector.DoRequest(ctx, http.MethodPost, c.config.ChatEndpoint, req, &resp); err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	ctxzap.Info(ctx, "answer generated", zap.Int("answer_length", len(answer)),
		zap.String("finish_reason", resp.Choices[0].FinishReason))

	return answer, nil
}
