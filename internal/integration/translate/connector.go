package translate

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/nilecare/advisory-backend/internal/config"
	"github.com/nilecare/advisory-backend/internal/entity"
	"github.com/nilecare/advisory-backend/internal/integration/common"
	pkghttp "github.com/nilecare/advisory-backend/pkg/http"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

const defaultBaseURL = "https://translation.googleapis.com"

// fallbackLanguage is returned when detection is empty or undetermined
const fallbackLanguage = "en"

type Connector struct {
	config    config.TranslateConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.TranslateConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, defaultBaseURL, logger,
			pkghttp.WithAPIKeyQuery("key", cfg.APIKey)),
		config: cfg,
		logger: logger,
	}
}

// DetectLanguage returns the two-letter code of the most confident detection
func (c *Connector) DetectLanguage(ctx context.Context, text string) (string, error) {
	var resp entity.DetectLanguageResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.DetectEndpoint,
		&entity.DetectLanguageRequest{Q: text}, &resp)
	if err != nil {
		return "", fmt.Errorf("detect language failed: %w", err)
	}

	best := entity.Detection{}
	for _, group := range resp.Data.Detections {
		for _, d := range group {
			if d.Confidence >= best.Confidence || best.Language == "" {
				best = d
			}
		}
	}

	code := NormalizeCode(best.Language)
	ctxzap.Debug(ctx, "language detected",
		zap.String("raw", best.Language),
		zap.String("language", code),
		zap.Float64("confidence", best.Confidence),
	)

	return code, nil
}

// Translate translates text from src to dest. Equal languages return text unchanged.
func (c *Connector) Translate(ctx context.Context, text, src, dest string) (string, error) {
	src, dest = NormalizeCode(src), NormalizeCode(dest)
	if src == dest || strings.TrimSpace(text) == "" {
		return text, nil
	}

	ctxzap.Info(ctx, "translating text", zap.String("source", src), zap.String("target", dest))

	req := &entity.TranslateRequest{
		Q:      text,
		Source: src,
		Target: dest,
		Format: "text",
	}

	var resp entity.TranslateResponse
	if err := c.connector.DoRequest(ctx, http.MethodPost, c.config.TranslateEndpoint, req, &resp); err != nil {
		return "", fmt.Errorf("translate failed: %w", err)
	}

	if len(resp.Data.Translations) == 0 {
		return "", fmt.Errorf("invalid translate response: no translations returned")
	}

	return html.UnescapeString(resp.Data.Translations[0].TranslatedText), nil
}

// NormalizeCode reduces a BCP 47 tag such as "en-US" to its base language.
// Empty or undetermined tags map to English.
func NormalizeCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" || strings.EqualFold(code, "und") {
		return fallbackLanguage
	}

	tag, err := language.Parse(code)
	if err != nil {
		return strings.ToLower(code)
	}

	base, conf := tag.Base()
	if conf == language.No || base.String() == "und" {
		return fallbackLanguage
	}
	return base.String()
}
