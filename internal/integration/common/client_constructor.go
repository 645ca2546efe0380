package common

import (
	"github.com/nilecare/advisory-backend/internal/config"
	pkgHTTP "github.com/nilecare/advisory-backend/pkg/http"
	"go.uber.org/zap"
)

// NewBaseConnector builds a connector from the shared HTTP client block.
// defaultURL is used when SERVICE_URL is not configured.
func NewBaseConnector(cfg config.HTTPClientConfig, defaultURL string, logger *zap.Logger, extra ...pkgHTTP.HttpOpts) *pkgHTTP.Connector {
	baseURL := cfg.Url
	if baseURL == "" {
		baseURL = defaultURL
	}

	connCfg := &pkgHTTP.ConnectorConfig{
		Logger:  logger,
		BaseURL: baseURL,
	}

	opts := []pkgHTTP.HttpOpts{
		pkgHTTP.WithTimeouts(pkgHTTP.Timeouts{
			Dial:           cfg.ConnTimeout,
			KeepAlive:      cfg.KeepAlive,
			Request:        cfg.RequestTimeout,
			ResponseHeader: cfg.ResponseHeaderTimeout,
			IdleConn:       cfg.IdleConnTimeout,
		}),
		pkgHTTP.WithRequestLogging(),
	}
	if cfg.Token != "" {
		opts = append(opts, pkgHTTP.WithAuthToken(cfg.Token))
	}
	opts = append(opts, extra...)

	return pkgHTTP.NewConnector(connCfg, opts...)
}
