package http

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// context keys for attaching request metadata
type payloadContextKey struct{}

const redacted = "REDACTED"

// query parameters that carry credentials
var secretParams = []string{"key", "appid", "api_key", "token"}

type logTransport struct {
	transport http.RoundTripper
}

func (t *logTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	start := time.Now()

	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("url", redactURL(req.URL)),
	}

	if payload, ok := ctx.Value(payloadContextKey{}).([]byte); ok && len(payload) > 0 {
		fields = append(fields, zap.Int("payload_bytes", len(payload)))
	}

	ctxzap.Debug(ctx, "HTTP outbound request", fields...)

	resp, err := t.transport.RoundTrip(req)
	fields = append(fields, zap.Int64("duration_ms", time.Since(start).Milliseconds()))
	if err != nil {
		ctxzap.Debug(ctx, "HTTP outbound request failed", append(fields, zap.Error(err))...)
		return nil, err
	}

	ctxzap.Debug(ctx, "HTTP outbound response", append(fields, zap.Int("status", resp.StatusCode))...)

	return resp, nil
}

// WithRequestLogging wraps the HTTP transport with debug logging of method, URL, status and timing.
// Credentials in the query string are redacted; headers are not logged.
func WithRequestLogging() HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &logTransport{
			transport: rt,
		}
	})
}

func redactURL(u *url.URL) string {
	if u.RawQuery == "" {
		return u.String()
	}

	clone := *u
	q := clone.Query()
	for key := range q {
		for _, secret := range secretParams {
			if strings.EqualFold(key, secret) {
				q.Set(key, redacted)
			}
		}
	}
	clone.RawQuery = q.Encode()

	return clone.String()
}
