package middleware

import (
	"net/http"
	"regexp"

	"github.com/go-chi/cors"
	"github.com/nilecare/advisory-backend/internal/config"
	"go.uber.org/zap"
)

// CORS allows the configured origins plus any origin matching CORS_ORIGIN_REGEX
func CORS(cfg config.CORSConfig, logger *zap.Logger) func(next http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           600,
	}

	if cfg.OriginRegex != "" {
		re, err := regexp.Compile(cfg.OriginRegex)
		if err != nil {
			logger.Warn("ignoring invalid CORS origin regex", zap.String("regex", cfg.OriginRegex), zap.Error(err))
		} else {
			allowed := make(map[string]bool, len(opts.AllowedOrigins))
			wildcard := false
			for _, o := range opts.AllowedOrigins {
				if o == "*" {
					wildcard = true
				}
				allowed[o] = true
			}
			opts.AllowOriginFunc = func(r *http.Request, origin string) bool {
				return wildcard || allowed[origin] || re.MatchString(origin)
			}
		}
	}

	return cors.Handler(opts)
}
