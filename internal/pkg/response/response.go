package response

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/nilecare/advisory-backend/internal/entity"
	"go.uber.org/zap"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		// Headers are already sent, nothing else can be reported
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Error writes an error body with the given kind
func Error(w http.ResponseWriter, status int, kind entity.ErrorKind, message string) {
	JSON(w, status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Kind:    kind,
		Message: message,
	})
}

// Success writes a 200 OK response
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Unauthorized writes a 401 with the bearer challenge header
func Unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	Error(w, http.StatusUnauthorized, entity.KindUnauthorized, message)
}

// StatusForKind maps an error kind to its HTTP status
func StatusForKind(kind entity.ErrorKind) int {
	switch kind {
	case entity.KindValidation:
		return http.StatusBadRequest
	case entity.KindUnauthorized:
		return http.StatusUnauthorized
	case entity.KindForbidden:
		return http.StatusForbidden
	case entity.KindNotFound:
		return http.StatusNotFound
	case entity.KindServiceUnavailable:
		return http.StatusServiceUnavailable
	case entity.KindTranslationService, entity.KindEmbeddingService,
		entity.KindGenerationService, entity.KindWeatherService:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ServiceError writes err using its ServiceError kind and message.
// Errors without a kind become a generic 500.
func ServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var se *entity.ServiceError
	if !errors.As(err, &se) {
		ctxzap.Error(ctx, "unhandled error", zap.Error(err))
		Error(w, http.StatusInternalServerError, entity.KindInternal, "internal server error")
		return
	}

	status := StatusForKind(se.Kind)
	if status >= http.StatusInternalServerError {
		ctxzap.Error(ctx, se.Message, zap.String("kind", string(se.Kind)), zap.Error(se.Err))
	} else {
		ctxzap.Warn(ctx, se.Message, zap.String("kind", string(se.Kind)), zap.Error(se.Err))
	}

	Error(w, status, se.Kind, se.Message)
}
