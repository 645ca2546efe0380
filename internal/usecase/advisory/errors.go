package advisory

import (
	"errors"
	"strings"

	"github.com/nilecare/advisory-backend/internal/entity"
	pkghttp "github.com/nilecare/advisory-backend/pkg/http"
)

const (
	InsufficientContextAnswer = "I'm sorry, I don't have enough information to answer that question."

	storeUnavailableMessage = "Unable to connect to the database. This may be due to network issues, " +
		"IPv6 connectivity problems, or incorrect database credentials. " +
		"For local development, consider setting up a local PostgreSQL instance. " +
		"For Supabase, use the Connection Pooler host instead of the direct database host."

	maxErrorDetail = 200
)

// classifyStoreError separates connectivity failures from query failures
func classifyStoreError(err error) error {
	if isStoreConnectivityError(err) {
		return entity.NewServiceError(entity.KindServiceUnavailable, storeUnavailableMessage, err)
	}
	return entity.NewServiceError(entity.KindDatabase, "Database error: "+truncate(err.Error(), maxErrorDetail), err)
}

func isStoreConnectivityError(err error) bool {
	if errors.Is(err, entity.ErrStoreConnection) || pkghttp.IsTimeout(err) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "network is unreachable") || strings.Contains(msg, "connection")
}

// serviceError wraps a collaborator failure; timeouts become service_unavailable
func serviceError(kind entity.ErrorKind, message string, err error) error {
	if pkghttp.IsTimeout(err) {
		return entity.NewServiceError(entity.KindServiceUnavailable, message+": request timed out", err)
	}
	return entity.NewServiceError(kind, message, err)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
