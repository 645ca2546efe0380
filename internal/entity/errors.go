package entity

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// Auth errors
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInvalidToken       = errors.New("could not validate credentials")
	ErrInactiveUser       = errors.New("inactive user")
	ErrNotEnoughRights    = errors.New("not enough permissions")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")

	// Document errors
	ErrInvalidFile      = errors.New("invalid file")
	ErrFileTooLarge     = errors.New("file too large")
	ErrInvalidExtension = errors.New("invalid file extension")
	ErrEmptyDocument    = errors.New("document contains no text")

	// Store errors
	ErrStoreConnection = errors.New("document store connection failed")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// ErrorKind is the stable machine-readable error identifier returned to API clients.
type ErrorKind string

const (
	KindValidation         ErrorKind = "validation_error"
	KindTranslationService ErrorKind = "translation_service_error"
	KindServiceUnavailable ErrorKind = "service_unavailable"
	KindDatabase           ErrorKind = "database_error"
	KindEmbeddingService   ErrorKind = "embedding_service_error"
	KindGenerationService  ErrorKind = "generation_service_error"
	KindWeatherService     ErrorKind = "weather_service_error"
	KindUnauthorized       ErrorKind = "unauthorized"
	KindForbidden          ErrorKind = "forbidden"
	KindNotFound           ErrorKind = "not_found"
	KindInternal           ErrorKind = "internal_error"
)

// Pipeline error kinds usable with errors.Is
var (
	ErrValidation         = &kindError{KindValidation}
	ErrTranslationService = &kindError{KindTranslationService}
	ErrServiceUnavailable = &kindError{KindServiceUnavailable}
	ErrDatabase           = &kindError{KindDatabase}
	ErrEmbeddingService   = &kindError{KindEmbeddingService}
	ErrGenerationService  = &kindError{KindGenerationService}
	ErrWeatherService     = &kindError{KindWeatherService}
)

type kindError struct {
	kind ErrorKind
}

func (e *kindError) Error() string {
	return string(e.kind)
}

// ServiceError is an error that is safe to surface to the caller.
// Message is user facing, Err keeps the internal cause for logs.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func NewServiceError(kind ErrorKind, message string, err error) *ServiceError {
	return &ServiceError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Is matches kind sentinels such as ErrServiceUnavailable.
func (e *ServiceError) Is(target error) bool {
	ke, ok := target.(*kindError)
	return ok && ke.kind == e.Kind
}

// KindOf returns the kind of a ServiceError in the chain, or KindInternal.
func KindOf(err error) ErrorKind {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

// ErrorResponse is the JSON body of every error response
type ErrorResponse struct {
	Error   string    `json:"error"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}
