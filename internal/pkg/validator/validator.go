package validator

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nilecare/advisory-backend/internal/config"
	"github.com/nilecare/advisory-backend/internal/entity"
)

// Validator validates API requests and file uploads
type Validator struct {
	cfg      config.FileUploadConfig
	validate *validator.Validate
	allowed  map[string]bool
}

func New(cfg config.FileUploadConfig) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report json field names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	allowed := make(map[string]bool, len(cfg.AllowedTypes))
	for _, ext := range cfg.AllowedTypes {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowed[ext] = true
	}

	return &Validator{
		cfg:      cfg,
		validate: v,
		allowed:  allowed,
	}
}

// ValidateAsk checks an ask request; the returned error wraps entity.ErrInvalidParameter
func (v *Validator) ValidateAsk(req *entity.AskRequest) error {
	if err := v.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", entity.ErrInvalidParameter, describe(err))
	}
	return nil
}

// ValidateUpload checks extension and size of an uploaded file
func (v *Validator) ValidateUpload(filename string, size int64) error {
	if strings.TrimSpace(filename) == "" {
		return fmt.Errorf("%w: file", entity.ErrMissingField)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !v.allowed[ext] {
		return fmt.Errorf("%w: %q (allowed: %s)", entity.ErrInvalidExtension, ext, strings.Join(v.cfg.AllowedTypes, ", "))
	}

	if size == 0 {
		return fmt.Errorf("%w: file '%s' is empty", entity.ErrInvalidFile, filename)
	}

	if v.cfg.MaxFileSize > 0 && size > v.cfg.MaxFileSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)", entity.ErrFileTooLarge, filename, size, v.cfg.MaxFileSize)
	}

	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "gte", "lte":
		return fmt.Sprintf("%s is out of range", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// SanitizeFilename sanitizes a filename for safe storage
func SanitizeFilename(filename string) string {
	filename = filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	replacer := strings.NewReplacer(
		" ", "_",
		"(", "",
		")", "",
		"[", "",
		"]", "",
		"{", "",
		"}", "",
	)
	filename = replacer.Replace(filename)
	if filename == "." || filename == "/" {
		return ""
	}
	return filename
}
