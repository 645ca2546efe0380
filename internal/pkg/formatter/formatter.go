package formatter

import (
	"fmt"
	"time"

	"github.com/nilecare/advisory-backend/internal/entity"
)

const baseTitle = "Nile Care AI Farm Advisory"

// Answer is the content of an exported advisory answer
type Answer struct {
	Question  string
	Answer    string
	Sources   []string
	CreatedAt time.Time
}

func (a Answer) dateLine() string {
	return a.CreatedAt.UTC().Format("2006-01-02 15:04 MST")
}

type Formatter interface {
	Format(answer Answer) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", entity.ErrInvalidFormat, format)
	}
}
