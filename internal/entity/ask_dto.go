package entity

import "strings"

// AskRequest is the body of POST /ask
type AskRequest struct {
	Question  string       `json:"question" validate:"required,min=2,max=200"`
	Lang      LanguageCode `json:"lang" validate:"omitempty,oneof=auto en am om so ti"`
	Location  string       `json:"location"`
	Latitude  *float64     `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64     `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

// Normalize applies request defaults
func (r *AskRequest) Normalize() {
	if r.Lang == "" {
		r.Lang = LangEnglish
	}
	r.Location = strings.TrimSpace(r.Location)
}

// HasCoordinates reports whether both coordinates were supplied.
// A zero coordinate is a valid position.
func (r *AskRequest) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// AskResponse is the body returned by POST /ask
type AskResponse struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

// ResultFormat is the file format of an exported answer
type ResultFormat string

const (
	FormatMarkdown ResultFormat = "markdown"
	FormatDOCX     ResultFormat = "docx"
	FormatPDF      ResultFormat = "pdf"
)

func (f ResultFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatDOCX, FormatPDF:
		return true
	default:
		return false
	}
}

// ExportedAnswer is an answer rendered into a downloadable file
type ExportedAnswer struct {
	Filename    string
	ContentType string
	Content     []byte
}
