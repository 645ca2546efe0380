package formatter

import (
	"bytes"
	"fmt"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(a Answer) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n_%s_\n\n", baseTitle, a.dateLine())
	fmt.Fprintf(&buf, "## Question\n\n%s\n\n", a.Question)
	fmt.Fprintf(&buf, "## Answer\n\n%s\n", a.Answer)

	if len(a.Sources) > 0 {
		buf.WriteString("\n## Sources\n\n")
		for _, src := range a.Sources {
			fmt.Fprintf(&buf, "- %s\n", src)
		}
	}

	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
