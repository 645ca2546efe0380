package textract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/unidoc/unioffice/common/license"
	"github.com/unidoc/unioffice/document"
)

// SetLicenseKey registers the metered unioffice key needed to read .docx files
func SetLicenseKey(key string) error {
	if key == "" {
		return nil
	}
	if err := license.SetMeteredKey(key); err != nil {
		return fmt.Errorf("set unioffice license: %w", err)
	}
	return nil
}

// Extract returns the plain text of an uploaded file based on its extension
func Extract(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx":
		return extractDOCX(data)
	default:
		text, _, err := DecodeText(data)
		return text, err
	}
}

func extractDOCX(data []byte) (string, error) {
	doc, err := document.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for _, p := range doc.Paragraphs() {
		var line strings.Builder
		for _, r := range p.Runs() {
			line.WriteString(r.Text())
		}
		if text := strings.TrimSpace(line.String()); text != "" {
			sb.WriteString(text)
			sb.WriteString("\n\n")
		}
	}

	return strings.TrimSpace(sb.String()), nil
}
