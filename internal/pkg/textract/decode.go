package textract

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeText converts raw plain-text bytes to UTF-8. It honours UTF-8 and
// UTF-16 byte order marks and falls back to Windows-1252 for legacy files.
func DecodeText(data []byte) (string, string, error) {
	if bytes.HasPrefix(data, utf8BOM) {
		return string(data[len(utf8BOM):]), "UTF-8-BOM", nil
	}

	if len(data) >= 2 {
		switch {
		case data[0] == 0xFF && data[1] == 0xFE:
			s, err := decodeWith(data, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM))
			return s, "UTF-16LE", err
		case data[0] == 0xFE && data[1] == 0xFF:
			s, err := decodeWith(data, unicode.UTF16(unicode.BigEndian, unicode.UseBOM))
			return s, "UTF-16BE", err
		}
	}

	if utf8.Valid(data) {
		return string(data), "UTF-8", nil
	}

	s, err := decodeWith(data, charmap.Windows1252)
	return s, "Windows-1252", err
}

func decodeWith(data []byte, enc encoding.Encoding) (string, error) {
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("decode text: %w", err)
	}
	return string(out), nil
}
