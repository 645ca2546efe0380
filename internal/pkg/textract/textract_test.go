package textract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestDecodeText_UTF8(t *testing.T) {
	text, enc, err := DecodeText([]byte("ጤፍ teff"))
	require.NoError(t, err)
	assert.Equal(t, "ጤፍ teff", text)
	assert.Equal(t, "UTF-8", enc)
}

func TestDecodeText_BOM(t *testing.T) {
	text, enc, err := DecodeText(append([]byte{0xEF, 0xBB, 0xBF}, []byte("maize")...))
	require.NoError(t, err)
	assert.Equal(t, "maize", text)
	assert.Equal(t, "UTF-8-BOM", enc)
}

func TestDecodeText_Windows1252(t *testing.T) {
	raw, err := charmap.Windows1252.NewEncoder().String("café au lait")
	require.NoError(t, err)

	text, enc, err := DecodeText([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "café au lait", text)
	assert.Equal(t, "Windows-1252", enc)
}

func TestExtract_PlainText(t *testing.T) {
	text, err := Extract("notes.MD", []byte("# Sorghum\n\nDrought tolerant."))
	require.NoError(t, err)
	assert.Contains(t, text, "Drought tolerant.")
}

func TestChunker_SmallDocumentIsOneChunk(t *testing.T) {
	chunks := NewChunker(100, 10).Split("  Short note about coffee rust.  ")
	assert.Equal(t, []string{"Short note about coffee rust."}, chunks)
}

func TestChunker_EmptyDocument(t *testing.T) {
	assert.Empty(t, NewChunker(100, 10).Split(" \n\n "))
}

func TestChunker_PrefersParagraphBreaks(t *testing.T) {
	para := strings.Repeat("word ", 18) // 90 runes
	content := para + "\n\n" + para + "\n\n" + para

	chunks := NewChunker(100, 10).Split(content)
	require.GreaterOrEqual(t, len(chunks), 3)
	assert.Equal(t, strings.TrimSpace(para), chunks[0])
}

func TestChunker_OverlapAndProgress(t *testing.T) {
	content := strings.Repeat("a", 250)

	chunks := NewChunker(100, 20).Split(content)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 100)
	assert.Len(t, chunks[1], 100)
	assert.Len(t, chunks[2], 90)
}

func TestChunker_MultiByteRunes(t *testing.T) {
	content := strings.Repeat("ሰላም ", 100)

	for _, chunk := range NewChunker(50, 5).Split(content) {
		assert.LessOrEqual(t, len([]rune(chunk)), 50)
		assert.NotContains(t, chunk, "�")
	}
}
