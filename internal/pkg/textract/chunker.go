package textract

import (
	"strings"
	"unicode"
)

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 100
)

// Chunker splits text into overlapping chunks, preferring paragraph,
// line, sentence and word boundaries. Sizes are counted in runes.
type Chunker struct {
	ChunkSize    int
	ChunkOverlap int
}

func NewChunker(size, overlap int) *Chunker {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = size / 10
	}
	return &Chunker{
		ChunkSize:    size,
		ChunkOverlap: overlap,
	}
}

// Split returns the non-blank chunks of content in document order
func (c *Chunker) Split(content string) []string {
	text := []rune(normalizeNewlines(content))
	if len(text) == 0 {
		return nil
	}

	var chunks []string
	position := 0
	for position < len(text) {
		end := position + c.ChunkSize
		if end >= len(text) {
			end = len(text)
		} else {
			end = c.findBreakPoint(text, position, end)
		}

		if chunk := strings.TrimSpace(string(text[position:end])); chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end == len(text) {
			break
		}

		next := end - c.ChunkOverlap
		if next <= position {
			next = position + 1
		}
		position = next
	}

	return chunks
}

// findBreakPoint searches back up to a fifth of the chunk size for a natural boundary
func (c *Chunker) findBreakPoint(text []rune, start, targetEnd int) int {
	searchStart := targetEnd - c.ChunkSize/5
	if searchStart < start {
		searchStart = start
	}

	// paragraph break
	for i := targetEnd - 1; i > searchStart; i-- {
		if text[i] == '\n' && text[i-1] == '\n' {
			return i + 1
		}
	}

	for i := targetEnd - 1; i >= searchStart; i-- {
		if text[i] == '\n' {
			return i + 1
		}
	}

	for i := targetEnd - 1; i >= searchStart; i-- {
		if isSentenceEnd(text[i]) && i+1 < len(text) && unicode.IsSpace(text[i+1]) {
			return i + 1
		}
	}

	for i := targetEnd - 1; i >= searchStart; i-- {
		if unicode.IsSpace(text[i]) {
			return i + 1
		}
	}

	return targetEnd
}

// Ethiopic full stop and question mark count as sentence ends
func isSentenceEnd(r rune) bool {
	switch r {
	case '.', '!', '?', '።', '፧':
		return true
	}
	return false
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\r", "\n")
}
