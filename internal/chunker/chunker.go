// Package chunker splits document text into overlapping windows for
// embedding and retrieval.
package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/prakathesh/PDF-AIchatbot/internal/domain"
)

// WindowChunker slides a fixed-size character window over the text with a
// configured overlap between consecutive windows. Window edges prefer to
// break after whitespace within a small lookback distance so words are not
// split mid-way; if no whitespace exists there, the cut is a hard one,
// adjusted so it never lands inside a multi-byte rune.
type WindowChunker struct {
	chunkSize int
	overlap   int
	lookback  int
}

// NewWindowChunker creates a chunker. Out-of-range parameters fall back to
// defaults: chunkSize 500, overlap 50, lookback 40. Overlap is clamped below
// chunkSize.
func NewWindowChunker(chunkSize, overlap, lookback int) *WindowChunker {
	if chunkSize <= 0 {
		chunkSize = 500
	}
	if overlap < 0 {
		overlap = 50
	}
	if overlap >= chunkSize {
		overlap = chunkSize - 1
	}
	if lookback <= 0 {
		lookback = 40
	}
	if lookback >= chunkSize {
		lookback = chunkSize / 2
	}
	return &WindowChunker{chunkSize: chunkSize, overlap: overlap, lookback: lookback}
}

// Chunk splits the document into sequential chunks. Every byte of the source
// text belongs to at least one chunk, chunk offsets are monotonically
// non-decreasing, and the final chunk may be shorter than the window.
func (c *WindowChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	text := document.Text
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyDocument
	}
	var chunks []domain.Chunk
	start := 0
	idx := 0
	for start < len(text) {
		end := start + c.chunkSize
		if end >= len(text) {
			end = len(text)
		} else {
			end = c.snapToBoundary(text, start, end)
		}
		chunks = append(chunks, domain.Chunk{
			DocumentID: document.ID,
			Index:      idx,
			Start:      start,
			End:        end,
			Text:       text[start:end],
		})
		if end == len(text) {
			break
		}
		next := end - c.overlap
		if next <= start {
			// Guarantee forward progress when snapping shrank the window.
			next = start + 1
		}
		for !utf8.RuneStart(text[next]) {
			next++
		}
		start = next
		idx++
	}
	return chunks, nil
}

// snapToBoundary moves the window edge back to just after the last whitespace
// within the lookback distance. Without whitespace the hard cut backs up to
// the nearest rune start so no multi-byte character is split.
func (c *WindowChunker) snapToBoundary(text string, start, end int) int {
	lo := end - c.lookback
	if lo <= start {
		lo = start + 1
	}
	for i := end; i > lo; i-- {
		if isSpace(text[i-1]) {
			return i
		}
	}
	for end > start && !utf8.RuneStart(text[end]) {
		end--
	}
	if end == start {
		// The rune at start is wider than the window; emit it whole.
		_, n := utf8.DecodeRuneInString(text[start:])
		end = start + n
	}
	return end
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r'
}
