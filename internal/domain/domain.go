package domain

import "time"

// Document is the single ingested document the chatbot answers from.
// Immutable after ingestion; replaced wholesale on a new upload.
type Document struct {
	ID         string
	Name       string
	Text       string
	UploadedAt time.Time
}

// Chunk is a contiguous, possibly overlapping slice of document text used as
// the unit of retrieval. Start and End are byte offsets into Document.Text;
// Index is the sequential position within the document and doubles as the
// chunk's citation identifier.
type Chunk struct {
	DocumentID string
	Index      int
	Start      int
	End        int
	Text       string
}

// Len returns the chunk's length in bytes.
func (c Chunk) Len() int { return len(c.Text) }

// ScoredChunk pairs a chunk with its similarity score for one query.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}

// Answer is the outcome of one question. Grounded is false only for the
// fixed "not present in the document" response, which carries no citations.
type Answer struct {
	Text      string
	Citations []int
	Grounded  bool
}

// Turn is one completed question/answer exchange in the conversation.
type Turn struct {
	Question  string
	Answer    string
	Citations []int
	Grounded  bool
	CreatedAt time.Time
}
