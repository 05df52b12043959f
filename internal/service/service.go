// Package service wires chunking, embedding, indexing, retrieval and answer
// generation into the user-facing chat operations.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prakathesh/PDF-AIchatbot/internal/answerer"
	"github.com/prakathesh/PDF-AIchatbot/internal/chunker"
	"github.com/prakathesh/PDF-AIchatbot/internal/domain"
	"github.com/prakathesh/PDF-AIchatbot/internal/embedding"
	"github.com/prakathesh/PDF-AIchatbot/internal/index"
	"github.com/prakathesh/PDF-AIchatbot/internal/retriever"
	"github.com/prakathesh/PDF-AIchatbot/internal/session"
	"github.com/prakathesh/PDF-AIchatbot/internal/summarizer"
)

// Options tunes the chat service. Zero values fall back to defaults.
type Options struct {
	TopK             int
	MinChunkLen      int
	SummarySentences int
	MaxRetries       int
	RetryBase        time.Duration
}

// ChatService owns the single document, its index and the conversation.
// One mutex serializes ingestion and questions, so a question never sees a
// half-built index and session writes never interleave.
type ChatService struct {
	chunker    *chunker.WindowChunker
	embedder   embedding.Embedder
	store      index.Store
	retriever  *retriever.Retriever
	answerer   *answerer.Answerer
	summarizer *summarizer.Frequency
	session    *session.Session

	topK             int
	minChunkLen      int
	summarySentences int
	maxRetries       int
	retryBase        time.Duration

	mu  sync.Mutex
	doc *domain.Document
}

// New assembles a chat service from its components.
func New(ch *chunker.WindowChunker, emb embedding.Embedder, store index.Store, retr *retriever.Retriever, ans *answerer.Answerer, opts Options) *ChatService {
	if opts.TopK <= 0 {
		opts.TopK = 8
	}
	if opts.MinChunkLen <= 0 {
		opts.MinChunkLen = 40
	}
	if opts.SummarySentences <= 0 {
		opts.SummarySentences = 3
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	if opts.RetryBase <= 0 {
		opts.RetryBase = 200 * time.Millisecond
	}
	return &ChatService{
		chunker:          ch,
		embedder:         emb,
		store:            store,
		retriever:        retr,
		answerer:         ans,
		summarizer:       summarizer.NewFrequency(),
		session:          session.New(),
		topK:             opts.TopK,
		minChunkLen:      opts.MinChunkLen,
		summarySentences: opts.SummarySentences,
		maxRetries:       opts.MaxRetries,
		retryBase:        opts.RetryBase,
	}
}

// SubmitDocument ingests text as the new current document: chunk, embed,
// rebuild the index, clear the conversation. On any failure the previous
// document, index and session stay as they were. Returns a short summary of
// the ingested text.
func (s *ChatService) SubmitDocument(ctx context.Context, name, docText string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := domain.Document{
		ID:         uuid.NewString(),
		Name:       name,
		Text:       docText,
		UploadedAt: time.Now(),
	}
	chunks, err := s.chunker.Chunk(doc)
	if err != nil {
		return "", err
	}
	chunks = dropTinyChunks(chunks, s.minChunkLen)
	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}
	if err := s.embedder.Prepare(ctx, texts); err != nil {
		return "", fmt.Errorf("preparing embedder: %w", err)
	}
	var vectors [][]float64
	err = s.withRetry(ctx, func() error {
		var embedErr error
		vectors, embedErr = s.embedder.EmbedBatch(ctx, texts)
		return embedErr
	})
	if err != nil {
		return "", fmt.Errorf("embedding document: %w", err)
	}
	if err := s.store.Build(ctx, chunks, vectors); err != nil {
		return "", fmt.Errorf("building index: %w", err)
	}
	s.session.Clear()
	s.doc = &doc

	summary, err := s.summarizer.Summarize(docText, s.summarySentences)
	if err != nil {
		return "", fmt.Errorf("summarizing document: %w", err)
	}
	return summary, nil
}

// Ask answers one question from the current document. Transient service
// failures are retried with backoff; after the retry budget the error is
// returned and no turn is recorded.
func (s *ChatService) Ask(ctx context.Context, question string) (domain.Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return domain.Answer{}, domain.ErrNoDocument
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.Answer{}, errors.New("question is empty")
	}

	var hits []domain.ScoredChunk
	err := s.withRetry(ctx, func() error {
		var retrErr error
		hits, retrErr = s.retriever.Retrieve(ctx, question, s.topK)
		return retrErr
	})
	if err != nil {
		return domain.Answer{}, err
	}

	history := s.session.History()
	var ans domain.Answer
	err = s.withRetry(ctx, func() error {
		var ansErr error
		ans, ansErr = s.answerer.Answer(ctx, question, hits, history)
		return ansErr
	})
	if err != nil {
		return domain.Answer{}, err
	}

	s.session.Append(domain.Turn{
		Question:  question,
		Answer:    ans.Text,
		Citations: ans.Citations,
		Grounded:  ans.Grounded,
		CreatedAt: time.Now(),
	})
	return ans, nil
}

// History returns all recorded conversation turns in order.
func (s *ChatService) History() []domain.Turn {
	return s.session.History()
}

// DocumentName returns the current document's display name, or empty when
// nothing has been ingested.
func (s *ChatService) DocumentName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return ""
	}
	return s.doc.Name
}

// withRetry runs fn, retrying transient embedding/generation failures up to
// maxRetries times with exponential backoff. Structural errors return
// immediately.
func (s *ChatService) withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = fn()
		if err == nil || !transient(err) || attempt >= s.maxRetries {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryDelay(attempt, s.retryBase)):
		}
	}
}

func transient(err error) bool {
	return errors.Is(err, domain.ErrEmbeddingService) || errors.Is(err, domain.ErrGenerationService)
}

func retryDelay(attempt int, base time.Duration) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	// exponential backoff capped at 5s
	d := base << attempt
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}

// dropTinyChunks removes whitespace-padding fragments from the index input.
// When every chunk is tiny the original set is kept, so a short document is
// still retrievable.
func dropTinyChunks(chunks []domain.Chunk, minLen int) []domain.Chunk {
	kept := make([]domain.Chunk, 0, len(chunks))
	for _, ch := range chunks {
		if len(strings.TrimSpace(ch.Text)) >= minLen {
			kept = append(kept, ch)
		}
	}
	if len(kept) == 0 {
		return chunks
	}
	return kept
}
