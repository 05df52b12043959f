// Package retriever turns a question into the chunks most relevant to it.
package retriever

import (
	"context"
	"fmt"

	"github.com/prakathesh/PDF-AIchatbot/internal/domain"
	"github.com/prakathesh/PDF-AIchatbot/internal/embedding"
	"github.com/prakathesh/PDF-AIchatbot/internal/index"
)

// Retriever embeds a question and queries the index, dropping results below
// the minimum relevance score. An empty result is not an error: it is the
// signal that the document does not cover the question.
type Retriever struct {
	embedder embedding.Embedder
	store    index.Store
	minScore float64
}

// New creates a Retriever. minScore below zero is treated as zero.
func New(embedder embedding.Embedder, store index.Store, minScore float64) *Retriever {
	if minScore < 0 {
		minScore = 0
	}
	return &Retriever{embedder: embedder, store: store, minScore: minScore}
}

// Retrieve returns up to k chunks with similarity at or above the threshold,
// ordered by descending score. Fails with domain.ErrNoDocument when no
// document has been indexed yet.
func (r *Retriever) Retrieve(ctx context.Context, question string, k int) ([]domain.ScoredChunk, error) {
	if !r.store.Ready() {
		return nil, domain.ErrNoDocument
	}
	vec, err := r.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embedding question: %w", err)
	}
	hits, err := r.store.Query(ctx, vec, k)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	kept := hits[:0]
	for _, h := range hits {
		if h.Score >= r.minScore && h.Score > 0 {
			kept = append(kept, h)
		}
	}
	return kept, nil
}
