package index

import (
	"context"

	"github.com/prakathesh/PDF-AIchatbot/internal/domain"
)

// Store holds the current document's chunks with their vectors and serves
// nearest-neighbor similarity queries. Build replaces the whole index
// atomically; Query must not observe a partially built state.
type Store interface {
	Build(ctx context.Context, chunks []domain.Chunk, vectors [][]float64) error
	Query(ctx context.Context, vector []float64, k int) ([]domain.ScoredChunk, error)
	Ready() bool
	Len() int
	Clear(ctx context.Context) error
}
