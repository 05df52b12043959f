// Package memory provides the in-memory brute-force cosine index. At the
// target scale (one document, hundreds to low thousands of chunks) an exact
// scan beats approximate structures on both correctness and simplicity.
package memory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/prakathesh/PDF-AIchatbot/internal/domain"
)

// Store keeps chunk vectors in memory and scores queries by cosine
// similarity. Build stages the new content and swaps it in under the write
// lock, so concurrent queries see either the old or the new index, never a
// mix.
type Store struct {
	mu        sync.RWMutex
	dimension int
	chunks    []domain.Chunk
	vectors   [][]float64
	norms     []float64
	ready     bool
}

// NewStore creates an empty, not-yet-ready store.
func NewStore() *Store { return &Store{} }

// Build replaces the index contents with the given chunks and vectors.
// Each build fixes its own dimension from its vectors; all vectors in the
// batch and all subsequent queries must match it. A rebuild may change it
// since the TF-IDF vocabulary follows the document.
func (s *Store) Build(_ context.Context, chunks []domain.Chunk, vectors [][]float64) error {
	if len(chunks) != len(vectors) {
		return errors.New("chunks and vectors length mismatch")
	}
	if len(chunks) == 0 {
		return errors.New("cannot build an empty index")
	}
	dim := len(vectors[0])
	if dim == 0 {
		return fmt.Errorf("%w: zero-length vector", domain.ErrDimensionMismatch)
	}
	staged := make([][]float64, len(vectors))
	norms := make([]float64, len(vectors))
	for i, v := range vectors {
		if len(v) != dim {
			return fmt.Errorf("%w: vector %d has %d dimensions, want %d", domain.ErrDimensionMismatch, i, len(v), dim)
		}
		staged[i] = v
		norms[i] = l2(v)
	}
	stagedChunks := make([]domain.Chunk, len(chunks))
	copy(stagedChunks, chunks)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dim
	s.chunks = stagedChunks
	s.vectors = staged
	s.norms = norms
	s.ready = true
	return nil
}

// Query returns up to k chunks ordered by descending cosine similarity.
// Ties break by ascending chunk index so results are reproducible.
func (s *Store) Query(_ context.Context, vector []float64, k int) ([]domain.ScoredChunk, error) {
	if k <= 0 {
		return nil, errors.New("k must be positive")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return nil, domain.ErrIndexNotReady
	}
	if len(vector) != s.dimension {
		return nil, fmt.Errorf("%w: query vector has %d dimensions, want %d", domain.ErrDimensionMismatch, len(vector), s.dimension)
	}
	qnorm := l2(vector)
	results := make([]domain.ScoredChunk, len(s.chunks))
	for i := range s.vectors {
		score := 0.0
		if qnorm > 0 && s.norms[i] > 0 {
			score = dot(s.vectors[i], vector) / (s.norms[i] * qnorm)
		}
		results[i] = domain.ScoredChunk{Chunk: s.chunks[i], Score: score}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Chunk.Index < results[j].Chunk.Index
	})
	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

// Ready reports whether a build has completed.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Len returns the number of indexed chunks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

// Clear drops all contents and marks the store not ready.
func (s *Store) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = nil
	s.vectors = nil
	s.norms = nil
	s.ready = false
	return nil
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func l2(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
