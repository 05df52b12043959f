// Package qdrant backs the index with a remote Qdrant collection over its
// REST API. The collection is recreated on every build so a new document
// fully replaces the previous one.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prakathesh/PDF-AIchatbot/internal/domain"
)

// Store is a minimal REST client to Qdrant using cosine distance.
type Store struct {
	url        string
	apiKey     string
	collection string
	client     *http.Client

	mu        sync.RWMutex
	dimension int
	count     int
	ready     bool
}

// Config contains connection details for a Qdrant vector store.
type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

// NewStore creates a Qdrant-backed store. No network call happens until Build.
func NewStore(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Store{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

// Build drops the collection, recreates it with the vectors' dimension and
// upserts every chunk with its offsets and text as payload.
func (s *Store) Build(ctx context.Context, chunks []domain.Chunk, vectors [][]float64) error {
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
	for i, v := range vectors {
		if len(v) != dim {
			return fmt.Errorf("%w: vector %d has %d dimensions, want %d", domain.ErrDimensionMismatch, i, len(v), dim)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = false

	// Drop any previous collection; Qdrant ignores a missing one.
	_ = s.deleteCollection(ctx)
	create := map[string]any{
		"vectors": map[string]any{"size": dim, "distance": "Cosine"},
	}
	if err := s.putJSON(ctx, fmt.Sprintf("%s/collections/%s", s.url, s.collection), create); err != nil {
		return err
	}
	points := make([]map[string]any, len(chunks))
	for i, ch := range chunks {
		points[i] = map[string]any{
			"id":     ch.Index,
			"vector": vectors[i],
			"payload": map[string]any{
				"document_id": ch.DocumentID,
				"index":       ch.Index,
				"start":       ch.Start,
				"end":         ch.End,
				"text":        ch.Text,
			},
		}
	}
	body := map[string]any{"points": points}
	if err := s.putJSON(ctx, fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection), body); err != nil {
		return err
	}
	s.dimension = dim
	s.count = len(chunks)
	s.ready = true
	return nil
}

// Query runs a cosine similarity search. Tie ordering inside Qdrant is not
// specified, so equal-score results are re-sorted by chunk index client-side.
func (s *Store) Query(ctx context.Context, vector []float64, k int) ([]domain.ScoredChunk, error) {
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
	req := map[string]any{
		"vector":       vector,
		"limit":        k,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection), req, &resp); err != nil {
		return nil, err
	}
	results := make([]domain.ScoredChunk, 0, len(resp.Result))
	for _, r := range resp.Result {
		chunk := domain.Chunk{}
		if v, ok := r.Payload["document_id"].(string); ok {
			chunk.DocumentID = v
		}
		if v, ok := r.Payload["index"].(float64); ok {
			chunk.Index = int(v)
		}
		if v, ok := r.Payload["start"].(float64); ok {
			chunk.Start = int(v)
		}
		if v, ok := r.Payload["end"].(float64); ok {
			chunk.End = int(v)
		}
		if v, ok := r.Payload["text"].(string); ok {
			chunk.Text = v
		}
		results = append(results, domain.ScoredChunk{Chunk: chunk, Score: r.Score})
	}
	for i := 1; i < len(results); i++ {
		for j := i; j > 0 && results[j-1].Score == results[j].Score && results[j-1].Chunk.Index > results[j].Chunk.Index; j-- {
			results[j-1], results[j] = results[j], results[j-1]
		}
	}
	return results, nil
}

// Ready reports whether a build has completed.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Len returns the number of chunks upserted by the last build.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

// Clear drops the collection, best-effort.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = false
	s.count = 0
	return s.deleteCollection(ctx)
}

func (s *Store) deleteCollection(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/collections/%s", s.url, s.collection), nil)
	if err != nil {
		return err
	}
	s.auth(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (s *Store) putJSON(ctx context.Context, url string, body any) error {
	return s.doJSON(ctx, http.MethodPut, url, body, nil)
}

func (s *Store) postJSON(ctx context.Context, url string, body any, out any) error {
	return s.doJSON(ctx, http.MethodPost, url, body, out)
}

func (s *Store) doJSON(ctx context.Context, method, url string, body, out any) error {
	data, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	s.auth(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant %s %s failed: %s", method, url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (s *Store) auth(req *http.Request) {
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
}
