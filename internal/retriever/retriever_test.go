package retriever

import (
	"context"
	"errors"
	"testing"

	"github.com/prakathesh/PDF-AIchatbot/internal/domain"
)

type fakeEmbedder struct {
	vec    []float64
	err    error
	embeds int
}

func (f *fakeEmbedder) Name() string                              { return "fake" }
func (f *fakeEmbedder) Prepare(context.Context, []string) error   { return nil }
func (f *fakeEmbedder) Dimension() int                            { return len(f.vec) }
func (f *fakeEmbedder) Embed(context.Context, string) ([]float64, error) {
	f.embeds++
	return f.vec, f.err
}
func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i := range texts {
		v, err := f.Embed(ctx, texts[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

type fakeStore struct {
	ready   bool
	hits    []domain.ScoredChunk
	queries int
}

func (f *fakeStore) Build(context.Context, []domain.Chunk, [][]float64) error { return nil }
func (f *fakeStore) Query(_ context.Context, _ []float64, k int) ([]domain.ScoredChunk, error) {
	f.queries++
	if k > len(f.hits) {
		k = len(f.hits)
	}
	return f.hits[:k], nil
}
func (f *fakeStore) Ready() bool                 { return f.ready }
func (f *fakeStore) Len() int                    { return len(f.hits) }
func (f *fakeStore) Clear(context.Context) error { return nil }

func scored(idx int, score float64) domain.ScoredChunk {
	return domain.ScoredChunk{Chunk: domain.Chunk{Index: idx}, Score: score}
}

func TestRetrieve_NoDocument(t *testing.T) {
	r := New(&fakeEmbedder{vec: []float64{1}}, &fakeStore{ready: false}, 0.1)
	_, err := r.Retrieve(context.Background(), "question", 3)
	if !errors.Is(err, domain.ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument, got %v", err)
	}
}

func TestRetrieve_FiltersBelowThreshold(t *testing.T) {
	store := &fakeStore{
		ready: true,
		hits:  []domain.ScoredChunk{scored(0, 0.9), scored(1, 0.4), scored(2, 0.05)},
	}
	r := New(&fakeEmbedder{vec: []float64{1}}, store, 0.3)
	got, err := r.Retrieve(context.Background(), "question", 3)
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 hits above threshold, got %d", len(got))
	}
	for _, h := range got {
		if h.Score < 0.3 {
			t.Errorf("hit %d below threshold: %f", h.Chunk.Index, h.Score)
		}
	}
}

func TestRetrieve_AllBelowThresholdIsEmptyNotError(t *testing.T) {
	store := &fakeStore{ready: true, hits: []domain.ScoredChunk{scored(0, 0.1), scored(1, 0.0)}}
	r := New(&fakeEmbedder{vec: []float64{1}}, store, 0.5)
	got, err := r.Retrieve(context.Background(), "unrelated question", 2)
	if err != nil {
		t.Fatalf("empty result must not be an error, got %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d hits", len(got))
	}
}

func TestRetrieve_PropagatesEmbeddingFailure(t *testing.T) {
	emb := &fakeEmbedder{err: domain.ErrEmbeddingService}
	store := &fakeStore{ready: true}
	r := New(emb, store, 0)
	_, err := r.Retrieve(context.Background(), "question", 3)
	if !errors.Is(err, domain.ErrEmbeddingService) {
		t.Fatalf("expected wrapped ErrEmbeddingService, got %v", err)
	}
	if store.queries != 0 {
		t.Error("index must not be queried when embedding fails")
	}
}

func TestRetrieve_DropsZeroScores(t *testing.T) {
	store := &fakeStore{ready: true, hits: []domain.ScoredChunk{scored(0, 0.0)}}
	r := New(&fakeEmbedder{vec: []float64{1}}, store, 0)
	got, err := r.Retrieve(context.Background(), "question", 1)
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("zero-similarity hits must be dropped, got %d", len(got))
	}
}
