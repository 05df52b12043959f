package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/prakathesh/PDF-AIchatbot/internal/domain"
)

func chunk(i int) domain.Chunk {
	return domain.Chunk{DocumentID: "doc", Index: i, Text: "chunk"}
}

func TestQuery_BeforeBuild(t *testing.T) {
	s := NewStore()
	_, err := s.Query(context.Background(), []float64{1, 0}, 3)
	if !errors.Is(err, domain.ErrIndexNotReady) {
		t.Fatalf("expected ErrIndexNotReady, got %v", err)
	}
	if s.Ready() {
		t.Error("store should not be ready before build")
	}
}

func TestBuild_RejectsMixedDimensions(t *testing.T) {
	s := NewStore()
	err := s.Build(context.Background(), []domain.Chunk{chunk(0), chunk(1)}, [][]float64{{1, 0}, {1, 0, 0}})
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestBuild_RejectsLengthMismatch(t *testing.T) {
	s := NewStore()
	err := s.Build(context.Background(), []domain.Chunk{chunk(0)}, [][]float64{{1}, {0}})
	if err == nil {
		t.Fatal("expected error for chunks/vectors length mismatch")
	}
}

func TestQuery_RejectsWrongQueryDimension(t *testing.T) {
	s := NewStore()
	if err := s.Build(context.Background(), []domain.Chunk{chunk(0)}, [][]float64{{1, 0}}); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	_, err := s.Query(context.Background(), []float64{1, 0, 0}, 1)
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestQuery_OrdersByDescendingScore(t *testing.T) {
	s := NewStore()
	chunks := []domain.Chunk{chunk(0), chunk(1), chunk(2), chunk(3)}
	vectors := [][]float64{
		{0, 1},          // orthogonal
		{1, 0},          // exact match
		{0.7071, 0.7071}, // diagonal
		{-1, 0},         // opposite
	}
	if err := s.Build(context.Background(), chunks, vectors); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	got, err := s.Query(context.Background(), []float64{1, 0}, 4)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	wantOrder := []int{1, 2, 0, 3}
	for i, w := range wantOrder {
		if got[i].Chunk.Index != w {
			t.Errorf("position %d: got chunk %d, want %d", i, got[i].Chunk.Index, w)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Errorf("scores not descending at position %d", i)
		}
	}
}

func TestQuery_TieBreaksByChunkIndex(t *testing.T) {
	s := NewStore()
	// Identical vectors guarantee identical scores.
	chunks := []domain.Chunk{chunk(2), chunk(0), chunk(1)}
	vectors := [][]float64{{1, 0}, {1, 0}, {1, 0}}
	if err := s.Build(context.Background(), chunks, vectors); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	got, err := s.Query(context.Background(), []float64{1, 0}, 3)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	for i, want := range []int{0, 1, 2} {
		if got[i].Chunk.Index != want {
			t.Errorf("position %d: got chunk %d, want %d", i, got[i].Chunk.Index, want)
		}
	}
}

func TestQuery_NeverReturnsMoreThanStored(t *testing.T) {
	s := NewStore()
	if err := s.Build(context.Background(), []domain.Chunk{chunk(0), chunk(1)}, [][]float64{{1, 0}, {0, 1}}); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	got, err := s.Query(context.Background(), []float64{1, 0}, 10)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results when k exceeds size, got %d", len(got))
	}
	if _, err := s.Query(context.Background(), []float64{1, 0}, 0); err == nil {
		t.Error("expected error for k == 0")
	}
}

func TestBuild_ReplacesPreviousIndex(t *testing.T) {
	s := NewStore()
	if err := s.Build(context.Background(), []domain.Chunk{chunk(0), chunk(1)}, [][]float64{{1, 0}, {0, 1}}); err != nil {
		t.Fatalf("first build failed: %v", err)
	}
	replacement := []domain.Chunk{{DocumentID: "doc2", Index: 0, Text: "new"}}
	if err := s.Build(context.Background(), replacement, [][]float64{{0, 1}}); err != nil {
		t.Fatalf("second build failed: %v", err)
	}
	got, err := s.Query(context.Background(), []float64{0, 1}, 5)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(got) != 1 || got[0].Chunk.DocumentID != "doc2" {
		t.Fatalf("query returned chunks from the replaced index: %+v", got)
	}
	if s.Len() != 1 {
		t.Errorf("expected len 1, got %d", s.Len())
	}
}

func TestBuild_RebuildMayChangeDimension(t *testing.T) {
	s := NewStore()
	if err := s.Build(context.Background(), []domain.Chunk{chunk(0)}, [][]float64{{1, 0}}); err != nil {
		t.Fatalf("first build failed: %v", err)
	}
	if err := s.Build(context.Background(), []domain.Chunk{chunk(0)}, [][]float64{{0, 1, 0}}); err != nil {
		t.Fatalf("rebuild with a wider vector failed: %v", err)
	}
	if _, err := s.Query(context.Background(), []float64{0, 1, 0}, 1); err != nil {
		t.Fatalf("query with the new dimension failed: %v", err)
	}
	if _, err := s.Query(context.Background(), []float64{1, 0}, 1); !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch for the old dimension, got %v", err)
	}
}

func TestClear_MakesStoreNotReady(t *testing.T) {
	s := NewStore()
	if err := s.Build(context.Background(), []domain.Chunk{chunk(0)}, [][]float64{{1}}); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if err := s.Clear(context.Background()); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, err := s.Query(context.Background(), []float64{1}, 1); !errors.Is(err, domain.ErrIndexNotReady) {
		t.Fatalf("expected ErrIndexNotReady after clear, got %v", err)
	}
}

func TestQuery_ZeroVectorScoresZero(t *testing.T) {
	s := NewStore()
	if err := s.Build(context.Background(), []domain.Chunk{chunk(0)}, [][]float64{{1, 0}}); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	got, err := s.Query(context.Background(), []float64{0, 0}, 1)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if got[0].Score != 0 {
		t.Errorf("expected score 0 for zero query vector, got %f", got[0].Score)
	}
}
