package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Chunker.ChunkSize != 500 || *cfg.Chunker.Overlap != 50 {
		t.Errorf("unexpected chunker defaults: %+v", cfg.Chunker)
	}
	if cfg.Retrieval.TopK != 8 {
		t.Errorf("expected default top_k 8, got %d", cfg.Retrieval.TopK)
	}
	if cfg.Embedder.Type != "tfidf" {
		t.Errorf("expected default embedder tfidf, got %q", cfg.Embedder.Type)
	}
}

func TestLoad_AppliesDefaultsToPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "chunker:\n  chunk_size: 1200\nembedder:\n  type: openai\n  openai: {}\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Chunker.ChunkSize != 1200 {
		t.Errorf("explicit chunk_size overridden: %d", cfg.Chunker.ChunkSize)
	}
	if *cfg.Chunker.Overlap != 50 {
		t.Errorf("overlap default not applied: %d", *cfg.Chunker.Overlap)
	}
	if cfg.Embedder.OpenAI.Model != "text-embedding-3-small" {
		t.Errorf("openai embedder defaults not applied: %+v", cfg.Embedder.OpenAI)
	}
	if cfg.Embedder.OpenAI.APIKeyEnv != "OPENAI_API_KEY" {
		t.Errorf("api key env default not applied: %q", cfg.Embedder.OpenAI.APIKeyEnv)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	want := defaultConfig()
	want.Retrieval.MinScore = floatPtr(0.42)
	if err := Save(path, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *got.Retrieval.MinScore != 0.42 {
		t.Errorf("min_score lost in round trip: %f", *got.Retrieval.MinScore)
	}
	if got.Index.Type != "memory" {
		t.Errorf("index type lost in round trip: %q", got.Index.Type)
	}
}

func TestLoad_ExplicitZerosSurviveDefaulting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "chunker:\n  overlap: 0\nretrieval:\n  min_score: 0\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *cfg.Chunker.Overlap != 0 {
		t.Errorf("explicit overlap 0 overridden: %d", *cfg.Chunker.Overlap)
	}
	if *cfg.Retrieval.MinScore != 0 {
		t.Errorf("explicit min_score 0 overridden: %f", *cfg.Retrieval.MinScore)
	}
	if cfg.Chunker.ChunkSize != 500 {
		t.Errorf("absent chunk_size should still default: %d", cfg.Chunker.ChunkSize)
	}
	if cfg.Retrieval.TopK != 8 {
		t.Errorf("absent top_k should still default: %d", cfg.Retrieval.TopK)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("chunker: [not a map"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}
