package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/prakathesh/PDF-AIchatbot/internal/answerer"
	"github.com/prakathesh/PDF-AIchatbot/internal/chunker"
	"github.com/prakathesh/PDF-AIchatbot/internal/config"
	"github.com/prakathesh/PDF-AIchatbot/internal/embedding"
	oaiembed "github.com/prakathesh/PDF-AIchatbot/internal/embedding/openai"
	"github.com/prakathesh/PDF-AIchatbot/internal/embedding/tfidf"
	"github.com/prakathesh/PDF-AIchatbot/internal/extract"
	"github.com/prakathesh/PDF-AIchatbot/internal/generation"
	"github.com/prakathesh/PDF-AIchatbot/internal/generation/ollama"
	oaigen "github.com/prakathesh/PDF-AIchatbot/internal/generation/openai"
	"github.com/prakathesh/PDF-AIchatbot/internal/index"
	"github.com/prakathesh/PDF-AIchatbot/internal/index/memory"
	"github.com/prakathesh/PDF-AIchatbot/internal/index/qdrant"
	"github.com/prakathesh/PDF-AIchatbot/internal/retriever"
	"github.com/prakathesh/PDF-AIchatbot/internal/service"
	"github.com/prakathesh/PDF-AIchatbot/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/pdfchat/config.yaml if not provided)")
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		fmt.Println("Usage: pdfchat [--config=config.yaml] document.pdf")
		os.Exit(1)
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Assemble components
	var emb embedding.Embedder
	switch cfg.Embedder.Type {
	case "tfidf", "":
		emb = tfidf.New()
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			log.Fatalf("openai embedder config missing")
		}
		client, err := oaiembed.NewClient(oaiembed.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			log.Fatalf("openai embedder init failed: %v", err)
		}
		emb = client
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
	}

	var store index.Store
	switch cfg.Index.Type {
	case "memory", "":
		store = memory.NewStore()
	case "qdrant":
		if cfg.Index.Qdrant == nil {
			log.Fatalf("qdrant config missing")
		}
		store = qdrant.NewStore(qdrant.Config{
			URL:        cfg.Index.Qdrant.URL,
			APIKey:     cfg.Index.Qdrant.APIKey,
			Collection: cfg.Index.Qdrant.Collection,
			Timeout:    time.Duration(cfg.Index.Qdrant.TimeoutSecs) * time.Second,
		})
	default:
		log.Fatalf("unknown index: %s", cfg.Index.Type)
	}

	var gen generation.Generator
	switch cfg.Generator.Type {
	case "ollama", "":
		var ocfg ollama.Config
		if cfg.Generator.Ollama != nil {
			ocfg = ollama.Config{
				BaseURL: cfg.Generator.Ollama.BaseURL,
				Model:   cfg.Generator.Ollama.Model,
				Timeout: time.Duration(cfg.Generator.Ollama.TimeoutSecs) * time.Second,
			}
		}
		gen = ollama.NewClient(ocfg)
	case "openai":
		if cfg.Generator.OpenAI == nil {
			log.Fatalf("openai generator config missing")
		}
		client, err := oaigen.NewClient(oaigen.Config{
			BaseURL:     cfg.Generator.OpenAI.BaseURL,
			APIKeyEnv:   cfg.Generator.OpenAI.APIKeyEnv,
			Model:       cfg.Generator.OpenAI.Model,
			Temperature: cfg.Generator.OpenAI.Temperature,
			Timeout:     time.Duration(cfg.Generator.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			log.Fatalf("openai generator init failed: %v", err)
		}
		gen = client
	default:
		log.Fatalf("unknown generator: %s", cfg.Generator.Type)
	}

	ch := chunker.NewWindowChunker(cfg.Chunker.ChunkSize, *cfg.Chunker.Overlap, cfg.Chunker.BoundaryLookback)
	retr := retriever.New(emb, store, *cfg.Retrieval.MinScore)
	ans := answerer.New(gen, cfg.Answer.MaxContextChars, cfg.Answer.HistoryTurns)

	svc := service.New(ch, emb, store, retr, ans, service.Options{TopK: cfg.Retrieval.TopK})

	name, content, err := extract.File(args[0])
	if err != nil {
		log.Fatalf("failed to read document: %v", err)
	}
	summary, err := svc.SubmitDocument(context.Background(), name, content)
	if err != nil {
		log.Fatalf("ingest failed: %v", err)
	}

	m := tui.New(svc, summary)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
