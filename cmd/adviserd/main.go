package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"github.com/adviserhq/adviser/config"
	"github.com/adviserhq/adviser/corpus"
	"github.com/adviserhq/adviser/llm"
	"github.com/adviserhq/adviser/monitor"
	"github.com/adviserhq/adviser/report"
	"github.com/adviserhq/adviser/retrieval"
	"github.com/adviserhq/adviser/server"
	"github.com/adviserhq/adviser/vector"
)

func main() {
	// Load .env if present (API keys).
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "path to config file")
	corpusPath := flag.String("corpus", "", "override corpus chunk file path")
	addr := flag.String("addr", "", "override listen address")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *corpusPath != "" {
		cfg.Corpus.Path = *corpusPath
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	embedder, err := newEmbedder(cfg.Embedder)
	if err != nil {
		log.Fatalf("configure embedder: %v", err)
	}

	// The index is created unloaded and filled exactly once by the startup
	// goroutine. Requests arriving before the load completes get empty
	// results; nothing in the request path can trigger a second load.
	index := vector.NewIndex()
	go func() {
		start := time.Now()
		chunks, err := corpus.Load(cfg.Corpus.Path, cfg.Corpus.MaxChunks)
		if err != nil {
			log.Fatalf("[corpus] load %s: %v", cfg.Corpus.Path, err)
		}
		if err := index.Load(chunks); err != nil {
			log.Fatalf("[corpus] publish index: %v", err)
		}
		log.Printf("[corpus] Loaded %d chunks from %s in %s", len(chunks), cfg.Corpus.Path, time.Since(start).Round(time.Millisecond))
	}()

	collector := monitor.NewInMemoryCollector()
	service := retrieval.New(index, embedder, collector, retrieval.Options{
		TopK:         cfg.Retrieval.TopK,
		MinScore:     cfg.Retrieval.MinScore,
		MinQueryLen:  cfg.Retrieval.MinQueryLen,
		EmbedModel:   cfg.Embedder.Model,
		EmbedTimeout: time.Duration(cfg.Embedder.TimeoutSecs) * time.Second,
	})

	var assembler *report.Assembler
	if cfg.Report.Enabled {
		chat, ok := embedder.(llm.Client)
		if !ok {
			log.Printf("[report] embedding provider has no chat API, /report disabled")
		} else {
			assembler = report.New(chat, cfg.Report.Model, cfg.Report.SystemPrompt)
			log.Printf("[report] Report assembly enabled (model: %s)", cfg.Report.Model)
		}
	}

	srv, err := server.New(server.Config{
		Service:   service,
		Assembler: assembler,
		Metrics:   collector,
		DSN:       cfg.Server.DatabaseDSN,
	})
	if err != nil {
		log.Fatalf("create server: %v", err)
	}
	defer srv.Close()

	log.Printf("Starting adviser server on %s", cfg.Server.Addr)
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, srv.Handler()))
}

func newEmbedder(cfg config.EmbedderConfig) (llm.EmbeddingClient, error) {
	switch cfg.Provider {
	case "openai", "":
		return llm.NewOpenAIClientWithConfig(llm.ClientConfig{
			APIKey:  cfg.APIKey(),
			BaseURL: cfg.BaseURL,
			Timeout: cfg.TimeoutSecs,
		}), nil
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return llm.NewOllamaEmbedClient(baseURL), nil
	default:
		return nil, fmt.Errorf("unknown embedder provider %q", cfg.Provider)
	}
}
