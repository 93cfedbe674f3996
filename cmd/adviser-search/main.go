package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/adviserhq/adviser/config"
	"github.com/adviserhq/adviser/corpus"
	"github.com/adviserhq/adviser/llm"
	"github.com/adviserhq/adviser/retrieval"
	"github.com/adviserhq/adviser/vector"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "path to config file")
	corpusPath := flag.String("corpus", "", "override corpus chunk file path")
	top := flag.Int("top", 0, "number of results to return")
	minScore := flag.Float64("min-score", 0.03, "minimum similarity score, zero or negative to keep everything")
	full := flag.Bool("full", false, "show full chunk text instead of a preview")
	flag.Parse()

	// flag.Visit distinguishes an explicit -min-score 0 from the default.
	minScoreSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "min-score" {
			minScoreSet = true
		}
	})

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: adviser-search [options] <query>\n\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	query := strings.Join(args, " ")

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal("load config: %v", err)
	}
	if *corpusPath != "" {
		cfg.Corpus.Path = *corpusPath
	}
	if *top > 0 {
		cfg.Retrieval.TopK = *top
	}
	if minScoreSet {
		cfg.Retrieval.MinScore = minScore
	}

	chunks, err := corpus.Load(cfg.Corpus.Path, cfg.Corpus.MaxChunks)
	if err != nil {
		fatal("load corpus: %v", err)
	}

	index := vector.NewIndex()
	if err := index.Load(chunks); err != nil {
		fatal("build index: %v", err)
	}

	var embedder llm.EmbeddingClient
	if cfg.Embedder.Provider == "ollama" {
		baseURL := cfg.Embedder.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		embedder = llm.NewOllamaEmbedClient(baseURL)
	} else {
		embedder = llm.NewOpenAIClientWithConfig(llm.ClientConfig{
			APIKey:  cfg.Embedder.APIKey(),
			BaseURL: cfg.Embedder.BaseURL,
			Timeout: cfg.Embedder.TimeoutSecs,
		})
	}

	service := retrieval.New(index, embedder, nil, retrieval.Options{
		TopK:         cfg.Retrieval.TopK,
		MinScore:     cfg.Retrieval.MinScore,
		MinQueryLen:  cfg.Retrieval.MinQueryLen,
		EmbedModel:   cfg.Embedder.Model,
		EmbedTimeout: time.Duration(cfg.Embedder.TimeoutSecs) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rctx := service.Retrieve(ctx, query)
	if rctx.Count == 0 {
		fmt.Printf("No results (%s)\n", rctx.Outcome)
		return
	}

	scoreColor := color.New(color.FgGreen, color.Bold)
	titleColor := color.New(color.FgCyan)

	fmt.Printf("Found %d results:\n\n", rctx.Count)
	for _, m := range rctx.Matches {
		fmt.Printf("%s  %s", scoreColor.Sprintf("%.3f", m.Score), m.Chunk.ID)
		if m.Chunk.Title != "" {
			fmt.Printf("  %s", titleColor.Sprint(m.Chunk.Title))
		}
		fmt.Println()

		text := m.Chunk.Text
		if !*full && len(text) > 200 {
			text = text[:200] + "…"
		}
		fmt.Printf("    %s\n\n", strings.ReplaceAll(text, "\n", "\n    "))
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
