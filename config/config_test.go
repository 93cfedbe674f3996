package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Retrieval.TopK != 12 {
		t.Errorf("top_k default = %d, want 12", cfg.Retrieval.TopK)
	}
	if *cfg.Retrieval.MinScore != 0.03 {
		t.Errorf("min_score default = %v, want 0.03", *cfg.Retrieval.MinScore)
	}
	if cfg.Embedder.Provider != "openai" {
		t.Errorf("provider default = %q", cfg.Embedder.Provider)
	}
	if cfg.Server.Addr != ":8000" {
		t.Errorf("addr default = %q", cfg.Server.Addr)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
corpus:
  path: /srv/chunks.jsonl
  max_chunks: 500
embedder:
  provider: ollama
  base_url: http://embed:11434
  model: nomic-embed-text
retrieval:
  top_k: 8
  min_score: 0.1
server:
  addr: ":9000"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Corpus.Path != "/srv/chunks.jsonl" || cfg.Corpus.MaxChunks != 500 {
		t.Errorf("corpus = %+v", cfg.Corpus)
	}
	if cfg.Embedder.Provider != "ollama" || cfg.Embedder.Model != "nomic-embed-text" {
		t.Errorf("embedder = %+v", cfg.Embedder)
	}
	if cfg.Retrieval.TopK != 8 || *cfg.Retrieval.MinScore != 0.1 {
		t.Errorf("retrieval = %+v", cfg.Retrieval)
	}
	// unset fields still get defaults
	if cfg.Retrieval.MinQueryLen != 3 {
		t.Errorf("min_query_len = %d, want default 3", cfg.Retrieval.MinQueryLen)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
}

func TestLoad_ZeroMinScoreHonored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
retrieval:
  min_score: 0
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	// An explicit zero must not be clobbered by the 0.03 default.
	if *cfg.Retrieval.MinScore != 0 {
		t.Errorf("min_score = %v, want explicit 0", *cfg.Retrieval.MinScore)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ADVISER_RETRIEVAL_TOP_K", "20")
	t.Setenv("ADVISER_CORPUS_PATH", "/env/chunks.jsonl")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Retrieval.TopK != 20 {
		t.Errorf("env override failed, top_k = %d", cfg.Retrieval.TopK)
	}
	if cfg.Corpus.Path != "/env/chunks.jsonl" {
		t.Errorf("env override failed, path = %q", cfg.Corpus.Path)
	}
}

func TestAPIKey(t *testing.T) {
	t.Setenv("TEST_ADVISER_KEY", "sk-123")
	c := EmbedderConfig{APIKeyEnv: "TEST_ADVISER_KEY"}
	if c.APIKey() != "sk-123" {
		t.Errorf("APIKey() = %q", c.APIKey())
	}
	if (&EmbedderConfig{}).APIKey() != "" {
		t.Error("empty APIKeyEnv must resolve to empty key")
	}
}
