// Package config provides configuration types and loading for adviser.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration struct.
type Config struct {
	Corpus    CorpusConfig    `yaml:"corpus"`
	Embedder  EmbedderConfig  `yaml:"embedder"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Report    ReportConfig    `yaml:"report"`
	Server    ServerConfig    `yaml:"server"`
}

// CorpusConfig locates the precomputed chunk file.
type CorpusConfig struct {
	Path      string `yaml:"path" envconfig:"PATH"`
	MaxChunks int    `yaml:"max_chunks" envconfig:"MAX_CHUNKS"`
}

// EmbedderConfig selects and configures the embedding provider.
type EmbedderConfig struct {
	Provider    string `yaml:"provider" envconfig:"PROVIDER"` // openai | ollama
	BaseURL     string `yaml:"base_url" envconfig:"BASE_URL"`
	APIKeyEnv   string `yaml:"api_key_env" envconfig:"API_KEY_ENV"`
	Model       string `yaml:"model" envconfig:"MODEL"`
	TimeoutSecs int    `yaml:"timeout_secs" envconfig:"TIMEOUT_SECS"`
}

// RetrievalConfig tunes the search operation. MinScore is a pointer so an
// explicit zero (keep every non-negative match) is distinguishable from an
// unset value, which falls back to the 0.03 default.
type RetrievalConfig struct {
	TopK        int      `yaml:"top_k" envconfig:"TOP_K"`
	MinScore    *float64 `yaml:"min_score" envconfig:"MIN_SCORE"`
	MinQueryLen int      `yaml:"min_query_len" envconfig:"MIN_QUERY_LEN"`
}

// ReportConfig configures the report assembler. The system prompt is plain
// configuration; nothing in the code depends on its wording.
type ReportConfig struct {
	Enabled      bool   `yaml:"enabled" envconfig:"ENABLED"`
	Model        string `yaml:"model" envconfig:"MODEL"`
	SystemPrompt string `yaml:"system_prompt" envconfig:"SYSTEM_PROMPT"`
}

// ServerConfig configures the HTTP surface and the query-trace store.
type ServerConfig struct {
	Addr        string `yaml:"addr" envconfig:"ADDR"`
	DatabaseDSN string `yaml:"database_dsn" envconfig:"DATABASE_DSN"`
}

// Load reads a config from path, falling back to defaults when the file does
// not exist, then applies ADVISER_* environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// defaults
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	applyDefaults(cfg)
	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Corpus: CorpusConfig{Path: "data/chunks.jsonl"},
		Embedder: EmbedderConfig{
			Provider:    "openai",
			APIKeyEnv:   "OPENAI_API_KEY",
			Model:       "text-embedding-3-small",
			TimeoutSecs: 15,
		},
		Retrieval: RetrievalConfig{TopK: 12, MinScore: f64(0.03), MinQueryLen: 3},
		Report:    ReportConfig{Model: "gpt-4o-mini"},
		Server:    ServerConfig{Addr: ":8000"},
	}
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Corpus.Path == "" {
		cfg.Corpus.Path = def.Corpus.Path
	}
	if cfg.Embedder.Provider == "" {
		cfg.Embedder.Provider = def.Embedder.Provider
	}
	if cfg.Embedder.APIKeyEnv == "" {
		cfg.Embedder.APIKeyEnv = def.Embedder.APIKeyEnv
	}
	if cfg.Embedder.Model == "" {
		cfg.Embedder.Model = def.Embedder.Model
	}
	if cfg.Embedder.TimeoutSecs == 0 {
		cfg.Embedder.TimeoutSecs = def.Embedder.TimeoutSecs
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = def.Retrieval.TopK
	}
	if cfg.Retrieval.MinScore == nil {
		cfg.Retrieval.MinScore = def.Retrieval.MinScore
	}
	if cfg.Retrieval.MinQueryLen == 0 {
		cfg.Retrieval.MinQueryLen = def.Retrieval.MinQueryLen
	}
	if cfg.Report.Model == "" {
		cfg.Report.Model = def.Report.Model
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
}

func applyEnv(cfg *Config) error {
	groups := []struct {
		prefix string
		target any
	}{
		{"ADVISER_CORPUS", &cfg.Corpus},
		{"ADVISER_EMBEDDER", &cfg.Embedder},
		{"ADVISER_RETRIEVAL", &cfg.Retrieval},
		{"ADVISER_REPORT", &cfg.Report},
		{"ADVISER_SERVER", &cfg.Server},
	}
	for _, g := range groups {
		if err := envconfig.Process(g.prefix, g.target); err != nil {
			return err
		}
	}
	return nil
}

func f64(v float64) *float64 { return &v }

// APIKey resolves the embedder API key from the configured environment
// variable. Empty is allowed for keyless endpoints.
func (c *EmbedderConfig) APIKey() string {
	if c.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.APIKeyEnv)
}
