// Package adviser provides semantic retrieval over a precomputed chunk
// corpus for assistant backends.
//
// Example usage:
//
//	chunks, err := corpus.Load("data/chunks.jsonl", 0)
//	index := vector.NewIndex()
//	index.Load(chunks)
//
//	embedder := llm.NewOpenAIClient(os.Getenv("OPENAI_API_KEY"))
//	svc := retrieval.New(index, embedder, monitor.NewInMemoryCollector(), retrieval.Options{})
//	rctx := svc.Retrieve(ctx, "what are my record keeping obligations?")
package adviser

import (
	"github.com/adviserhq/adviser/core"
	"github.com/adviserhq/adviser/corpus"
	"github.com/adviserhq/adviser/llm"
	"github.com/adviserhq/adviser/monitor"
	"github.com/adviserhq/adviser/retrieval"
	"github.com/adviserhq/adviser/server"
	"github.com/adviserhq/adviser/vector"
)

// Corpus aliases
type (
	Chunk = corpus.Chunk
	Match = vector.Match
	Index = vector.Index
)

// LoadCorpus reads a line-delimited JSON chunk file.
func LoadCorpus(path string, limit int) ([]Chunk, error) {
	return corpus.Load(path, limit)
}

// NewIndex creates an unloaded similarity index.
func NewIndex() *Index {
	return vector.NewIndex()
}

// Retrieval aliases
type (
	Service          = retrieval.Service
	RetrievalOptions = retrieval.Options
	RetrievalContext = retrieval.Context
)

// NewService creates a retrieval service over a loaded index.
func NewService(index *Index, embedder llm.EmbeddingClient, metrics monitor.Collector, opts RetrievalOptions) *Service {
	return retrieval.New(index, embedder, metrics, opts)
}

// LLM client aliases
type (
	EmbeddingClient = llm.EmbeddingClient
	ChatClient      = llm.Client
)

// Monitor aliases
type (
	MetricsCollector  = monitor.Collector
	InMemoryCollector = monitor.InMemoryCollector
)

// NewInMemoryCollector creates a new in-memory search metrics collector.
func NewInMemoryCollector() *InMemoryCollector {
	return monitor.NewInMemoryCollector()
}

// Server aliases
type (
	Server       = server.Server
	ServerConfig = server.Config
)

// NewServer creates a new API server.
func NewServer(cfg ServerConfig) (*Server, error) {
	return server.New(cfg)
}

// Error sentinels
var (
	ErrStoreUnavailable    = core.ErrStoreUnavailable
	ErrProviderUnavailable = core.ErrProviderUnavailable
	ErrQueryRejected       = core.ErrQueryRejected
	ErrIndexNotReady       = core.ErrIndexNotReady
)
