// Package retrieval composes the embedding provider and the vector index
// into the search operation consumed by the report layer.
package retrieval

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/adviserhq/adviser/core"
	"github.com/adviserhq/adviser/llm"
	"github.com/adviserhq/adviser/monitor"
	"github.com/adviserhq/adviser/vector"
)

// Options tune a Service. Zero values fall back to defaults.
type Options struct {
	// TopK is the store-wide result bound. Default 12.
	TopK int
	// MinScore is the cutoff applied to matches before joining. This is
	// caller policy, not an index invariant. Nil selects the default 0.03;
	// point it at zero or a negative value to loosen or disable the cutoff.
	MinScore *float64
	// MinQueryLen is the minimum query length in runes after trimming.
	// Default 3.
	MinQueryLen int
	// EmbedModel names the provider model used for query embeddings.
	EmbedModel string
	// EmbedTimeout bounds the provider call. Default 15s.
	EmbedTimeout time.Duration
}

func (o *Options) applyDefaults() {
	if o.TopK <= 0 {
		o.TopK = 12
	}
	if o.MinScore == nil {
		def := 0.03
		o.MinScore = &def
	}
	if o.MinQueryLen <= 0 {
		o.MinQueryLen = 3
	}
	if o.EmbedModel == "" {
		o.EmbedModel = "text-embedding-3-small"
	}
	if o.EmbedTimeout <= 0 {
		o.EmbedTimeout = 15 * time.Second
	}
}

// Context is the fail-soft retrieval result handed to the report assembler.
// On any search-path failure it degrades to {Joined: "", Count: 0} instead of
// erroring; the Outcome field and the metrics collector keep the degradation
// visible.
type Context struct {
	Joined  string          `json:"joined"`
	Count   int             `json:"count"`
	Matches []vector.Match  `json:"matches,omitempty"`
	Outcome monitor.Outcome `json:"outcome"`
}

// Service runs similarity searches against a single loaded index.
type Service struct {
	index    *vector.Index
	embedder llm.EmbeddingClient
	metrics  monitor.Collector
	opts     Options
}

// New creates a retrieval service. The index is expected to be loaded once at
// process start and injected here; the service never loads it.
func New(index *vector.Index, embedder llm.EmbeddingClient, metrics monitor.Collector, opts Options) *Service {
	opts.applyDefaults()
	if metrics == nil {
		metrics = monitor.NewNoOpCollector()
	}
	return &Service{index: index, embedder: embedder, metrics: metrics, opts: opts}
}

// Ready reports whether the underlying index has finished loading.
func (s *Service) Ready() bool { return s.index.Ready() }

// Len returns the number of chunks behind the service.
func (s *Service) Len() int { return s.index.Len() }

// Search embeds the query and returns the raw top-k matches, unfiltered by
// the score cutoff. Unlike Retrieve it propagates typed errors:
// core.ErrQueryRejected, core.ErrProviderUnavailable, core.ErrIndexNotReady.
func (s *Service) Search(ctx context.Context, query string, topK int) ([]vector.Match, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < s.opts.MinQueryLen {
		return nil, core.ErrQueryRejected
	}
	if topK <= 0 {
		topK = s.opts.TopK
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.EmbedTimeout)
	defer cancel()

	resp, err := s.embedder.Embed(ctx, s.opts.EmbedModel, query)
	if err != nil {
		return nil, err
	}

	return s.index.Search(resp.Embedding, topK)
}

// Retrieve runs the full retrieval operation: validate, embed, search, apply
// the score cutoff and join the surviving texts. It never returns an error;
// every failure degrades to an empty Context and is recorded in the metrics
// collector.
func (s *Service) Retrieve(ctx context.Context, query string) Context {
	start := time.Now()

	matches, err := s.Search(ctx, query, s.opts.TopK)
	if err != nil {
		outcome := monitor.OutcomeDegraded
		switch {
		case errors.Is(err, core.ErrQueryRejected):
			outcome = monitor.OutcomeRejected
		case errors.Is(err, core.ErrIndexNotReady):
			log.Printf("[retrieval] index not ready, serving empty result")
		case errors.Is(err, core.ErrProviderUnavailable):
			log.Printf("[retrieval] embedding provider failed, serving empty result: %v", err)
		default:
			log.Printf("[retrieval] search failed, serving empty result: %v", err)
		}
		s.metrics.Record(monitor.QueryMetrics{Outcome: outcome, Latency: time.Since(start)})
		return Context{Outcome: outcome}
	}

	kept := matches[:0:0]
	for _, m := range matches {
		if m.Score >= *s.opts.MinScore {
			kept = append(kept, m)
		}
	}

	outcome := monitor.OutcomeServed
	if len(kept) == 0 {
		outcome = monitor.OutcomeEmpty
	}
	s.metrics.Record(monitor.QueryMetrics{Outcome: outcome, Matches: len(kept), Latency: time.Since(start)})

	texts := make([]string, len(kept))
	for i, m := range kept {
		texts[i] = m.Chunk.Text
	}

	return Context{
		Joined:  strings.Join(texts, "\n\n"),
		Count:   len(kept),
		Matches: kept,
		Outcome: outcome,
	}
}
