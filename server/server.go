// Package server exposes the retrieval core over a minimal HTTP surface.
package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/adviserhq/adviser/monitor"
	"github.com/adviserhq/adviser/report"
	"github.com/adviserhq/adviser/retrieval"
	"github.com/adviserhq/adviser/server/store"
)

// Config configures a new Server instance.
type Config struct {
	Service   *retrieval.Service
	Assembler *report.Assembler // optional; /report returns 503 without it
	Metrics   monitor.Collector
	Traces    store.TraceStore // optional: inject a custom trace store
	DSN       string           // trace store DSN when Traces is nil
}

// Server serves search and report requests against one loaded corpus.
type Server struct {
	service   *retrieval.Service
	assembler *report.Assembler
	metrics   monitor.Collector
	traces    store.TraceStore
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Service == nil {
		return nil, fmt.Errorf("retrieval service is required")
	}

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = monitor.NewNoOpCollector()
	}

	traces := cfg.Traces
	if traces == nil {
		ts, err := store.New(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("initialize trace store: %w", err)
		}
		traces = ts
		log.Printf("[store] Initialized query trace storage")
	}

	return &Server{
		service:   cfg.Service,
		assembler: cfg.Assembler,
		metrics:   metrics,
		traces:    traces,
	}, nil
}

// Close releases the trace store.
func (s *Server) Close() error {
	return s.traces.Close()
}

// Handler returns an http.Handler for the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /search", s.handleSearch)
	mux.HandleFunc("POST /report", s.handleReport)
	mux.HandleFunc("GET /metrics/summary", s.handleMetricsSummary)
	mux.HandleFunc("GET /traces", s.handleTraceList)

	return mux
}
