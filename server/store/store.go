// Package store persists query traces for operational visibility. This is
// observability data only; the chunk corpus itself is never persisted here.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a trace does not exist.
var ErrNotFound = errors.New("not found")

// QueryTrace records one search or report request.
type QueryTrace struct {
	TraceID   string `json:"trace_id"`
	Question  string `json:"question"`
	Operation string `json:"operation"` // search | report
	Outcome   string `json:"outcome"`   // served | empty | rejected | degraded
	Matches   int    `json:"matches"`
	ElapsedMs int64  `json:"elapsed_ms"`
	Timestamp int64  `json:"timestamp"`
}

// Summary contains aggregated trace metrics.
type Summary struct {
	TotalQueries int     `json:"total_queries"`
	Served       int     `json:"served"`
	Degraded     int     `json:"degraded"`
	Rejected     int     `json:"rejected"`
	AvgLatencyMs float64 `json:"avg_latency_ms"`
	AvgMatches   float64 `json:"avg_matches"`
}

// TraceStore defines the interface for trace persistence.
type TraceStore interface {
	Add(ctx context.Context, t QueryTrace) error
	Get(ctx context.Context, id string) (QueryTrace, error)
	List(ctx context.Context) ([]QueryTrace, error)
	Summary(ctx context.Context) (Summary, error)
	Close() error
}
