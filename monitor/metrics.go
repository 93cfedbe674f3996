package monitor

import "time"

// Outcome classifies how a search request ended.
type Outcome string

const (
	// OutcomeServed: matches were returned to the caller.
	OutcomeServed Outcome = "served"
	// OutcomeEmpty: the search ran but nothing cleared the score cutoff.
	OutcomeEmpty Outcome = "empty"
	// OutcomeRejected: the query was empty or too short.
	OutcomeRejected Outcome = "rejected"
	// OutcomeDegraded: a provider or index failure was swallowed and an
	// empty result served instead. The whole point of this counter is to
	// keep that degradation visible.
	OutcomeDegraded Outcome = "degraded"
)

// QueryMetrics captures a single search request.
type QueryMetrics struct {
	Outcome Outcome       `json:"outcome"`
	Matches int           `json:"matches"`
	Latency time.Duration `json:"latency"`
}

// Summary aggregates recorded queries.
type Summary struct {
	Queries      int     `json:"queries"`
	Served       int     `json:"served"`
	Empty        int     `json:"empty"`
	Rejected     int     `json:"rejected"`
	Degraded     int     `json:"degraded"`
	TotalMatches int     `json:"total_matches"`
	AvgLatencyMs float64 `json:"avg_latency_ms"`
}
