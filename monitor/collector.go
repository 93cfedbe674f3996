// Package monitor collects search metrics so fail-soft degradation stays
// operationally observable.
package monitor

import (
	"sync"
	"time"
)

type Collector interface {
	Record(m QueryMetrics)
	Snapshot() Summary
}

type InMemoryCollector struct {
	mu           sync.RWMutex
	counts       map[Outcome]int
	totalMatches int
	totalLatency time.Duration
	queries      int
}

func NewInMemoryCollector() *InMemoryCollector {
	return &InMemoryCollector{counts: make(map[Outcome]int)}
}

func (c *InMemoryCollector) Record(m QueryMetrics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queries++
	c.counts[m.Outcome]++
	c.totalMatches += m.Matches
	c.totalLatency += m.Latency
}

func (c *InMemoryCollector) Snapshot() Summary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Summary{
		Queries:      c.queries,
		Served:       c.counts[OutcomeServed],
		Empty:        c.counts[OutcomeEmpty],
		Rejected:     c.counts[OutcomeRejected],
		Degraded:     c.counts[OutcomeDegraded],
		TotalMatches: c.totalMatches,
	}
	if c.queries > 0 {
		s.AvgLatencyMs = float64(c.totalLatency.Milliseconds()) / float64(c.queries)
	}
	return s
}

type NoOpCollector struct{}

func NewNoOpCollector() *NoOpCollector {
	return &NoOpCollector{}
}

func (c *NoOpCollector) Record(m QueryMetrics) {}

func (c *NoOpCollector) Snapshot() Summary {
	return Summary{}
}
