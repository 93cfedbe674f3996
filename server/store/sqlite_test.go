package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func setupStore(t *testing.T) TraceStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteTraceStore_AddGetList(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	traces := []QueryTrace{
		{TraceID: "t1", Question: "payroll records?", Operation: "search", Outcome: "served", Matches: 4, ElapsedMs: 120, Timestamp: time.Now().Unix() - 10},
		{TraceID: "t2", Question: "fire safety?", Operation: "report", Outcome: "degraded", ElapsedMs: 40, Timestamp: time.Now().Unix()},
	}
	for _, tr := range traces {
		if err := s.Add(ctx, tr); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.Get(ctx, "t1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Question != "payroll records?" || got.Matches != 4 {
		t.Errorf("got %+v", got)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 traces, got %d", len(list))
	}
	// newest first
	if list[0].TraceID != "t2" {
		t.Errorf("expected t2 first, got %q", list[0].TraceID)
	}
}

func TestSQLiteTraceStore_GetNotFound(t *testing.T) {
	s := setupStore(t)
	if _, err := s.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteTraceStore_AddReplaces(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	if err := s.Add(ctx, QueryTrace{TraceID: "t1", Question: "old", Outcome: "served", Timestamp: 1}); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(ctx, QueryTrace{TraceID: "t1", Question: "new", Outcome: "served", Timestamp: 2}); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, "t1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Question != "new" {
		t.Errorf("expected replacement, got %q", got.Question)
	}
}

func TestSQLiteTraceStore_Summary(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	for _, tr := range []QueryTrace{
		{TraceID: "a", Question: "q1", Outcome: "served", Matches: 4, ElapsedMs: 100, Timestamp: 1},
		{TraceID: "b", Question: "q2", Outcome: "served", Matches: 2, ElapsedMs: 300, Timestamp: 2},
		{TraceID: "c", Question: "q3", Outcome: "degraded", Matches: 0, ElapsedMs: 20, Timestamp: 3},
		{TraceID: "d", Question: "q4", Outcome: "rejected", Matches: 0, ElapsedMs: 0, Timestamp: 4},
	} {
		if err := s.Add(ctx, tr); err != nil {
			t.Fatal(err)
		}
	}

	m, err := s.Summary(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if m.TotalQueries != 4 || m.Served != 2 || m.Degraded != 1 || m.Rejected != 1 {
		t.Errorf("summary = %+v", m)
	}
	if m.AvgLatencyMs != 105 {
		t.Errorf("avg latency = %v, want 105", m.AvgLatencyMs)
	}
	if m.AvgMatches != 1.5 {
		t.Errorf("avg matches = %v, want 1.5", m.AvgMatches)
	}
}

func TestSQLiteTraceStore_EmptySummary(t *testing.T) {
	s := setupStore(t)
	m, err := s.Summary(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if m.TotalQueries != 0 || m.AvgLatencyMs != 0 {
		t.Errorf("expected zero summary, got %+v", m)
	}
}

func TestFactory_DefaultsToSQLite(t *testing.T) {
	s, err := New(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, ok := s.(*SQLiteTraceStore); !ok {
		t.Fatalf("expected sqlite store, got %T", s)
	}
}
