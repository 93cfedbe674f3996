package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adviserhq/adviser/server/store/migrations"
	_ "modernc.org/sqlite"
)

// SQLiteTraceStore implements TraceStore using SQLite.
type SQLiteTraceStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a SQLite-backed trace store.
func NewSQLiteStore(dsn string) (TraceStore, error) {
	if dsn == "" {
		dsn = "data/adviser.db"
	}

	if dsn != ":memory:" {
		dir := filepath.Dir(dsn)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create data directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := runSQLiteMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteTraceStore{db: db}, nil
}

func runSQLiteMigrations(db *sql.DB) error {
	data, err := migrations.SQLite.ReadFile("sqlite/001_init.sql")
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	_, err = db.Exec(string(data))
	if err != nil {
		return fmt.Errorf("exec migration: %w", err)
	}
	return nil
}

func (s *SQLiteTraceStore) Add(ctx context.Context, t QueryTrace) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO query_traces (
			trace_id, question, operation, outcome, matches, elapsed_ms, timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.TraceID, t.Question, t.Operation, t.Outcome, t.Matches, t.ElapsedMs, t.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert trace: %w", err)
	}
	return nil
}

func (s *SQLiteTraceStore) Get(ctx context.Context, id string) (QueryTrace, error) {
	var t QueryTrace
	err := s.db.QueryRowContext(ctx, `
		SELECT trace_id, question, operation, outcome, matches, elapsed_ms, timestamp
		FROM query_traces WHERE trace_id = ?`, id).Scan(
		&t.TraceID, &t.Question, &t.Operation, &t.Outcome, &t.Matches, &t.ElapsedMs, &t.Timestamp,
	)
	if err == sql.ErrNoRows {
		return t, ErrNotFound
	}
	if err != nil {
		return t, fmt.Errorf("query trace: %w", err)
	}
	return t, nil
}

func (s *SQLiteTraceStore) List(ctx context.Context) ([]QueryTrace, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT trace_id, question, operation, outcome, matches, elapsed_ms, timestamp
		FROM query_traces ORDER BY timestamp DESC`)
	if err != nil {
		return nil, fmt.Errorf("query traces: %w", err)
	}
	defer rows.Close()

	var traces []QueryTrace
	for rows.Next() {
		var t QueryTrace
		if err := rows.Scan(&t.TraceID, &t.Question, &t.Operation, &t.Outcome, &t.Matches, &t.ElapsedMs, &t.Timestamp); err != nil {
			return nil, fmt.Errorf("scan trace: %w", err)
		}
		traces = append(traces, t)
	}
	return traces, rows.Err()
}

func (s *SQLiteTraceStore) Summary(ctx context.Context) (Summary, error) {
	var m Summary
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN outcome = 'served' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN outcome = 'degraded' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN outcome = 'rejected' THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(elapsed_ms), 0),
			COALESCE(AVG(matches), 0)
		FROM query_traces`).Scan(
		&m.TotalQueries, &m.Served, &m.Degraded, &m.Rejected, &m.AvgLatencyMs, &m.AvgMatches,
	)
	if err != nil {
		return m, fmt.Errorf("query summary: %w", err)
	}
	return m, nil
}

func (s *SQLiteTraceStore) Close() error {
	return s.db.Close()
}
