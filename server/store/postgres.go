package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/adviserhq/adviser/server/store/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresTraceStore implements TraceStore using PostgreSQL.
type PostgresTraceStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgreSQL-backed trace store.
func NewPostgresStore(dsn string) (TraceStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := runPostgresMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresTraceStore{db: db}, nil
}

func runPostgresMigrations(db *sql.DB) error {
	data, err := migrations.Postgres.ReadFile("postgres/001_init.sql")
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	_, err = db.Exec(string(data))
	if err != nil {
		return fmt.Errorf("exec migration: %w", err)
	}
	return nil
}

func (s *PostgresTraceStore) Add(ctx context.Context, t QueryTrace) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO query_traces (
			trace_id, question, operation, outcome, matches, elapsed_ms, timestamp
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (trace_id) DO UPDATE SET
			question = EXCLUDED.question,
			operation = EXCLUDED.operation,
			outcome = EXCLUDED.outcome,
			matches = EXCLUDED.matches,
			elapsed_ms = EXCLUDED.elapsed_ms,
			timestamp = EXCLUDED.timestamp`,
		t.TraceID, t.Question, t.Operation, t.Outcome, t.Matches, t.ElapsedMs, t.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert trace: %w", err)
	}
	return nil
}

func (s *PostgresTraceStore) Get(ctx context.Context, id string) (QueryTrace, error) {
	var t QueryTrace
	err := s.db.QueryRowContext(ctx, `
		SELECT trace_id, question, operation, outcome, matches, elapsed_ms, timestamp
		FROM query_traces WHERE trace_id = $1`, id).Scan(
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

func (s *PostgresTraceStore) List(ctx context.Context) ([]QueryTrace, error) {
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

func (s *PostgresTraceStore) Summary(ctx context.Context) (Summary, error) {
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

func (s *PostgresTraceStore) Close() error {
	return s.db.Close()
}
