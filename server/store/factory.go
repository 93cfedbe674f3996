package store

import (
	"fmt"
	"strings"
)

// New creates a trace store based on the DSN.
// - Empty DSN: SQLite at data/adviser.db
// - postgres:// or postgresql://: PostgreSQL
// - Anything else: SQLite at the specified path
func New(dsn string) (TraceStore, error) {
	if dsn == "" {
		return NewSQLiteStore("data/adviser.db")
	}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		ts, err := NewPostgresStore(dsn)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		return ts, nil
	}

	return NewSQLiteStore(dsn)
}
