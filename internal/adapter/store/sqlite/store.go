// Package sqlite persists the usage ledger in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/krishiai/krishi-gateway/internal/store"
)

// Store implements the store.Store interface using SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates a new SQLite store at the given path.
// Use ":memory:" for an in-memory database (useful for testing).
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}

	if err := s.createSchema(); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return s, nil
}

func (s *Store) createSchema() error {
	schema := `
	-- One row per generation call, as it was actually served
	CREATE TABLE IF NOT EXISTS usage (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp INTEGER NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		capability TEXT NOT NULL,
		tokens_in INTEGER NOT NULL DEFAULT 0,
		tokens_out INTEGER NOT NULL DEFAULT 0,
		cost REAL NOT NULL DEFAULT 0.0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		fell_back INTEGER NOT NULL DEFAULT 0,
		error_type TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_usage_timestamp ON usage(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_usage_provider ON usage(provider);
	`

	_, err := s.db.Exec(schema)
	return err
}

// RecordUsage appends one usage record.
func (s *Store) RecordUsage(ctx context.Context, rec store.UsageRecord) error {
	query := `
		INSERT INTO usage (timestamp, provider, model, capability, tokens_in, tokens_out, cost, duration_ms, fell_back, error_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := s.db.ExecContext(ctx, query,
		ts.Unix(),
		rec.Provider,
		rec.Model,
		rec.Capability,
		rec.TokensIn,
		rec.TokensOut,
		rec.Cost,
		rec.DurationMS,
		boolToInt(rec.FellBack),
		rec.ErrorType,
	)
	if err != nil {
		return fmt.Errorf("failed to record usage: %w", err)
	}

	return nil
}

// ListRecent returns the newest records, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]store.UsageRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, timestamp, provider, model, capability, tokens_in, tokens_out, cost, duration_ms, fell_back, error_type
		FROM usage
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list usage: %w", err)
	}
	defer rows.Close()

	var records []store.UsageRecord
	for rows.Next() {
		var rec store.UsageRecord
		var ts int64
		var fellBack int

		if err := rows.Scan(&rec.ID, &ts, &rec.Provider, &rec.Model, &rec.Capability,
			&rec.TokensIn, &rec.TokensOut, &rec.Cost, &rec.DurationMS, &fellBack, &rec.ErrorType); err != nil {
			return nil, fmt.Errorf("failed to scan usage row: %w", err)
		}

		rec.Timestamp = time.Unix(ts, 0)
		rec.FellBack = fellBack != 0
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Summary aggregates all records at or after since.
func (s *Store) Summary(ctx context.Context, since time.Time) (store.UsageSummary, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN error_type != '' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(fell_back), 0),
		       COALESCE(SUM(tokens_in), 0),
		       COALESCE(SUM(tokens_out), 0),
		       COALESCE(SUM(cost), 0.0)
		FROM usage
		WHERE timestamp >= ?
	`

	var summary store.UsageSummary
	err := s.db.QueryRowContext(ctx, query, since.Unix()).Scan(
		&summary.Requests,
		&summary.Errors,
		&summary.Fallbacks,
		&summary.TokensIn,
		&summary.TokensOut,
		&summary.Cost,
	)
	if err != nil {
		return store.UsageSummary{}, fmt.Errorf("failed to summarize usage: %w", err)
	}

	return summary, nil
}

// SummaryByProvider aggregates records per provider at or after since.
func (s *Store) SummaryByProvider(ctx context.Context, since time.Time) (map[string]store.UsageSummary, error) {
	query := `
		SELECT provider,
		       COUNT(*),
		       COALESCE(SUM(CASE WHEN error_type != '' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(fell_back), 0),
		       COALESCE(SUM(tokens_in), 0),
		       COALESCE(SUM(tokens_out), 0),
		       COALESCE(SUM(cost), 0.0)
		FROM usage
		WHERE timestamp >= ?
		GROUP BY provider
	`

	rows, err := s.db.QueryContext(ctx, query, since.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to summarize usage by provider: %w", err)
	}
	defer rows.Close()

	result := make(map[string]store.UsageSummary)
	for rows.Next() {
		var provider string
		var summary store.UsageSummary

		if err := rows.Scan(&provider, &summary.Requests, &summary.Errors, &summary.Fallbacks,
			&summary.TokensIn, &summary.TokensOut, &summary.Cost); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}

		result[provider] = summary
	}

	return result, rows.Err()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
