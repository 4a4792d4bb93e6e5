// Package store defines the persistence port for the usage ledger.
package store

import (
	"context"
	"time"
)

// Store is the persistence interface for generation usage history.
type Store interface {
	// RecordUsage appends one usage record.
	RecordUsage(ctx context.Context, rec UsageRecord) error

	// ListRecent returns the newest records, newest first.
	ListRecent(ctx context.Context, limit int) ([]UsageRecord, error)

	// Summary aggregates all records at or after since.
	Summary(ctx context.Context, since time.Time) (UsageSummary, error)

	// SummaryByProvider aggregates records per provider at or after since.
	SummaryByProvider(ctx context.Context, since time.Time) (map[string]UsageSummary, error)

	// Close releases the underlying resources.
	Close() error
}

// UsageRecord is one generation call as it was actually served.
type UsageRecord struct {
	ID         int64
	Timestamp  time.Time
	Provider   string
	Model      string
	Capability string
	TokensIn   int
	TokensOut  int
	Cost       float64
	DurationMS int64
	FellBack   bool
	ErrorType  string // empty on success
}

// Succeeded reports whether the call completed without error.
func (r UsageRecord) Succeeded() bool {
	return r.ErrorType == ""
}

// UsageSummary aggregates usage over a period.
type UsageSummary struct {
	Requests  int
	Errors    int
	Fallbacks int
	TokensIn  int
	TokensOut int
	Cost      float64
}
