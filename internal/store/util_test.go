package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishiai/krishi-gateway/internal/store"
)

func TestParsePeriodToday(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 30, 45, 0, time.UTC)

	cutoff, err := store.ParsePeriod("today", now)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), cutoff)
}

func TestParsePeriodDays(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 30, 45, 0, time.UTC)

	tests := []struct {
		period string
		want   time.Time
	}{
		{"7d", now.AddDate(0, 0, -7)},
		{"30d", now.AddDate(0, 0, -30)},
		{"1d", now.AddDate(0, 0, -1)},
		{"7D", now.AddDate(0, 0, -7)},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			cutoff, err := store.ParsePeriod(tt.period, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cutoff)
		})
	}
}

func TestParsePeriodAll(t *testing.T) {
	now := time.Now()

	for _, period := range []string{"all", "", "  ", "ALL"} {
		cutoff, err := store.ParsePeriod(period, now)
		require.NoError(t, err)
		assert.True(t, cutoff.IsZero(), "period %q should have no cutoff", period)
	}
}

func TestParsePeriodInvalid(t *testing.T) {
	now := time.Now()

	for _, period := range []string{"yesterday", "7", "d", "0d", "-3d", "x7d", "7days"} {
		_, err := store.ParsePeriod(period, now)
		assert.Error(t, err, "period %q should be rejected", period)
	}
}

func TestUsageRecordSucceeded(t *testing.T) {
	assert.True(t, store.UsageRecord{}.Succeeded())
	assert.False(t, store.UsageRecord{ErrorType: "rate_limit"}.Succeeded())
}
