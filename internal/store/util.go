package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParsePeriod converts a human period ("today", "7d", "30d", "all")
// into the cutoff timestamp for a summary query.
func ParsePeriod(period string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(period)) {
	case "", "all":
		return time.Time{}, nil
	case "today":
		year, month, day := now.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, now.Location()), nil
	}

	if days, ok := strings.CutSuffix(strings.ToLower(period), "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return time.Time{}, fmt.Errorf("invalid period %q", period)
		}
		return now.AddDate(0, 0, -n), nil
	}

	return time.Time{}, fmt.Errorf("invalid period %q (expected today, Nd or all)", period)
}
