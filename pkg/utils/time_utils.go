package utils

import (
	"fmt"
	"time"
)

// ParseClock reads an optional RFC3339 timestamp. Empty input yields the zero time,
// which planners treat as "no clock".
func ParseClock(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: now must be RFC3339, got %q", ErrInvalidConstraints, raw)
	}
	return t, nil
}

func FormatRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
