package utils

import (
	"strings"
	"time"

	"paymentapi/internal/domain"
)

const layoutDate = "2006-01-02"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseFlexibleDate accepts an RFC 3339 instant or a bare YYYY-MM-DD date.
// A bare date becomes 00:00:00 UTC when startOfDay is set and 23:59:59 UTC
// otherwise. Empty input yields nil.
func ParseFlexibleDate(field, value string, startOfDay bool) (*time.Time, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t = t.UTC()
		return &t, nil
	}

	d, err := time.ParseInLocation(layoutDate, s, time.UTC)
	if err != nil {
		return nil, domain.DateParseError{Field: field, Value: value, Err: err}
	}
	if !startOfDay {
		d = d.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	}
	return &d, nil
}

// FormatDateTime formats t in UTC for statements and logs.
func FormatDateTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}
