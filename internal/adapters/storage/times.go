package storage

import (
	"database/sql"
	"time"
)

// TimeLayout is the TEXT encoding used for all timestamp columns.
const TimeLayout = time.RFC3339Nano

// FormatTime encodes a timestamp for a TEXT column. Zero times map to NULL.
func FormatTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(TimeLayout)
}

// ParseTime decodes a nullable TEXT timestamp column. NULL and malformed
// values map to the zero time.
func ParseTime(v sql.NullString) time.Time {
	if !v.Valid || v.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(TimeLayout, v.String)
	if err != nil {
		return time.Time{}
	}
	return t
}
