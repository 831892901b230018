package utils

import (
	"fmt"
	"time"
)

// PubDateLayout is the layout of the garage feed's PubDate field.
const PubDateLayout = "2006-01-02T15:04:05Z"

// ParsePubDate parses a feed publication date as UTC.
func ParsePubDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(PubDateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid publication date %q: %w", s, err)
	}
	return t, nil
}

// Iso8601 formats a timestamp in ISO8601 (RFC3339) form in UTC
func Iso8601(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// Iso8601Now returns the current time in ISO8601 format
func Iso8601Now() string {
	return Iso8601(time.Now())
}
