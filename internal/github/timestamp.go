package github

import (
	"fmt"
	"regexp"
	"time"
)

// The API emits exactly YYYY-MM-DDTHH:MM:SSZ. Fractional seconds and numeric
// offsets are rejected up front; RFC 3339 alone would accept both.
var timestampRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z$`)

// ParseTimestamp converts an ISO 8601 UTC timestamp to Unix epoch seconds.
func ParseTimestamp(s string) (float64, error) {
	if !timestampRe.MatchString(s) {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrMalformedTimestamp, s, err)
	}

	return float64(t.Unix()), nil
}

// FormatTimestamp is the inverse of ParseTimestamp.
func FormatTimestamp(epoch float64) string {
	return time.Unix(int64(epoch), 0).UTC().Format(time.RFC3339)
}
