package github

import "time"

type Config struct {
	// APIBase is the API root, overridable for tests.
	APIBase string
	// UserAgent identifies this tool to the API, per GitHub etiquette.
	UserAgent string
	// Timeout bounds response initiation, not the full body transfer.
	Timeout time.Duration
}
