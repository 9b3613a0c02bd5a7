package sync

import "time"

type Config struct {
	// MaxAge is the freshness window of the per-repository result cache.
	MaxAge time.Duration
}
