package repo

import "time"

type Config struct {
	// Binary is the git executable to invoke. Defaults to "git".
	Binary string
	// Timeout bounds each command invocation. Zero means no bound.
	Timeout time.Duration
}
