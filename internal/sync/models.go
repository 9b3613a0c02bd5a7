package sync

// Commit is the latest known upstream commit, abbreviated with the local
// tool's hash length so it is comparable with revision descriptors.
type Commit struct {
	ShortHash string  `json:"short_hash"`
	Timestamp float64 `json:"timestamp"`
}

// Result is the outcome of one synchronization check. Being behind upstream is
// a status, not an error; failures of the check itself surface as errors.
type Result struct {
	Path      string `json:"path"`
	Revision  string `json:"revision"`
	Remote    Commit `json:"remote"`
	InSync    bool   `json:"in_sync"`
	FromCache bool   `json:"from_cache"`
}
