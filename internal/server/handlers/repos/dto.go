package repos

import (
	"time"

	"github.com/google/uuid"
)

// CheckRequest asks for an immediate synchronization check of one path.
type CheckRequest struct {
	Path string `json:"path" validate:"required,min=1"`
}

// CommitResponse is the latest known upstream commit.
type CommitResponse struct {
	ShortHash string  `json:"short_hash"`
	Timestamp float64 `json:"timestamp"`
}

// CheckResultResponse is the outcome of a synchronization check.
type CheckResultResponse struct {
	Path      string         `json:"path"`
	Revision  string         `json:"revision"`
	Remote    CommitResponse `json:"remote"`
	InSync    bool           `json:"in_sync"`
	FromCache bool           `json:"from_cache"`
}

// CheckRecordResponse is a persisted check record.
type CheckRecordResponse struct {
	ID              uuid.UUID `json:"id"`
	CheckedAt       time.Time `json:"checked_at"`
	Path            string    `json:"path"`
	Revision        string    `json:"revision"`
	RemoteShortHash string    `json:"remote_short_hash"`
	RemoteTimestamp float64   `json:"remote_timestamp"`
	InSync          bool      `json:"in_sync"`
	FromCache       bool      `json:"from_cache"`
}

// StateResponse is the locally derived state of a working copy.
type StateResponse struct {
	Revision       string  `json:"revision"`
	LastCommitDate float64 `json:"last_commit_date"`
	Origin         string  `json:"origin"`
	APIURL         string  `json:"api_url"`
	WebURL         string  `json:"web_url"`
}

// RepoResponse is one watched repository with its last recorded check.
type RepoResponse struct {
	Path        string               `json:"path"`
	State       *StateResponse       `json:"state,omitempty"`
	Error       string               `json:"error,omitempty"`
	LatestCheck *CheckRecordResponse `json:"latest_check,omitempty"`
}
