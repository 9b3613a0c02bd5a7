package history

import (
	"time"

	"github.com/google/uuid"
)

// CheckDraft is one synchronization check result, before persistence.
type CheckDraft struct {
	RepoPath        string
	Revision        string
	RemoteShortHash string
	RemoteTimestamp float64
	InSync          bool
	FromCache       bool
}

// Check is a persisted synchronization check record.
type Check struct {
	CheckDraft

	ID        uuid.UUID
	CheckedAt time.Time
}
