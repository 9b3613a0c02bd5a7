package history

import (
	"time"

	"github.com/google/uuid"
)

// checkModel is the storage representation of a check record.
type checkModel struct {
	ID        uuid.UUID `json:"id"`
	CheckedAt time.Time `json:"checked_at"`

	RepoPath        string  `json:"repo_path"`
	Revision        string  `json:"revision"`
	RemoteShortHash string  `json:"remote_short_hash"`
	RemoteTimestamp float64 `json:"remote_timestamp"`
	InSync          bool    `json:"in_sync"`
	FromCache       bool    `json:"from_cache"`
}

func newCheckModel(draft *CheckDraft) *checkModel {
	if draft == nil {
		return nil
	}

	return &checkModel{
		ID:        uuid.New(),
		CheckedAt: time.Now(),

		RepoPath:        draft.RepoPath,
		Revision:        draft.Revision,
		RemoteShortHash: draft.RemoteShortHash,
		RemoteTimestamp: draft.RemoteTimestamp,
		InSync:          draft.InSync,
		FromCache:       draft.FromCache,
	}
}

func newCheck(model *checkModel) *Check {
	if model == nil {
		return nil
	}

	return &Check{
		CheckDraft: CheckDraft{
			RepoPath:        model.RepoPath,
			Revision:        model.Revision,
			RemoteShortHash: model.RemoteShortHash,
			RemoteTimestamp: model.RemoteTimestamp,
			InSync:          model.InSync,
			FromCache:       model.FromCache,
		},

		ID:        model.ID,
		CheckedAt: model.CheckedAt,
	}
}
