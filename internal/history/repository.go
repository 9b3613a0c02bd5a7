package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/repowatch/repowatch/pkg/badgerfx"
)

const (
	prefix = "check:"

	prefixByID   = prefix + "id:"
	prefixByTime = prefix + "time:"
	prefixByRepo = prefix + "repo:"

	// Fixed-width, so lexicographic key order matches chronological order.
	// RFC3339Nano trims trailing zeros and would not.
	timeKeyLayout = "2006-01-02T15:04:05.000000000"
)

// Repository persists check records in badger, indexed by time and by
// repository path.
type Repository struct {
	db *badger.DB
}

func NewRepository(db *badger.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// Create stores a new check record.
func (r *Repository) Create(_ context.Context, draft *CheckDraft) (*Check, error) {
	model := newCheckModel(draft)

	data, err := json.Marshal(model)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal check: %w", err)
	}

	idData, err := json.Marshal(model.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal check ID: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		if setErr := txn.Set(r.getKey(model.ID), data); setErr != nil {
			return fmt.Errorf("failed to store check: %w", setErr)
		}

		if setErr := txn.Set(r.getTimeKey(model), idData); setErr != nil {
			return fmt.Errorf("failed to index check by time: %w", setErr)
		}

		if setErr := txn.Set(r.getRepoKey(model), idData); setErr != nil {
			return fmt.Errorf("failed to index check by repository: %w", setErr)
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to create check: %w", err)
	}

	return newCheck(model), nil
}

// GetByID retrieves a check record by its ID.
func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*Check, error) {
	var check *checkModel

	err := r.db.View(func(txn *badger.Txn) error {
		found, err := r.getByID(txn, id)
		if err == nil {
			check = found
		}

		return err
	})

	return newCheck(check), err
}

// LatestByRepo retrieves the most recent check for a repository path.
func (r *Repository) LatestByRepo(_ context.Context, repoPath string) (*Check, error) {
	var latest *checkModel

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.PrefetchSize = 2

		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(prefixByRepo + repoPath + ":")
		for it.Seek(append(prefix, badgerfx.SeekEnd)); it.ValidForPrefix(prefix) && latest == nil; it.Next() {
			if err := r.resolveIndexed(txn, it.Item(), func(model *checkModel) {
				latest = model
			}); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	if latest == nil {
		return nil, fmt.Errorf("%w for repository: %s", ErrNotFound, repoPath)
	}

	return newCheck(latest), nil
}

// List retrieves the most recent checks across all repositories, newest first.
func (r *Repository) List(_ context.Context, limit int) ([]Check, error) {
	var checks []Check

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(prefixByTime)
		for it.Seek(append(prefix, badgerfx.SeekEnd)); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(checks) >= limit {
				break
			}

			if err := r.resolveIndexed(txn, it.Item(), func(model *checkModel) {
				checks = append(checks, *newCheck(model))
			}); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return checks, fmt.Errorf("failed to list checks: %w", err)
	}

	return checks, nil
}

func (r *Repository) resolveIndexed(txn *badger.Txn, item *badger.Item, visit func(*checkModel)) error {
	if err := item.Value(func(val []byte) error {
		var checkID uuid.UUID
		if err := json.Unmarshal(val, &checkID); err != nil {
			return fmt.Errorf("failed to unmarshal check ID: %w", err)
		}

		check, err := r.getByID(txn, checkID)
		if err != nil {
			return err
		}

		visit(check)

		return nil
	}); err != nil {
		return fmt.Errorf("failed to resolve indexed check: %w", err)
	}

	return nil
}

func (r *Repository) getByID(txn *badger.Txn, id uuid.UUID) (*checkModel, error) {
	item, err := txn.Get(r.getKey(id))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}

		return nil, fmt.Errorf("failed to get check: %w", err)
	}

	var model checkModel
	if valErr := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &model)
	}); valErr != nil {
		return nil, fmt.Errorf("failed to unmarshal check: %w", valErr)
	}

	return &model, nil
}

func (r *Repository) getKey(id uuid.UUID) []byte {
	return []byte(prefixByID + id.String())
}

func (r *Repository) getTimeKey(model *checkModel) []byte {
	return []byte(prefixByTime + model.CheckedAt.UTC().Format(timeKeyLayout) + ":" + model.ID.String())
}

func (r *Repository) getRepoKey(model *checkModel) []byte {
	return []byte(prefixByRepo + model.RepoPath + ":" +
		model.CheckedAt.UTC().Format(timeKeyLayout) + ":" + model.ID.String())
}
