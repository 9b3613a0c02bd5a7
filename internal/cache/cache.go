// Package cache persists the last fetched remote commit per repository, with
// freshness decided by file modification time rather than file contents.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileName is the cache file kept at the root of each watched working copy.
const FileName = ".github-last-commit-cache.json"

// Cache is a time-boxed on-disk store keyed by one repository path.
type Cache struct {
	path string
}

func New(repoPath string) *Cache {
	return &Cache{
		path: filepath.Join(repoPath, FileName),
	}
}

func (c *Cache) Path() string {
	return c.path
}

// IsFresh reports whether the cache file exists and was written within maxAge.
// Any stat error counts as stale; an unreadable cache is the same as no cache.
func (c *Cache) IsFresh(maxAge time.Duration) bool {
	info, err := os.Stat(c.path)
	if err != nil {
		return false
	}

	return time.Since(info.ModTime()) <= maxAge
}

// Read parses the cached pair. The file can vanish between IsFresh and Read,
// so callers treat ErrCorruptCache as a cache miss.
func (c *Cache) Read() (Entry, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %w", ErrCorruptCache, err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry{}, fmt.Errorf("%w: %w", ErrCorruptCache, err)
	}

	return entry, nil
}

// Write replaces the cache with the given pair. The entry is written to a
// temporary file and renamed into place, so a concurrent reader never observes
// a partial pair.
func (c *Cache) Write(entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), FileName+".*")
	if err != nil {
		return fmt.Errorf("failed to create cache temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return fmt.Errorf("failed to write cache entry: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("failed to close cache temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), c.path); err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("failed to replace cache file: %w", err)
	}

	return nil
}
