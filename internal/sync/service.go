package sync

import (
	"context"
	"strings"
	"time"

	"github.com/repowatch/repowatch/internal/cache"
	"github.com/repowatch/repowatch/internal/github"
	"github.com/repowatch/repowatch/internal/history"
	"github.com/repowatch/repowatch/internal/repo"
	"go.uber.org/zap"
)

type Service struct {
	repos    *repo.Service
	github   *github.Client
	checks   *history.Repository
	notifier Notifier
	config   Config

	logger *zap.Logger
}

// NewService creates a new synchronization checker.
func NewService(
	repos *repo.Service,
	githubClient *github.Client,
	checks *history.Repository,
	notifier Notifier,
	config Config,
	logger *zap.Logger,
) *Service {
	if config.MaxAge <= 0 {
		config.MaxAge = time.Hour
	}

	return &Service{
		repos:    repos,
		github:   githubClient,
		checks:   checks,
		notifier: notifier,
		config:   config,
		logger:   logger,
	}
}

// LatestRemoteCommit returns the newest upstream commit for the working copy
// at path, served from the on-disk cache when fresh. On a cache miss it
// queries the API once, resolves the short hash through the local tool, writes
// the cache, and returns the pair. The boolean reports whether the cache
// served the result.
func (s *Service) LatestRemoteCommit(ctx context.Context, path string) (Commit, bool, error) {
	resultCache := cache.New(path)

	if resultCache.IsFresh(s.config.MaxAge) {
		entry, err := resultCache.Read()
		if err == nil {
			cacheEventsTotal.WithLabelValues("hit").Inc()

			return Commit{ShortHash: entry.ShortHash, Timestamp: entry.Timestamp}, true, nil
		}

		// The file can vanish between the freshness check and the read.
		s.logger.Warn("fresh cache unreadable, querying remote",
			zap.String("path", path),
			zap.Error(err))
	}

	cacheEventsTotal.WithLabelValues("miss").Inc()

	origin, err := s.repos.Origin(ctx, path)
	if err != nil {
		return Commit{}, false, err
	}

	remote, err := s.github.LatestCommit(ctx, origin)
	if err != nil {
		return Commit{}, false, err
	}

	timestamp, err := github.ParseTimestamp(remote.AuthorDate)
	if err != nil {
		return Commit{}, false, err
	}

	shortHash, err := s.repos.ShortHash(ctx, path, remote.SHA)
	if err != nil {
		return Commit{}, false, err
	}

	commit := Commit{ShortHash: shortHash, Timestamp: timestamp}

	if err := resultCache.Write(cache.Entry{ShortHash: shortHash, Timestamp: timestamp}); err != nil {
		return Commit{}, false, err
	}

	s.logger.Info("fetched latest remote commit",
		zap.String("path", path),
		zap.String("short_hash", shortHash),
		zap.Float64("timestamp", timestamp))

	return commit, false, nil
}

// Check compares the working copy against the latest upstream commit, records
// the result, and forwards out-of-date results to the notifier.
func (s *Service) Check(ctx context.Context, path string) (*Result, error) {
	revision, err := s.repos.Revision(ctx, path)
	if err != nil {
		checksTotal.WithLabelValues("error").Inc()

		return nil, err
	}

	remote, fromCache, err := s.LatestRemoteCommit(ctx, path)
	if err != nil {
		checksTotal.WithLabelValues("error").Inc()

		return nil, err
	}

	result := &Result{
		Path:      path,
		Revision:  revision,
		Remote:    remote,
		InSync:    strings.Contains(revision, remote.ShortHash),
		FromCache: fromCache,
	}

	if _, err := s.checks.Create(ctx, &history.CheckDraft{
		RepoPath:        result.Path,
		Revision:        result.Revision,
		RemoteShortHash: result.Remote.ShortHash,
		RemoteTimestamp: result.Remote.Timestamp,
		InSync:          result.InSync,
		FromCache:       result.FromCache,
	}); err != nil {
		s.logger.Error("failed to record check", zap.String("path", path), zap.Error(err))
	}

	if result.InSync {
		checksTotal.WithLabelValues("in_sync").Inc()
	} else {
		checksTotal.WithLabelValues("out_of_date").Inc()
		s.notifier.NotifyOutOfDate(result)
	}

	s.logger.Info("check complete",
		zap.String("path", path),
		zap.Bool("in_sync", result.InSync),
		zap.Bool("from_cache", result.FromCache))

	return result, nil
}
