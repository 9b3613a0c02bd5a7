package watcher

import (
	"context"
	"time"

	git "github.com/go-git/go-git/v6"
	"github.com/repowatch/repowatch/internal/sync"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type Config struct {
	// Interval between check rounds.
	Interval time.Duration
	// Repos are the working copy paths to watch.
	Repos []string
}

// Watcher periodically runs synchronization checks over the configured
// working copies.
type Watcher struct {
	checker *sync.Service
	config  Config

	logger *zap.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

func New(checker *sync.Service, config Config, logger *zap.Logger) *Watcher {
	if config.Interval <= 0 {
		config.Interval = 15 * time.Minute
	}

	return &Watcher{
		checker: checker,
		config:  config,
		logger:  logger,
		done:    make(chan struct{}),
	}
}

func (w *Watcher) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	go w.run(ctx)

	return nil
}

func (w *Watcher) Stop(ctx context.Context) error {
	if w.cancel == nil {
		return nil
	}
	w.cancel()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	repos := w.validRepos()
	if len(repos) == 0 {
		w.logger.Info("no repositories to watch")

		return
	}

	w.logger.Info("watching repositories",
		zap.Int("count", len(repos)),
		zap.Duration("interval", w.config.Interval))

	w.checkAll(ctx, repos)

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.checkAll(ctx, repos)
		}
	}
}

// validRepos filters the configured paths down to actual git repositories.
func (w *Watcher) validRepos() []string {
	return lo.Filter(w.config.Repos, func(path string, _ int) bool {
		if _, err := git.PlainOpen(path); err != nil {
			w.logger.Warn("skipping path, not a git repository",
				zap.String("path", path),
				zap.Error(err))

			return false
		}

		return true
	})
}

func (w *Watcher) checkAll(ctx context.Context, repos []string) {
	for _, path := range repos {
		if ctx.Err() != nil {
			return
		}

		if _, err := w.checker.Check(ctx, path); err != nil {
			w.logger.Error("check failed",
				zap.String("path", path),
				zap.Error(err))
		}
	}
}
