package repo

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"
)

const defaultAPIBase = "https://api.github.com"

type Service struct {
	runner Runner
	config Config

	logger *zap.Logger
}

// NewService creates a new repository state service.
func NewService(runner Runner, config Config, logger *zap.Logger) *Service {
	if config.Binary == "" {
		config.Binary = "git"
	}

	return &Service{
		runner: runner,
		config: config,
		logger: logger,
	}
}

// Revision returns the human-readable revision descriptor: nearest tag, commit
// distance, abbreviated hash, and a -dirty suffix when the working copy has
// uncommitted changes. Falls back to the bare abbreviated hash when no tag is
// reachable.
func (s *Service) Revision(ctx context.Context, path string) (string, error) {
	out, err := s.run(ctx, path, "describe", "--long", "--dirty", "--tags", "--always")
	if err != nil {
		return "", err
	}

	s.logger.Debug("resolved revision",
		zap.String("path", path),
		zap.String("revision", out))

	return out, nil
}

// LastCommitDate returns the author date of the last local commit as Unix
// epoch seconds. git emits the epoch natively, so no date parsing is involved.
func (s *Service) LastCommitDate(ctx context.Context, path string) (float64, error) {
	out, err := s.run(ctx, path, "log", "-1", "--format=%at")
	if err != nil {
		return 0, err
	}

	seconds, err := strconv.ParseFloat(out, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: unexpected timestamp output %q: %w", ErrCommandFailed, out, err)
	}

	return seconds, nil
}

// OriginURL returns the configured remote.origin.url, unparsed.
func (s *Service) OriginURL(ctx context.Context, path string) (string, error) {
	return s.run(ctx, path, "config", "--get", "remote.origin.url")
}

// Origin returns the parsed origin of the working copy.
func (s *Service) Origin(ctx context.Context, path string) (Origin, error) {
	rawURL, err := s.OriginURL(ctx, path)
	if err != nil {
		return Origin{}, err
	}

	return ParseOrigin(rawURL)
}

// APIURL returns the GitHub API endpoint listing the latest upstream commit.
func (s *Service) APIURL(ctx context.Context, path string) (string, error) {
	origin, err := s.Origin(ctx, path)
	if err != nil {
		return "", err
	}

	return origin.CommitsURL(defaultAPIBase), nil
}

// WebURL returns the browser-facing URL of the origin repository.
func (s *Service) WebURL(ctx context.Context, path string) (string, error) {
	origin, err := s.Origin(ctx, path)
	if err != nil {
		return "", err
	}

	return origin.WebURL(), nil
}

// ShortHash abbreviates a full commit hash to the length git considers unique
// for this repository, so it is comparable with the hash embedded in Revision.
func (s *Service) ShortHash(ctx context.Context, path, fullHash string) (string, error) {
	return s.run(ctx, path, "rev-parse", "--short", fullHash)
}

// State gathers all locally derivable facts about the working copy.
func (s *Service) State(ctx context.Context, path string) (*State, error) {
	revision, err := s.Revision(ctx, path)
	if err != nil {
		return nil, err
	}

	lastCommit, err := s.LastCommitDate(ctx, path)
	if err != nil {
		return nil, err
	}

	rawURL, err := s.OriginURL(ctx, path)
	if err != nil {
		return nil, err
	}

	origin, err := ParseOrigin(rawURL)
	if err != nil {
		return nil, err
	}

	return &State{
		Path:           path,
		Revision:       revision,
		LastCommitDate: lastCommit,
		Origin:         rawURL,
		APIURL:         origin.CommitsURL(defaultAPIBase),
		WebURL:         origin.WebURL(),
	}, nil
}

func (s *Service) run(ctx context.Context, path string, args ...string) (string, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	argv := append([]string{s.config.Binary}, args...)

	return s.runner.Run(ctx, path, argv...)
}
