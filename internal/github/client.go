package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/repowatch/repowatch/internal/repo"
	"go.uber.org/zap"
)

type Client struct {
	http   *http.Client
	config Config

	logger *zap.Logger
}

// NewClient creates a GitHub API client.
func NewClient(config Config, logger *zap.Logger) *Client {
	if config.APIBase == "" {
		config.APIBase = "https://api.github.com"
	}
	if config.UserAgent == "" {
		config.UserAgent = "repowatch"
	}

	return &Client{
		http: &http.Client{
			Transport: &http.Transport{
				// Bounds time to response headers only. A slow body read is
				// not a timeout.
				ResponseHeaderTimeout: config.Timeout,
			},
		},
		config: config,
		logger: logger,
	}
}

// LatestCommit fetches the most recent commit pushed to the origin repository.
// A single attempt; failures surface to the caller undecorated by retries.
func (c *Client) LatestCommit(ctx context.Context, origin repo.Origin) (Commit, error) {
	url := origin.CommitsURL(c.config.APIBase)

	c.logger.Debug("querying latest remote commit",
		zap.String("owner", origin.Owner),
		zap.String("repo", origin.Name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Commit{}, fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		var netErr net.Error
		if (errors.As(err, &netErr) && netErr.Timeout()) || errors.Is(err, context.DeadlineExceeded) {
			return Commit{}, fmt.Errorf("%w: %w", ErrRemoteTimeout, err)
		}

		return Commit{}, fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Commit{}, fmt.Errorf("%w: status %d for %s/%s",
			ErrRemoteProtocol, resp.StatusCode, origin.Owner, origin.Name)
	}

	var entries []commitEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return Commit{}, fmt.Errorf("%w: %w", ErrRemoteProtocol, err)
	}

	if len(entries) == 0 {
		return Commit{}, fmt.Errorf("%w: no commits for %s/%s",
			ErrRemoteProtocol, origin.Owner, origin.Name)
	}

	first := entries[0]
	if first.SHA == "" {
		return Commit{}, fmt.Errorf("%w: commit entry without sha", ErrRemoteProtocol)
	}

	return Commit{
		SHA:        first.SHA,
		AuthorDate: first.Commit.Author.Date,
	}, nil
}
