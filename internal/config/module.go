package config

import (
	"github.com/go-core-fx/fiberfx"
	"github.com/repowatch/repowatch/internal/github"
	"github.com/repowatch/repowatch/internal/repo"
	"github.com/repowatch/repowatch/internal/sync"
	"github.com/repowatch/repowatch/internal/watcher"
	"github.com/repowatch/repowatch/pkg/badgerfx"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"config",
		fx.Provide(New),
		fx.Provide(func(cfg Config) fiberfx.Config {
			return fiberfx.Config{
				Address:     cfg.HTTP.Address,
				ProxyHeader: cfg.HTTP.ProxyHeader,
				Proxies:     cfg.HTTP.Proxies,
			}
		}),
		fx.Provide(func(cfg Config) badgerfx.Config {
			return badgerfx.Config{
				Dir: cfg.Storage.DataDir,
			}
		}),
		fx.Provide(func(cfg Config) repo.Config {
			return repo.Config{
				Binary:  cfg.Git.Binary,
				Timeout: cfg.Git.Timeout,
			}
		}),
		fx.Provide(func(cfg Config) github.Config {
			return github.Config{
				APIBase:   cfg.GitHub.APIBase,
				UserAgent: cfg.GitHub.UserAgent,
				Timeout:   cfg.GitHub.Timeout,
			}
		}),
		fx.Provide(func(cfg Config) sync.Config {
			return sync.Config{
				MaxAge: cfg.Watch.MaxAge,
			}
		}),
		fx.Provide(func(cfg Config) watcher.Config {
			return watcher.Config{
				Interval: cfg.Watch.Interval,
				Repos:    cfg.Watch.Repos,
			}
		}),
	)
}
