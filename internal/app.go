package internal

import (
	"context"

	"github.com/capcom6/go-infra-fx/validator"
	"github.com/go-core-fx/fiberfx"
	"github.com/go-core-fx/healthfx"
	"github.com/go-core-fx/logger"
	"github.com/repowatch/repowatch/internal/config"
	"github.com/repowatch/repowatch/internal/github"
	"github.com/repowatch/repowatch/internal/history"
	"github.com/repowatch/repowatch/internal/repo"
	"github.com/repowatch/repowatch/internal/server"
	"github.com/repowatch/repowatch/internal/sync"
	"github.com/repowatch/repowatch/internal/watcher"
	"github.com/repowatch/repowatch/pkg/badgerfx"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Run() {
	fx.New(
		// CORE MODULES
		logger.Module(),
		logger.WithFxDefaultLogger(),
		badgerfx.Module(),
		healthfx.Module(),
		fiberfx.Module(),
		validator.Module,
		//
		// APP MODULES
		config.Module(),
		server.Module(),
		//
		// BUSINESS MODULES
		fx.Provide(func() healthfx.Version { return healthfx.Version{Version: "0.0.1", ReleaseID: 1} }),
		repo.Module(),
		github.Module(),
		history.Module(),
		sync.Module(),
		watcher.Module(),
		//
		// LIFECYCLE MANAGEMENT
		fx.Invoke(func(lc fx.Lifecycle, logger *zap.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					logger.Info("🚀 RepoWatch starting up")
					return nil
				},
				OnStop: func(_ context.Context) error {
					logger.Info("🛑 RepoWatch shutting down gracefully")
					return nil
				},
			})
		}),
	).Run()
}
