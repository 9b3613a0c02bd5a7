package watcher

import (
	"context"

	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"watcher",
		logger.WithNamedLogger("watcher"),
		fx.Provide(New, fx.Private),
		fx.Invoke(func(w *Watcher, lc fx.Lifecycle) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					return w.Start()
				},
				OnStop: func(ctx context.Context) error {
					return w.Stop(ctx)
				},
			})
		}),
	)
}
