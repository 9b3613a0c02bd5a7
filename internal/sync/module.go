package sync

import (
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"sync",
		logger.WithNamedLogger("sync"),
		fx.Provide(NewNotifier, fx.Private),
		fx.Provide(NewService),
	)
}
