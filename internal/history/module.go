package history

import (
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"history",
		fx.Provide(NewRepository),
	)
}
