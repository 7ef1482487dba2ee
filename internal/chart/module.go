package chart

import (
	"go.uber.org/fx"

	"signal_bot/internal/modules/config"
)

func Module() fx.Option {
	return fx.Module("chart",
		fx.Provide(
			func(cfg *config.Config) (Renderer, error) {
				return NewPNG(cfg.Charts.Dir)
			},
		),
	)
}
