package config

import "go.uber.org/fx"

// Module отдаёт *Config: defaults, потом configs/$CONFIG_FILE, потом env.
func Module() fx.Option {
	return fx.Module("config",
		fx.Provide(
			NewConfig,
		),
	)
}
