package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"signal_bot/internal/chart"
	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/events"
	"signal_bot/internal/modules/health"
	"signal_bot/internal/modules/market"
	"signal_bot/internal/modules/postgres"
	"signal_bot/internal/notify"
	"signal_bot/internal/runner"
	"signal_bot/internal/strategy"
	"signal_bot/pkg/logger"
	"signal_bot/pkg/tracing"
)

const serviceName = "signal_bot"

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start generation, monitoring and daily summary loops",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fx.New(appOptions()...)
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
}

// appOptions: observability идёт сразу за config, его invoke должен
// отработать раньше invoke'ов остальных модулей (они уже пишут в лог).
func appOptions() []fx.Option {
	return []fx.Option{
		fx.NopLogger,
		config.Module(),
		fx.Module("observability", fx.Invoke(initObservability)),
		postgres.Module(),
		events.Module(),
		market.Module(),
		strategy.Module(),
		chart.Module(),
		notify.Module(),
		runner.Module(),
		health.Module(),
	}
}

// initObservability: логгер и трейсер до старта остальных модулей.
func initObservability(lc fx.Lifecycle, cfg *config.Config) error {
	logger.SetServiceName(serviceName)
	tracing.SetServiceName(serviceName)

	if err := logger.Init(logger.Config{Level: cfg.Log.Level, File: cfg.Log.File}); err != nil {
		return err
	}

	_, closeTracer, err := tracing.InitTracer(tracing.Config{Host: cfg.Tracing.Host, Port: cfg.Tracing.Port})
	if err != nil {
		logger.Error("[TRACE] jaeger init: %v, трейсинг выключен", err)
		closeTracer = func() {}
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			closeTracer()
			logger.Sync()
			return nil
		},
	})
	return nil
}
