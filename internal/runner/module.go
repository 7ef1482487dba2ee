package runner

import (
	"context"

	"go.uber.org/fx"

	"signal_bot/internal/ledger"
	"signal_bot/pkg/logger"
)

func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			ledger.New,  // *ledger.Ledger: один на процесс
			NewSettings, // func(*config.Config) (Settings, error)
			New,         // *Runner
		),
		fx.Invoke(func(lc fx.Lifecycle, r *Runner) {
			var cancel context.CancelFunc
			done := make(chan struct{})
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					var ctx context.Context
					ctx, cancel = context.WithCancel(context.Background())
					go func() {
						defer close(done)
						if err := r.Run(ctx); err != nil {
							logger.Error("[RUNNER] stopped: %v", err)
						}
					}()
					return nil
				},
				OnStop: func(ctx context.Context) error {
					cancel()
					select {
					case <-done:
					case <-ctx.Done():
					}
					return nil
				},
			})
		}),
	)
}
