package notify

import (
	"context"

	"go.uber.org/fx"

	"signal_bot/internal/modules/config"
	"signal_bot/pkg/logger"
)

func Module() fx.Option {
	return fx.Module("notify",
		fx.Provide(
			NewCommands,
			// Notifier: если TELEGRAM_* нет: используем stdout
			func(cfg *config.Config, cmd *Commands) Notifier {
				if cfg.Telegram.Token != "" && cfg.Telegram.ChatID != 0 {
					tg, err := NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID, cmd)
					if err == nil {
						return tg
					}
					logger.Error("[TG] init failed, fallback to stdout: %v", err)
				}
				return NewStdout()
			},
		),
		fx.Invoke(func(lc fx.Lifecycle, n Notifier) {
			tg, ok := n.(*Telegram)
			if !ok {
				return
			}
			var cancel context.CancelFunc
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					var ctx context.Context
					ctx, cancel = context.WithCancel(context.Background())
					return tg.Start(ctx)
				},
				OnStop: func(context.Context) error {
					cancel()
					tg.Stop()
					return nil
				},
			})
		}),
	)
}
