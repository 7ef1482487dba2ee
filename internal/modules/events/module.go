package events

import (
	"context"

	"go.uber.org/fx"

	"signal_bot/internal/journal"
	"signal_bot/internal/modules/events/service"
)

func Module() fx.Option {
	return fx.Module("events",
		fx.Provide(
			service.NewHub,
			// все события: websocket-стрим + журнал в postgres (если настроен)
			func(hub *service.Hub, j journal.Journal) service.Sink {
				return service.Fanout{hub, j}
			},
		),
		fx.Invoke(func(lc fx.Lifecycle, hub *service.Hub) {
			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					hub.Close()
					return nil
				},
			})
		}),
	)
}
