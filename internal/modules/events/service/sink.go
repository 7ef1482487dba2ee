package service

import (
	"context"

	"signal_bot/internal/models"
)

// Sink получает события по сделкам. Publish не должен блокировать цикл надолго
// и ошибок наружу не отдаёт.
type Sink interface {
	Publish(ctx context.Context, ev models.Event)
}

// Fanout рассылает событие во все синки по порядку.
type Fanout []Sink

func (f Fanout) Publish(ctx context.Context, ev models.Event) {
	for _, s := range f {
		if s != nil {
			s.Publish(ctx, ev)
		}
	}
}
