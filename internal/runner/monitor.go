package runner

import (
	"context"

	"signal_bot/internal/ledger"
	"signal_bot/internal/models"
	"signal_bot/pkg/logger"
	"signal_bot/pkg/tracing"
)

// MonitorOnce проходит по снимку сделок в работе. Сделки, ушедшие в терминальный
// статус в этом же проходе, удаляются из Ledger, а не из снимка.
func (r *Runner) MonitorOnce(ctx context.Context) {
	span, ctx := tracing.StartSpan(ctx, "runner.monitor")
	defer span.Finish()

	trades := r.ledger.Snapshot()
	span.SetTag("trades.in_flight", len(trades))
	for _, t := range trades {
		if ctx.Err() != nil {
			return
		}
		r.monitorTrade(ctx, t)
	}
	r.state.TouchMonitor(r.now())
}

func (r *Runner) monitorTrade(ctx context.Context, t models.Trade) {
	now := r.now()

	switch ledger.CheckExpiry(t, now, r.set.ExpiryWarning) {
	case models.EventExpired:
		r.apply(ctx, t.ID, models.EventExpired, 0)
		return
	case models.EventExpiryWarning:
		// первое совпавшее правило закрывает цикл для сделки, статус не меняется
		r.send(ctx, r.tradeEvent(models.EventExpiryWarning, t, 0, expiryWarningText(t, t.HoursToExpiry(now))), "")
		return
	}

	price, err := r.gw.Price(ctx, t.Symbol, t.Strike, t.Direction)
	if err != nil {
		logger.Error("[MON] %s %s: цена недоступна: %v", t.Group, t.Label(), err)
		return
	}

	if kind := ledger.CheckPrice(t, price, r.set.EntryTolerance); kind != "" {
		r.apply(ctx, t.ID, kind, price)
	}
}

// apply переводит сделку и шлёт уведомление, только если переход состоялся.
func (r *Runner) apply(ctx context.Context, id string, kind models.EventKind, price float64) {
	t, ok := r.ledger.Transition(id, kind)
	if !ok {
		return
	}
	logger.Info("[MON] %s %s -> %s (price=%s)", t.Group, t.Label(), t.Status, models.FormatPrice(price))
	r.send(ctx, r.tradeEvent(kind, t, price, transitionText(kind, t)), "")
}
