package runner

import (
	"context"
	"errors"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	market "signal_bot/internal/modules/market/service"
	"signal_bot/internal/strategy"
	"signal_bot/pkg/logger"
	"signal_bot/pkg/tracing"
)

// GenerateOnce: один проход генерации по всем группам под дневным лимитом.
func (r *Runner) GenerateOnce(ctx context.Context) {
	span, ctx := tracing.StartSpan(ctx, "runner.generate")
	defer span.Finish()

	now := r.now()
	if r.counter.Roll(now) {
		logger.Info("[GEN] новый день %s, дневные лимиты сброшены", now.Format(dayLayout))
	}

	sent := 0
	for _, sym := range r.set.Symbols {
		if ctx.Err() != nil {
			return
		}
		if !r.counter.Allow(sym.Name) {
			continue
		}
		sent += r.generateGroup(ctx, sym)
	}
	span.SetTag("trades.sent", sent)
	r.state.TouchGeneration(now)
}

func (r *Runner) generateGroup(ctx context.Context, sym config.Symbol) int {
	span, ctx := tracing.StartSpan(ctx, "runner.generate.group")
	span.SetTag("group", sym.Name)

	series, err := r.gw.Series(ctx, sym.Ticker, r.set.Lookback, r.set.Interval)
	defer func() { tracing.Finish(span, err) }()
	if err != nil {
		if errors.Is(err, market.ErrNoData) {
			logger.Info("[GEN] %s (%s): нет данных, пропуск", sym.Name, sym.Ticker)
		} else {
			logger.Error("[GEN] %s (%s): %v", sym.Name, sym.Ticker, err)
		}
		return 0
	}
	if series.Empty() {
		return 0
	}

	strikes := series.Strikes()
	sent := 0
	for cand := range r.engine.Candidates(series, sym.Name, r.set.MaxDailyTrades, r.now()) {
		if !r.counter.Allow(sym.Name) {
			break
		}

		valid, trade := strategy.Validate(cand, strikes)
		if !valid {
			logger.Info("[GEN] %s: страйк %s -> %s",
				sym.Name, models.FormatPrice(trade.OriginalStrike), models.FormatPrice(trade.Strike))
			r.send(ctx, r.tradeEvent(models.EventAdjusted, trade, 0, adjustedText(trade)), "")
		}

		r.sendNewTrade(ctx, series, trade)
		sent++
	}
	return sent
}

// sendNewTrade: график -> уведомление -> Ledger (Sent) -> счётчик.
// Если график не отрисовался, уходит только текст.
func (r *Runner) sendNewTrade(ctx context.Context, series models.Series, trade models.Trade) {
	text := newTradeText(trade)

	path, err := r.charts.Render(series, []models.Trade{trade})
	if err != nil {
		logger.Error("[GEN] %s chart: %v, отправляю без графика", trade.Group, err)
		path = ""
	}
	r.n.Notify(ctx, text, path)
	if path != "" {
		r.charts.Cleanup(path)
	}

	trade = r.ledger.Insert(trade)
	r.counter.Inc(trade.Group)
	r.sink.Publish(ctx, r.tradeEvent(models.EventGenerated, trade, trade.Entry, text))

	logger.Info("[GEN] %s %s entry=%s id=%s (%d/%d)",
		trade.Group, trade.Label(), models.FormatPrice(trade.Entry), trade.ID,
		r.counter.Count(trade.Group), r.set.MaxDailyTrades)
}
