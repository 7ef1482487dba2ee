package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"signal_bot/internal/chart"
	"signal_bot/internal/ledger"
	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	market "signal_bot/internal/modules/market/service"
	"signal_bot/pkg/logger"
)

const callbackPrefix = "IDX::"

// Commands: ответы на команды бота. Без Telegram, чтобы можно было тестировать.
type Commands struct {
	symbols  []config.Symbol
	lookback string
	interval string

	gw     market.Gateway
	charts chart.Renderer
	ledger *ledger.Ledger
}

func NewCommands(cfg *config.Config, gw market.Gateway, charts chart.Renderer, l *ledger.Ledger) *Commands {
	return &Commands{
		symbols:  cfg.Symbols,
		lookback: cfg.Market.Lookback,
		interval: cfg.Market.Interval,
		gw:       gw,
		charts:   charts,
		ledger:   l,
	}
}

// HandleCallback: нажатие кнопки индекса: график + последние значения.
// Возвращает текст и путь к картинке (может быть пустым).
func (c *Commands) HandleCallback(ctx context.Context, data string) (string, string) {
	name, ok := strings.CutPrefix(data, callbackPrefix)
	if !ok {
		return "Unknown action", ""
	}
	var (
		sym   config.Symbol
		found bool
	)
	for _, s := range c.symbols {
		if s.Name == name {
			sym, found = s, true
			break
		}
	}
	if !found {
		return fmt.Sprintf("Unknown index %s", name), ""
	}

	series, err := c.gw.Series(ctx, sym.Ticker, c.lookback, c.interval)
	if err != nil {
		if !errors.Is(err, market.ErrNoData) {
			logger.Error("[TG] series %s: %v", sym.Ticker, err)
		}
		return fmt.Sprintf("No data found for %s", sym.Ticker), ""
	}
	last, _ := series.Last()

	msg := fmt.Sprintf(
		"📊 %s (%s)\n"+
			"Last Price: %.2f\n"+
			"High: %.2f | Low: %.2f\n"+
			"Volume: %.0f",
		sym.Ticker, c.interval, last.Close, last.High, last.Low, last.Volume,
	)

	path, err := c.charts.Render(series, nil)
	if err != nil {
		logger.Error("[TG] chart %s: %v", sym.Ticker, err)
		return msg, ""
	}
	return msg, path
}

// Status: сделки в работе и счётчики за день.
func (c *Commands) Status() string {
	trades := c.ledger.Snapshot()
	counts := c.ledger.Counts()

	var b strings.Builder
	fmt.Fprintf(&b, "📋 In flight: %d\n", len(trades))
	for _, t := range trades {
		fmt.Fprintf(&b, "- %s %s [%s] entry=%s SL=%s TP1=%s TP2=%s exp=%s\n",
			t.Group, t.Label(), t.Status,
			models.FormatPrice(t.Entry), models.FormatPrice(t.StopLoss),
			models.FormatPrice(t.TakeProfit1), models.FormatPrice(t.TakeProfit2),
			t.ExpiryDate(),
		)
	}
	fmt.Fprintf(&b, "✅ %d | ❌ %d | ⚠️ %d", counts.Successful, counts.Failed, counts.Cancelled)
	return b.String()
}
