package notify

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signal_bot/internal/ledger"
	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	market "signal_bot/internal/modules/market/service"
	"signal_bot/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.InitNop()
	os.Exit(m.Run())
}

type stubGateway struct {
	series models.Series
	err    error
}

func (g stubGateway) Series(context.Context, string, string, string) (models.Series, error) {
	return g.series, g.err
}

func (g stubGateway) Price(context.Context, string, float64, models.Direction) (float64, error) {
	return 0, market.ErrNoData
}

type stubRenderer struct {
	err error
}

func (r stubRenderer) Render(models.Series, []models.Trade) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return "charts/index.png", nil
}

func (stubRenderer) Cleanup(string) {}

func twoBars() models.Series {
	now := time.Now()
	return models.Series{
		Symbol:   "^NSEI",
		Interval: "5m",
		Bars: []models.Bar{
			{Time: now.Add(-5 * time.Minute), Open: 22000, High: 22050, Low: 21990, Close: 22040, Volume: 1000},
			{Time: now, Open: 22040, High: 22110, Low: 22030, Close: 22100.5, Volume: 1500},
		},
	}
}

func newCommands(gw market.Gateway, r stubRenderer, l *ledger.Ledger) *Commands {
	if l == nil {
		l = ledger.New()
	}
	return NewCommands(config.Default(), gw, r, l)
}

func TestHandleCallbackChart(t *testing.T) {
	c := newCommands(stubGateway{series: twoBars()}, stubRenderer{}, nil)

	text, img := c.HandleCallback(context.Background(), callbackPrefix+"Nifty50")
	assert.Equal(t, "charts/index.png", img)
	assert.Equal(t, "📊 ^NSEI (5m)\nLast Price: 22100.50\nHigh: 22110.00 | Low: 22030.00\nVolume: 1500", text)
}

func TestHandleCallbackRenderFailure(t *testing.T) {
	c := newCommands(stubGateway{series: twoBars()}, stubRenderer{err: errors.New("no font")}, nil)

	text, img := c.HandleCallback(context.Background(), callbackPrefix+"Nifty50")
	assert.Empty(t, img)
	assert.Contains(t, text, "Last Price: 22100.50")
}

func TestHandleCallbackNoData(t *testing.T) {
	c := newCommands(stubGateway{err: market.ErrNoData}, stubRenderer{}, nil)

	text, img := c.HandleCallback(context.Background(), callbackPrefix+"BankNifty")
	assert.Empty(t, img)
	assert.Equal(t, "No data found for ^NSEBANK", text)
}

func TestHandleCallbackUnknown(t *testing.T) {
	c := newCommands(stubGateway{}, stubRenderer{}, nil)

	text, _ := c.HandleCallback(context.Background(), "garbage")
	assert.Equal(t, "Unknown action", text)

	text, _ = c.HandleCallback(context.Background(), callbackPrefix+"Dow")
	assert.Equal(t, "Unknown index Dow", text)
}

func TestStatus(t *testing.T) {
	l := ledger.New()
	now := time.Date(2024, 3, 10, 10, 0, 0, 0, time.Local)
	tr := l.Insert(models.Trade{
		Group: "Nifty50", Direction: models.DirectionCall, Strike: 22100, OriginalStrike: 22100,
		Entry: 22100, StopLoss: 22080, TakeProfit1: 22150, TakeProfit2: 22200,
		Expiry: time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local), CreatedAt: now,
	})
	_ = l.Insert(models.Trade{Group: "Sensex", Direction: models.DirectionPut, Strike: 73000, CreatedAt: now.Add(time.Minute)})
	_, ok := l.Transition(tr.ID, models.EventEntered)
	require.True(t, ok)

	out := newCommands(stubGateway{}, stubRenderer{}, l).Status()
	assert.Contains(t, out, "📋 In flight: 2")
	assert.Contains(t, out, "- Nifty50 CALL 22100 [Active] entry=22100 SL=22080 TP1=22150 TP2=22200 exp=2024-03-11")
	assert.Contains(t, out, "- Sensex PUT 73000 [Sent]")
	assert.Contains(t, out, "✅ 0 | ❌ 0 | ⚠️ 0")
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "a", firstLine("a\nb"))
	assert.Equal(t, "abc", firstLine("abc"))
}

func TestStdoutAndNilTelegramDoNotPanic(t *testing.T) {
	NewStdout().Notify(context.Background(), "hello", "")
	NewStdout().Notify(context.Background(), "hello", "x.png")

	var tg *Telegram
	tg.Notify(context.Background(), "hello", "")
	assert.NoError(t, tg.Start(context.Background()))
	tg.Stop()
}
