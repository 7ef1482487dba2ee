package chart

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.InitNop()
	os.Exit(m.Run())
}

func series(n int) models.Series {
	base := time.Date(2024, 3, 10, 9, 15, 0, 0, time.UTC)
	bars := make([]models.Bar, 0, n)
	for i := 0; i < n; i++ {
		c := 22000 + float64(i%7)*15
		bars = append(bars, models.Bar{Time: base.Add(time.Duration(i) * 5 * time.Minute), Open: c - 5, Close: c})
	}
	return models.Series{Symbol: "^NSEI", Interval: "5m", Bars: bars}
}

func TestRenderAndCleanup(t *testing.T) {
	p, err := NewPNG(t.TempDir())
	require.NoError(t, err)

	tr := models.Trade{
		Direction: models.DirectionCall, Strike: 22100,
		Entry: 22090, StopLoss: 22070, TakeProfit1: 22140, TakeProfit2: 22190,
	}
	path, err := p.Render(series(30), []models.Trade{tr})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "trade_NSEI_"))
	assert.True(t, strings.HasSuffix(path, ".png"))

	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, st.Size())

	p.Cleanup(path)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// повторная очистка и пустой путь: без паники
	p.Cleanup(path)
	p.Cleanup("")
}

func TestRenderUniqueNames(t *testing.T) {
	p, err := NewPNG(t.TempDir())
	require.NoError(t, err)

	a, err := p.Render(series(5), nil)
	require.NoError(t, err)
	b, err := p.Render(series(5), nil)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestRenderNeedsTwoBars(t *testing.T) {
	p, err := NewPNG(t.TempDir())
	require.NoError(t, err)

	_, err = p.Render(series(1), nil)
	assert.Error(t, err)
}
