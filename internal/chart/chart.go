package chart

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"signal_bot/internal/helper"
	"signal_bot/internal/models"
	"signal_bot/pkg/logger"
)

// Renderer рисует график для вложения в уведомление.
// Файл после отправки удаляется через Cleanup.
type Renderer interface {
	Render(series models.Series, trades []models.Trade) (string, error)
	Cleanup(path string)
}

// PNG: рендер в png-файлы внутри dir.
type PNG struct {
	dir string
	seq atomic.Uint64
}

func NewPNG(dir string) (*PNG, error) {
	if dir == "" {
		dir = "charts"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("charts dir %s: %w", dir, err)
	}
	return &PNG{dir: dir}, nil
}

var (
	entryStyle = gochart.Style{StrokeColor: drawing.ColorBlue, StrokeWidth: 1, StrokeDashArray: []float64{4, 2}}
	slStyle    = gochart.Style{StrokeColor: drawing.ColorRed, StrokeWidth: 1, StrokeDashArray: []float64{4, 2}}
	tpStyle    = gochart.Style{StrokeColor: drawing.ColorGreen, StrokeWidth: 1, StrokeDashArray: []float64{4, 2}}
)

func (p *PNG) Render(series models.Series, trades []models.Trade) (string, error) {
	if len(series.Bars) < 2 {
		return "", fmt.Errorf("chart %s: need at least 2 bars, got %d", series.Symbol, len(series.Bars))
	}

	xs := make([]time.Time, len(series.Bars))
	ys := make([]float64, len(series.Bars))
	for i, b := range series.Bars {
		xs[i] = b.Time
		ys[i] = b.Close
	}

	all := []gochart.Series{
		gochart.TimeSeries{Name: "Close", XValues: xs, YValues: ys},
	}
	for _, t := range trades {
		all = append(all,
			level(fmt.Sprintf("%s entry", t.Label()), xs, t.Entry, entryStyle),
			level("SL", xs, t.StopLoss, slStyle),
			level("TP1", xs, t.TakeProfit1, tpStyle),
			level("TP2", xs, t.TakeProfit2, tpStyle),
		)
	}

	graph := gochart.Chart{
		Title:  fmt.Sprintf("%s (%s)", series.Symbol, series.Interval),
		Width:  1024,
		Height: 512,
		XAxis:  gochart.XAxis{ValueFormatter: gochart.TimeValueFormatterWithFormat("01-02 15:04")},
		Series: all,
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}

	name := fmt.Sprintf("trade_%s_%d_%d.png", helper.TrimTicker(series.Symbol), time.Now().Unix(), p.seq.Add(1))
	path := filepath.Join(p.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create chart file: %w", err)
	}
	if err := graph.Render(gochart.PNG, f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("render chart %s: %w", series.Symbol, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close chart file: %w", err)
	}
	return path, nil
}

func (p *PNG) Cleanup(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Error("[CHART] remove %s: %v", path, err)
	}
}

// level: горизонтальная линия уровня на всю ширину графика.
func level(name string, xs []time.Time, v float64, style gochart.Style) gochart.TimeSeries {
	ys := make([]float64, len(xs))
	for i := range ys {
		ys[i] = v
	}
	return gochart.TimeSeries{Name: name, Style: style, XValues: xs, YValues: ys}
}
