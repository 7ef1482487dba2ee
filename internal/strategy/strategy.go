package strategy

import (
	"iter"
	"time"

	"signal_bot/internal/models"
)

// Engine: то, что Runner будет дергать. Состояния нет: один и тот же вход
// и одно и то же now дают одни и те же кандидаты.
type Engine interface {
	// Candidates отдаёт не больше maxTrades сделок, начиная с самой свежей свечи.
	Candidates(series models.Series, group string, maxTrades int, now time.Time) iter.Seq[models.Trade]
	Name() string
}

// Offsets: отступы SL/TP от входа в пунктах. Знак зависит от направления.
type Offsets struct {
	StopLoss    float64
	TakeProfit1 float64
	TakeProfit2 float64
}

func DefaultOffsets() Offsets {
	return Offsets{StopLoss: 20, TakeProfit1: 50, TakeProfit2: 100}
}

// Levels считает SL/TP1/TP2 для входа и направления.
func (o Offsets) Levels(dir models.Direction, entry float64) (sl, tp1, tp2 float64) {
	if dir == models.DirectionPut {
		return entry + o.StopLoss, entry - o.TakeProfit1, entry - o.TakeProfit2
	}
	return entry - o.StopLoss, entry + o.TakeProfit1, entry + o.TakeProfit2
}

// ExpiryFor: экспирация на следующий календарный день (полночь, локальная зона now).
func ExpiryFor(now time.Time) time.Time {
	next := now.Add(24 * time.Hour)
	return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, now.Location())
}
