package strategy

import (
	"iter"
	"time"

	"signal_bot/internal/models"
)

const NameBarDirection = "bar_direction"

// BarDirection: заглушка вместо нормального сигнала:
// бычья свеча (close > open) => CALL, иначе PUT.
type BarDirection struct {
	offsets Offsets
}

func NewBarDirection(o Offsets) *BarDirection {
	return &BarDirection{offsets: o}
}

func (s *BarDirection) Name() string { return NameBarDirection }

func (s *BarDirection) Candidates(series models.Series, group string, maxTrades int, now time.Time) iter.Seq[models.Trade] {
	return func(yield func(models.Trade) bool) {
		bars := series.Bars
		expiry := ExpiryFor(now)
		for i := 0; i < maxTrades && i < len(bars); i++ {
			bar := bars[len(bars)-1-i]

			dir := models.DirectionPut
			if bar.Bullish() {
				dir = models.DirectionCall
			}
			sl, tp1, tp2 := s.offsets.Levels(dir, bar.Close)

			t := models.Trade{
				Group:          group,
				Symbol:         series.Symbol,
				Direction:      dir,
				Strike:         bar.Strike,
				OriginalStrike: bar.Strike,
				Entry:          bar.Close,
				StopLoss:       sl,
				TakeProfit1:    tp1,
				TakeProfit2:    tp2,
				Expiry:         expiry,
				CreatedAt:      now,
			}
			if !yield(t) {
				return
			}
		}
	}
}
