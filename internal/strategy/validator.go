package strategy

import (
	"math"

	"signal_bot/internal/models"
)

// Validate проверяет, что страйк кандидата реально есть в данных.
// Если нет: подставляет ближайший (при равенстве побеждает первый в strikes)
// и возвращает false. OriginalStrike не трогаем.
func Validate(t models.Trade, strikes []float64) (bool, models.Trade) {
	if len(strikes) == 0 {
		return true, t
	}
	for _, s := range strikes {
		if s == t.Strike {
			return true, t
		}
	}

	best := strikes[0]
	bestDist := math.Abs(best - t.Strike)
	for _, s := range strikes[1:] {
		if d := math.Abs(s - t.Strike); d < bestDist {
			best, bestDist = s, d
		}
	}

	adjusted := t
	adjusted.Strike = best
	return false, adjusted
}
