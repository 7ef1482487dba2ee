package ledger

import (
	"math"
	"time"

	"signal_bot/internal/models"
)

// EntryTolerance: насколько близко цена должна подойти ко входу.
const EntryTolerance = 0.1

// CheckExpiry: первые два правила цикла мониторинга:
// экспирация прошла => EventExpired, осталось не больше warning => EventExpiryWarning.
func CheckExpiry(t models.Trade, now time.Time, warning time.Duration) models.EventKind {
	left := t.HoursToExpiry(now)
	switch {
	case left <= 0:
		return models.EventExpired
	case left <= warning.Hours():
		return models.EventExpiryWarning
	}
	return ""
}

// CheckPrice: ценовые правила, первое совпадение выигрывает:
// TP2 => Completed, TP1 => Active, SL => Failed, вход => Active (только из Sent).
func CheckPrice(t models.Trade, price, tolerance float64) models.EventKind {
	switch {
	case t.Reached(price, t.TakeProfit2):
		return models.EventCompleted
	case t.Reached(price, t.TakeProfit1):
		return models.EventProgress
	case t.StoppedOut(price):
		return models.EventFailed
	case t.Status == models.StatusSent && math.Abs(price-t.Entry) < tolerance:
		return models.EventEntered
	}
	return ""
}

// nextStatus: куда ведёт событие. ok=false, если событие статус не меняет.
func nextStatus(kind models.EventKind) (models.Status, bool) {
	switch kind {
	case models.EventExpired:
		return models.StatusExpired, true
	case models.EventCompleted:
		return models.StatusCompleted, true
	case models.EventFailed:
		return models.StatusFailed, true
	case models.EventProgress, models.EventEntered:
		return models.StatusActive, true
	}
	return "", false
}
