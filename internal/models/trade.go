package models

import (
	"fmt"
	"time"
)

// Direction: сторона опциона.
type Direction string

const (
	DirectionCall Direction = "CALL"
	DirectionPut  Direction = "PUT"
)

// Status: жизненный цикл сделки: Sent -> Active -> Completed/Failed, либо Expired.
type Status string

const (
	StatusSent      Status = "Sent"
	StatusActive    Status = "Active"
	StatusCompleted Status = "Completed"
	StatusFailed    Status = "Failed"
	StatusExpired   Status = "Expired"
)

// Terminal: из этих статусов переходов нет.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusExpired:
		return true
	}
	return false
}

// rank задаёт порядок статусов, назад двигаться нельзя.
func (s Status) rank() int {
	switch s {
	case StatusSent:
		return 0
	case StatusActive:
		return 1
	case StatusCompleted, StatusFailed, StatusExpired:
		return 2
	}
	return -1
}

// CanMoveTo проверяет, что переход s -> next не идёт назад по жизненному циклу.
func (s Status) CanMoveTo(next Status) bool {
	if s.Terminal() {
		return false
	}
	if s == next {
		return s == StatusActive
	}
	return next.rank() > s.rank()
}

// ExpiryLayout: формат даты экспирации в сообщениях.
const ExpiryLayout = "2006-01-02"

// Trade: предложенная сделка, которую отслеживает Ledger.
type Trade struct {
	ID             string
	Group          string // имя индекса из таблицы символов, например Nifty50
	Symbol         string // тикер провайдера, например ^NSEI
	Direction      Direction
	Strike         float64
	OriginalStrike float64 // страйк до подгонки, не меняется
	Entry          float64
	StopLoss       float64
	TakeProfit1    float64
	TakeProfit2    float64
	Expiry         time.Time // полночь дня экспирации, локальное время
	Status         Status
	CreatedAt      time.Time
}

// Adjusted: страйк был подогнан валидатором.
func (t Trade) Adjusted() bool { return t.Strike != t.OriginalStrike }

// HoursToExpiry считает часы до полуночи дня экспирации.
func (t Trade) HoursToExpiry(now time.Time) float64 {
	return t.Expiry.Sub(now).Hours()
}

func (t Trade) ExpiryDate() string { return t.Expiry.Format(ExpiryLayout) }

// Label: короткая подпись вида "CALL 22500".
func (t Trade) Label() string {
	return fmt.Sprintf("%s %s", t.Direction, FormatPrice(t.Strike))
}

// Reached: цена достигла уровня с учётом направления:
// для CALL движение вверх, для PUT вниз.
func (t Trade) Reached(price, level float64) bool {
	if t.Direction == DirectionPut {
		return price <= level
	}
	return price >= level
}

// StoppedOut: цена ушла за стоп с учётом направления.
func (t Trade) StoppedOut(price float64) bool {
	if t.Direction == DirectionPut {
		return price >= t.StopLoss
	}
	return price <= t.StopLoss
}

// FormatPrice печатает цену без лишних нулей.
func FormatPrice(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
