package models

import "time"

// EventKind: что произошло со сделкой (или с журналом в целом).
type EventKind string

const (
	EventGenerated     EventKind = "generated"
	EventAdjusted      EventKind = "adjusted"
	EventEntered       EventKind = "entered"
	EventProgress      EventKind = "progress"
	EventCompleted     EventKind = "completed"
	EventFailed        EventKind = "failed"
	EventExpired       EventKind = "expired"
	EventExpiryWarning EventKind = "expiry_warning"
	EventSummary       EventKind = "summary"
)

// Event уходит в websocket-стрим и журнал.
type Event struct {
	Kind      EventKind `json:"kind"`
	TradeID   string    `json:"trade_id,omitempty"`
	Group     string    `json:"group,omitempty"`
	Direction Direction `json:"direction,omitempty"`
	Strike    float64   `json:"strike,omitempty"`
	Status    Status    `json:"status,omitempty"`
	Price     float64   `json:"price,omitempty"`
	Text      string    `json:"text"`
	At        time.Time `json:"at"`
}

// NewTradeEvent заполняет событие полями сделки.
func NewTradeEvent(kind EventKind, t Trade, price float64, text string, at time.Time) Event {
	return Event{
		Kind:      kind,
		TradeID:   t.ID,
		Group:     t.Group,
		Direction: t.Direction,
		Strike:    t.Strike,
		Status:    t.Status,
		Price:     price,
		Text:      text,
		At:        at,
	}
}
