package ledger

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"signal_bot/internal/models"
)

// Counts: срез счётчиков журнала для дневной сводки.
type Counts struct {
	InFlight   int
	Successful int
	Failed     int
	Cancelled  int
	Adjusted   int
}

// Total: всё, что было отправлено: в работе плюс завершённые.
func (c Counts) Total() int {
	return c.InFlight + c.Successful + c.Failed + c.Cancelled
}

// Ledger хранит сделки в работе и три терминальные корзины.
// Создаётся при старте процесса, корзины чистит только дневная сводка (Drain).
type Ledger struct {
	mu sync.Mutex

	inFlight   map[string]models.Trade
	successful []models.Trade
	failed     []models.Trade
	cancelled  []models.Trade
	adjusted   int

	newID func() string
}

func New() *Ledger {
	return &Ledger{
		inFlight: make(map[string]models.Trade),
		newID:    uuid.NewString,
	}
}

// Insert кладёт сделку в работу со статусом Sent и возвращает её с ID.
func (l *Ledger) Insert(t models.Trade) models.Trade {
	l.mu.Lock()
	defer l.mu.Unlock()

	if t.ID == "" {
		t.ID = l.newID()
	}
	t.Status = models.StatusSent
	l.inFlight[t.ID] = t
	if t.Adjusted() {
		l.adjusted++
	}
	return t
}

// Snapshot: копия сделок в работе на момент вызова, по времени создания.
// Мониторинг ходит по снимку, удаления применяются к самому журналу.
func (l *Ledger) Snapshot() []models.Trade {
	l.mu.Lock()
	out := make([]models.Trade, 0, len(l.inFlight))
	for _, t := range l.inFlight {
		out = append(out, t)
	}
	l.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (l *Ledger) Get(id string) (models.Trade, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.inFlight[id]
	return t, ok
}

// Transition применяет событие к сделке в работе.
// Терминальный статус переносит сделку в свою корзину ровно один раз.
// false: сделки уже нет в работе или переход запрещён.
func (l *Ledger) Transition(id string, kind models.EventKind) (models.Trade, bool) {
	next, ok := nextStatus(kind)
	if !ok {
		return models.Trade{}, false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	t, ok := l.inFlight[id]
	if !ok {
		return models.Trade{}, false
	}
	if kind == models.EventEntered && t.Status != models.StatusSent {
		return t, false
	}
	if !t.Status.CanMoveTo(next) {
		return t, false
	}

	t.Status = next
	switch next {
	case models.StatusCompleted:
		delete(l.inFlight, id)
		l.successful = append(l.successful, t)
	case models.StatusFailed:
		delete(l.inFlight, id)
		l.failed = append(l.failed, t)
	case models.StatusExpired:
		delete(l.inFlight, id)
		l.cancelled = append(l.cancelled, t)
	default:
		l.inFlight[id] = t
	}
	return t, true
}

func (l *Ledger) Counts() Counts {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.countsLocked()
}

func (l *Ledger) countsLocked() Counts {
	return Counts{
		InFlight:   len(l.inFlight),
		Successful: len(l.successful),
		Failed:     len(l.failed),
		Cancelled:  len(l.cancelled),
		Adjusted:   l.adjusted,
	}
}

// Drain читает счётчики и очищает терминальные корзины. Сделки в работе не трогает.
func (l *Ledger) Drain() Counts {
	l.mu.Lock()
	defer l.mu.Unlock()

	c := l.countsLocked()
	l.successful = nil
	l.failed = nil
	l.cancelled = nil
	l.adjusted = 0
	return c
}

// Terminal: копии корзин (для /status и тестов).
func (l *Ledger) Terminal() (successful, failed, cancelled []models.Trade) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.Trade(nil), l.successful...),
		append([]models.Trade(nil), l.failed...),
		append([]models.Trade(nil), l.cancelled...)
}
