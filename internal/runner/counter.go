package runner

import (
	"sync"
	"time"
)

const dayLayout = "2006-01-02"

// DailyCounter: сколько сделок отправлено по группе за календарный день.
// Сбрасывается при смене даты (Roll).
type DailyCounter struct {
	mu     sync.Mutex
	max    int
	day    string
	counts map[string]int
}

func NewDailyCounter(max int) *DailyCounter {
	return &DailyCounter{max: max, counts: make(map[string]int)}
}

// Roll обнуляет счётчики, если наступил новый день. true: был сброс.
func (c *DailyCounter) Roll(now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	day := now.Format(dayLayout)
	if c.day == day {
		return false
	}
	reset := c.day != ""
	c.day = day
	c.counts = make(map[string]int)
	return reset
}

func (c *DailyCounter) Allow(group string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[group] < c.max
}

func (c *DailyCounter) Inc(group string) {
	c.mu.Lock()
	c.counts[group]++
	c.mu.Unlock()
}

func (c *DailyCounter) Count(group string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[group]
}
