package runner

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestDailyCounterRoll(t *testing.T) {
	c := NewDailyCounter(2)
	day1 := time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local)

	assert.False(t, c.Roll(day1), "first roll only sets the day")
	c.Inc("Nifty50")
	c.Inc("Nifty50")
	assert.False(t, c.Allow("Nifty50"))
	assert.True(t, c.Allow("Sensex"))

	assert.False(t, c.Roll(day1.Add(10*time.Hour)))
	assert.Equal(t, 2, c.Count("Nifty50"))

	assert.True(t, c.Roll(day1.Add(24*time.Hour)))
	assert.Equal(t, 0, c.Count("Nifty50"))
	assert.True(t, c.Allow("Nifty50"))
}

func TestDailyCounterNeverExceedsCap(t *testing.T) {
	groups := []string{"Nifty50", "BankNifty", "Sensex"}

	props := gopter.NewProperties(gopter.DefaultTestParameters())
	props.Property("allowed increments stay under the cap", prop.ForAll(
		func(max int, seq []int) bool {
			c := NewDailyCounter(max)
			c.Roll(time.Now())
			for _, i := range seq {
				g := groups[i]
				if c.Allow(g) {
					c.Inc(g)
				}
			}
			for _, g := range groups {
				if c.Count(g) > max {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 10),
		gen.SliceOf(gen.IntRange(0, len(groups)-1)),
	))
	props.TestingRun(t)
}
