package models

import "time"

// Bar: свеча индекса. Strike: ближайший страйк к закрытию.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
	Strike float64
}

func (b Bar) Bullish() bool { return b.Close > b.Open }

// Series: упорядоченные по времени свечи одного тикера (старые первыми).
type Series struct {
	Symbol   string
	Interval string
	Bars     []Bar
}

func (s Series) Empty() bool { return len(s.Bars) == 0 }

func (s Series) Last() (Bar, bool) {
	if len(s.Bars) == 0 {
		return Bar{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// Strikes возвращает уникальные страйки в порядке первого появления.
func (s Series) Strikes() []float64 {
	seen := make(map[float64]struct{}, len(s.Bars))
	out := make([]float64, 0, len(s.Bars))
	for _, b := range s.Bars {
		if _, ok := seen[b.Strike]; ok {
			continue
		}
		seen[b.Strike] = struct{}{}
		out = append(out, b.Strike)
	}
	return out
}
