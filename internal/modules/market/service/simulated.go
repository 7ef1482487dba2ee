package service

import (
	"context"
	"math/rand/v2"
	"sync"

	"signal_bot/internal/models"
)

// Simulated: цена = страйк ± случайные 20 пунктов. Для прогона без живого фида.
type Simulated struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSimulated(seed uint64) *Simulated {
	return &Simulated{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *Simulated) Price(_ context.Context, _ string, strike float64, _ models.Direction) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strike + float64(s.rnd.IntN(41)-20), nil
}
