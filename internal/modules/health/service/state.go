package service

import (
	"sync/atomic"
	"time"
)

// State: что видно снаружи через /healthz.
type State struct {
	ready     atomic.Bool
	startedAt time.Time

	lastGeneration atomic.Int64 // unix seconds
	lastMonitor    atomic.Int64
	lastSummary    atomic.Int64
}

func NewState() *State {
	s := &State{startedAt: time.Now()}
	s.ready.Store(false)
	return s
}

func (s *State) SetReady(v bool) { s.ready.Store(v) }
func (s *State) Ready() bool     { return s.ready.Load() }

func (s *State) TouchGeneration(t time.Time) { s.lastGeneration.Store(t.Unix()) }
func (s *State) TouchMonitor(t time.Time)    { s.lastMonitor.Store(t.Unix()) }
func (s *State) TouchSummary(t time.Time)    { s.lastSummary.Store(t.Unix()) }

func (s *State) LastGeneration() time.Time { return unix(s.lastGeneration.Load()) }
func (s *State) LastMonitor() time.Time    { return unix(s.lastMonitor.Load()) }
func (s *State) LastSummary() time.Time    { return unix(s.lastSummary.Load()) }

func (s *State) Uptime() time.Duration { return time.Since(s.startedAt) }

func unix(u int64) time.Time {
	if u == 0 {
		return time.Time{}
	}
	return time.Unix(u, 0)
}
