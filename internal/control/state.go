// Package control holds the runtime state shared between the collection
// loop and the administrative command surface.
package control

import (
	"sync"
	"sync/atomic"

	"github.com/amishk599/remotefeed/internal/model"
)

// Phase is what the collection loop is currently doing.
type Phase int32

const (
	PhaseIdle Phase = iota
	PhaseFetching
	PhaseClassifying
	PhasePublishing
	PhaseWaiting
	PhasePaused
)

func (p Phase) String() string {
	switch p {
	case PhaseFetching:
		return "fetching"
	case PhaseClassifying:
		return "classifying"
	case PhasePublishing:
		return "publishing"
	case PhaseWaiting:
		return "waiting"
	case PhasePaused:
		return "paused"
	default:
		return "idle"
	}
}

// State is safe for concurrent use. The zero value is ready: not paused, idle.
type State struct {
	paused atomic.Bool
	phase  atomic.Int32

	mu        sync.Mutex
	last      model.CycleStats
	haveLast  bool
	cycles    int
	published int
}

func NewState() *State { return &State{} }

// Pause stops new cycles from starting. A running cycle finishes.
func (s *State) Pause() { s.paused.Store(true) }

// Resume lets cycles start again.
func (s *State) Resume() { s.paused.Store(false) }

func (s *State) Paused() bool { return s.paused.Load() }

func (s *State) SetPhase(p Phase) { s.phase.Store(int32(p)) }

func (s *State) Phase() Phase { return Phase(s.phase.Load()) }

// RecordCycle stores the stats of a finished cycle.
func (s *State) RecordCycle(stats model.CycleStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = stats
	s.haveLast = true
	s.cycles++
	s.published += stats.Published
}

// LastCycle returns the most recent cycle stats and whether any cycle has finished.
func (s *State) LastCycle() (model.CycleStats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.haveLast
}

// Totals returns the number of finished cycles and jobs published since start.
func (s *State) Totals() (cycles, published int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cycles, s.published
}
