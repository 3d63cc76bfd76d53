package resolver

import (
	"sync"

	"github.com/railtools/consistfix/internal/domain/types"
)

// Stats accumulates resolution counters across workers.
type Stats struct {
	mu sync.Mutex

	TotalProcessed int
	Resolved       int
	Changed        int
	Unresolved     int
	ByPhase        map[types.Phase]int
}

// NewStats builds an empty Stats.
func NewStats() *Stats {
	return &Stats{ByPhase: make(map[types.Phase]int)}
}

func (s *Stats) recordProcessed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TotalProcessed++
}

func (s *Stats) recordResolved(phase types.Phase, changed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Resolved++
	if changed {
		s.Changed++
	}
	s.ByPhase[phase]++
}

func (s *Stats) recordUnresolved() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Unresolved++
	s.ByPhase[types.PhaseUnresolved]++
}

// Snapshot returns a copy safe to read without holding the lock.
func (s *Stats) Snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	byPhase := make(map[types.Phase]int, len(s.ByPhase))
	for k, v := range s.ByPhase {
		byPhase[k] = v
	}
	return Stats{
		TotalProcessed: s.TotalProcessed,
		Resolved:       s.Resolved,
		Changed:        s.Changed,
		Unresolved:     s.Unresolved,
		ByPhase:        byPhase,
	}
}

// AlreadyMatching is the number of resolved entries that needed no change.
func (s *Stats) AlreadyMatching() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Resolved - s.Changed
}
