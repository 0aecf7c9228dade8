package system

import (
	"errors"
	"fmt"
	"sort"
)

// ErrPassActive is returned when a pass is requested while one is running.
var ErrPassActive = errors.New("pipeline pass already active")

// Runner executes systems in phase order, one full pass per call to Run.
type Runner struct {
	systems []System
	sorted  bool
	active  bool
	passes  int
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 12),
	}
}

func (r *Runner) Register(s ...System) {
	r.systems = append(r.systems, s...)
	r.sorted = false
}

// Run executes every registered system once. Systems sharing a phase keep
// registration order. The first error aborts the pass and is returned.
func (r *Runner) Run() error {
	if r.active {
		return ErrPassActive
	}
	r.active = true
	defer func() { r.active = false }()

	r.ensureSorted()
	r.passes++
	for _, s := range r.systems {
		if err := s.Update(); err != nil {
			return fmt.Errorf("%s: %w", s.Phase(), err)
		}
	}
	return nil
}

// RunPhase executes only the systems of one phase.
func (r *Runner) RunPhase(phase Phase) error {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() != phase {
			continue
		}
		if err := s.Update(); err != nil {
			return fmt.Errorf("%s: %w", phase, err)
		}
	}
	return nil
}

// Active reports whether a pass is in progress.
func (r *Runner) Active() bool { return r.active }

// Passes returns the number of full passes run so far.
func (r *Runner) Passes() int { return r.passes }

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
