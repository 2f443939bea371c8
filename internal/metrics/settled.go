package metrics

import "github.com/san-kum/splitflap/internal/flap"

// Settled is the fraction of cells already showing their goal symbol in the
// most recent frame. It reads 1 before any frame is seen.
type Settled struct {
	name    string
	arrived int
	cells   int
}

func NewSettled() *Settled {
	return &Settled{name: "settled"}
}

func (s *Settled) Name() string {
	return s.name
}

func (s *Settled) Observe(f flap.Frame) {
	curr, goal := []rune(f.Current), []rune(f.Goal)
	s.cells = len(goal)
	s.arrived = 0
	for i, want := range goal {
		if i < len(curr) && curr[i] == want {
			s.arrived++
		}
	}
}

func (s *Settled) Value() float64 {
	if s.cells == 0 {
		return 1.0
	}
	return float64(s.arrived) / float64(s.cells)
}

func (s *Settled) Reset() {
	s.arrived = 0
	s.cells = 0
}

// Standard returns the metrics recorded with every headless run.
func Standard() []flap.Metric {
	return []flap.Metric{NewTicks(), NewFlips(), NewMaxMoving(), NewSettled()}
}
