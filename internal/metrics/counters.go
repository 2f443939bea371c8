package metrics

import "github.com/san-kum/splitflap/internal/flap"

// Ticks counts frames.
type Ticks struct {
	name  string
	count int
}

func NewTicks() *Ticks {
	return &Ticks{name: "ticks"}
}

func (t *Ticks) Name() string         { return t.name }
func (t *Ticks) Observe(f flap.Frame) { t.count++ }
func (t *Ticks) Value() float64       { return float64(t.count) }
func (t *Ticks) Reset()               { t.count = 0 }

// Flips totals the cell advances across all frames. Cells that only shift
// because the display width changed are not counted.
type Flips struct {
	name  string
	total int
}

func NewFlips() *Flips {
	return &Flips{name: "flips"}
}

func (f *Flips) Name() string { return f.name }

func (f *Flips) Observe(fr flap.Frame) {
	f.total += fr.Advanced
}

func (f *Flips) Value() float64 { return float64(f.total) }
func (f *Flips) Reset()         { f.total = 0 }

// MaxMoving is the peak number of cells flipping in a single frame.
type MaxMoving struct {
	name string
	peak int
}

func NewMaxMoving() *MaxMoving {
	return &MaxMoving{name: "max_moving"}
}

func (m *MaxMoving) Name() string {
	return m.name
}

func (m *MaxMoving) Observe(f flap.Frame) {
	m.peak = max(m.peak, f.Moving)
}

func (m *MaxMoving) Value() float64 {
	return float64(m.peak)
}

func (m *MaxMoving) Reset() {
	m.peak = 0
}
