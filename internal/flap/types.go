package flap

import (
	"time"

	"github.com/san-kum/splitflap/internal/align"
	"github.com/san-kum/splitflap/internal/charset"
)

const (
	DefaultMinWidth = 5
	DefaultStep     = 200 * time.Millisecond
)

// Config is fixed for the life of an engine.
type Config struct {
	Charset      *charset.Set
	MinWidth     int
	PadDirection align.Direction
	Step         time.Duration
	// InitialValue is the first target. The display starts as fallback
	// symbols of the same length and rolls into it.
	InitialValue string
}

func DefaultConfig() Config {
	return Config{
		Charset:      charset.Default(),
		MinWidth:     DefaultMinWidth,
		PadDirection: align.Left,
		Step:         DefaultStep,
	}
}

func (c Config) Validate() error {
	if c.Charset == nil || c.Charset.Len() == 0 {
		return ErrNoCharset
	}
	if c.MinWidth < 0 {
		return ErrInvalidWidth
	}
	if c.Step <= 0 {
		return ErrInvalidStep
	}
	return nil
}

// Cell is one display position as handed to a renderer.
type Cell struct {
	Prev rune
	Curr rune
}

func (c Cell) Flipping() bool { return c.Prev != c.Curr }

// DisplayState holds the unaligned frames. Both only contain charset symbols.
type DisplayState struct {
	Previous string
	Current  string
}

// Frame is published to observers after every tick. Moving counts aligned
// cells whose glyph changed, which includes cells shifted by a width change.
// Advanced counts only the cells the tick stepped forward.
type Frame struct {
	Tick      int
	Previous  string
	Current   string
	Goal      string
	Cells     []Cell
	Moving    int
	Advanced  int
	Converged bool
}

type Observer interface {
	OnFrame(f Frame)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Frame)

func (f ObserverFunc) OnFrame(fr Frame) { f(fr) }

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Result struct {
	Frames    []Frame
	Times     []time.Duration
	Ticks     int
	Converged bool
	Metrics   map[string]float64
}
