package flap

import (
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/san-kum/splitflap/internal/align"
	"github.com/san-kum/splitflap/internal/charset"
)

// Engine rolls a row of cells toward a target value, one charset position per
// cell per tick. It is safe for concurrent use.
type Engine struct {
	mu        sync.Mutex
	cfg       Config
	sched     Scheduler
	logger    *slog.Logger
	observers []Observer
	metrics   []Metric

	prev, curr []rune
	goal       []rune
	hasGoal    bool
	pending    *tick
	ticks      int
	destroyed  bool
	display    *string
}

// tick is the engine-owned handle for the single scheduled advancement.
type tick struct {
	goal  []rune
	timer Timer
}

type Option func(*Engine)

func WithScheduler(s Scheduler) Option {
	return func(e *Engine) {
		e.sched = s
	}
}

// WithLogger sets the structured logger. Ticks are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithObserver registers o for every frame. Observers run with the engine
// locked and must not call back into it.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observers = append(e.observers, o)
	}
}

// WithDisplay starts the board settled on value instead of blank.
func WithDisplay(value string) Option {
	return func(e *Engine) {
		e.display = &value
	}
}

func WithMetric(m Metric) Option {
	return func(e *Engine) {
		e.metrics = append(e.metrics, m)
	}
}

func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	if e.sched == nil {
		e.sched = RealScheduler{}
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	for _, m := range e.metrics {
		m.Reset()
	}

	if e.display != nil {
		shown := []rune(charset.Sanitize(*e.display, cfg.Charset))
		e.curr = shown
		e.prev = slices.Clone(shown)
		e.goal = slices.Clone(shown)
		e.hasGoal = true
	} else {
		initial := charset.Sanitize(cfg.InitialValue, cfg.Charset)
		e.curr = []rune(charset.Blank(cfg.Charset, len([]rune(initial))))
		e.prev = slices.Clone(e.curr)
	}

	if cfg.InitialValue != "" {
		e.SetTarget(cfg.InitialValue)
	}
	return e, nil
}

// SetTarget starts rolling toward value. Characters outside the charset are
// replaced by the fallback symbol. Setting the goal already in flight is a
// no-op; any other target cancels the pending tick and advances once
// immediately.
func (e *Engine) SetTarget(value string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.destroyed {
		return
	}
	goal := []rune(charset.Sanitize(value, e.cfg.Charset))
	if e.pending != nil && e.hasGoal && slices.Equal(e.goal, goal) {
		return
	}

	e.logger.Debug("set target", "goal", string(goal), "current", string(e.curr))
	e.cancelLocked()
	e.stepLocked(goal)
}

// Teardown cancels the pending tick, leaving the display where it is.
func (e *Engine) Teardown() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelLocked()
}

// Destroy tears the engine down for good. Later SetTarget calls and any
// callback that was already racing to fire are ignored.
func (e *Engine) Destroy() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelLocked()
	if !e.destroyed {
		e.destroyed = true
		e.logger.Debug("engine destroyed", "ticks", e.ticks)
	}
}

func (e *Engine) cancelLocked() {
	if e.pending == nil {
		return
	}
	e.pending.timer.Stop()
	e.pending = nil
}

func (e *Engine) fire(t *tick) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.destroyed || e.pending != t {
		return
	}
	e.pending = nil
	e.stepLocked(t.goal)
}

func (e *Engine) stepLocked(goal []rune) {
	if e.pending != nil {
		return
	}
	if e.hasGoal && slices.Equal(e.goal, goal) && slices.Equal(e.curr, goal) {
		return
	}

	e.prev = e.curr
	next, advanced := advance(e.curr, goal, e.cfg.Charset)
	e.curr = next
	e.goal = goal
	e.hasGoal = true
	e.ticks++

	converged := slices.Equal(e.curr, goal)
	if !converged {
		t := &tick{goal: goal}
		t.timer = e.sched.AfterFunc(e.cfg.Step, func() { e.fire(t) })
		e.pending = t
	}

	f := e.frameLocked(converged)
	f.Advanced = advanced
	e.logger.Debug("tick", "tick", f.Tick, "current", f.Current, "advanced", advanced, "moving", f.Moving, "converged", converged)
	for _, m := range e.metrics {
		m.Observe(f)
	}
	for _, o := range e.observers {
		o.OnFrame(f)
	}
}

// advance computes the next frame. Each cell either holds (arrived, or stuck
// on the fallback with a goal the charset cannot show) or moves one symbol
// forward, wrapping at the end of the set. Positions missing from curr start
// from the fallback. The second result counts the cells that moved.
func advance(curr, goal []rune, set *charset.Set) ([]rune, int) {
	next := make([]rune, len(goal))
	advanced := 0
	for i, want := range goal {
		cur := set.Fallback()
		if i < len(curr) {
			cur = curr[i]
		}
		idx := set.Index(cur)
		switch {
		case cur == want:
			next[i] = cur
		case idx == 0 && !set.Contains(want):
			next[i] = cur
		default:
			next[i] = set.At(idx + 1)
		}
		if next[i] != cur {
			advanced++
		}
	}
	return next, advanced
}

func (e *Engine) frameLocked(converged bool) Frame {
	cells := e.cellsLocked()
	moving := 0
	for _, c := range cells {
		if c.Flipping() {
			moving++
		}
	}
	return Frame{
		Tick:      e.ticks,
		Previous:  string(e.prev),
		Current:   string(e.curr),
		Goal:      string(e.goal),
		Cells:     cells,
		Moving:    moving,
		Converged: converged,
	}
}

func (e *Engine) cellsLocked() []Cell {
	prev, curr := align.Pair(string(e.prev), string(e.curr), e.cfg.Charset, e.cfg.MinWidth, e.cfg.PadDirection)
	cells := make([]Cell, len(curr))
	for i := range curr {
		cells[i] = Cell{Prev: prev[i], Curr: curr[i]}
	}
	return cells
}

// CurrentFrame returns the aligned (previous, current) pair for every cell.
func (e *Engine) CurrentFrame() []Cell {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cellsLocked()
}

func (e *Engine) State() DisplayState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return DisplayState{Previous: string(e.prev), Current: string(e.curr)}
}

// Goal returns the sanitized goal of the latest transition.
func (e *Engine) Goal() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return string(e.goal)
}

// Idle reports whether no tick is pending.
func (e *Engine) Idle() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending == nil
}

func (e *Engine) Ticks() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ticks
}

func (e *Engine) Config() Config { return e.cfg }
