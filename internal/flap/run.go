package flap

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"
)

// Run rolls the display from cfg.InitialValue (shown settled) to target on a
// virtual clock and returns every frame. It fails with ErrNoConvergence if the
// engine is still ticking after one full charset cycle per cell.
func Run(ctx context.Context, cfg Config, target string, opts ...Option) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sched := NewManualScheduler()
	result := &Result{
		Frames:  make([]Frame, 0),
		Times:   make([]time.Duration, 0),
		Metrics: make(map[string]float64),
	}
	recorder := ObserverFunc(func(f Frame) {
		result.Frames = append(result.Frames, f)
		result.Times = append(result.Times, sched.Now())
	})

	initial := cfg.InitialValue
	cfg.InitialValue = ""
	opts = append(opts, WithScheduler(sched), WithObserver(recorder), WithDisplay(initial))
	eng, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	defer eng.Destroy()

	limit := utf8.RuneCountInString(target)*cfg.Charset.Len() + 1

	eng.SetTarget(target)
	for !eng.Idle() {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}
		if eng.Ticks() >= limit {
			result.Ticks = eng.Ticks()
			return result, fmt.Errorf("%w after %d ticks", ErrNoConvergence, result.Ticks)
		}
		sched.Advance(cfg.Step)
	}

	result.Ticks = eng.Ticks()
	state := eng.State()
	result.Converged = state.Current == eng.Goal()
	for _, m := range eng.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}
