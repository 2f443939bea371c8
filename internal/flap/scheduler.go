package flap

import (
	"sort"
	"sync"
	"time"
)

// Scheduler arranges for f to run once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a handle to one scheduled callback. Stop reports whether the call
// stopped the timer before it fired.
type Timer interface {
	Stop() bool
}

// RealScheduler schedules on the wall clock. Callbacks run on their own
// goroutine.
type RealScheduler struct{}

func (RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ManualScheduler is a virtual clock. Nothing fires until the owner calls
// Advance or Fire, and callbacks run on the caller's goroutine.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	s    *ManualScheduler
	at   time.Duration
	seq  int
	f    func()
	done bool
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	t := &manualTimer{s: s, at: s.now + d, seq: s.seq, f: f}
	s.timers = append(s.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	t.s.remove(t)
	return true
}

func (s *ManualScheduler) remove(t *manualTimer) {
	for i, p := range s.timers {
		if p == t {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return
		}
	}
}

// Now returns the virtual time elapsed since construction.
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns the number of timers that have not fired or been stopped.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Advance moves the clock forward by d, firing due timers in deadline order.
// Timers scheduled by a callback fire in the same call if they fall due.
func (s *ManualScheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	fired := 0
	for {
		t := s.popDue(target)
		if t == nil {
			break
		}
		t.f()
		fired++
	}

	s.mu.Lock()
	if s.now < target {
		s.now = target
	}
	s.mu.Unlock()
	return fired
}

// Fire jumps the clock to the earliest pending deadline and runs that timer.
// It reports false when nothing is pending.
func (s *ManualScheduler) Fire() bool {
	s.mu.Lock()
	if len(s.timers) == 0 {
		s.mu.Unlock()
		return false
	}
	s.sortLocked()
	at := s.timers[0].at
	s.mu.Unlock()

	t := s.popDue(at)
	if t == nil {
		return false
	}
	t.f()
	return true
}

func (s *ManualScheduler) popDue(limit time.Duration) *manualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.timers) == 0 {
		return nil
	}
	s.sortLocked()
	t := s.timers[0]
	if t.at > limit {
		return nil
	}
	s.timers = s.timers[1:]
	t.done = true
	if t.at > s.now {
		s.now = t.at
	}
	return t
}

func (s *ManualScheduler) sortLocked() {
	sort.SliceStable(s.timers, func(i, j int) bool {
		if s.timers[i].at == s.timers[j].at {
			return s.timers[i].seq < s.timers[j].seq
		}
		return s.timers[i].at < s.timers[j].at
	})
}
