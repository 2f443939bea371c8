package flap

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/splitflap/internal/align"
	"github.com/san-kum/splitflap/internal/charset"
)

// captureScheduler hands out timers that never fire on their own so a test
// can invoke a callback after it was cancelled.
type captureScheduler struct {
	callbacks []func()
	timers    []*captureTimer
}

type captureTimer struct{ stopped bool }

func (t *captureTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (s *captureScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &captureTimer{}
	s.callbacks = append(s.callbacks, f)
	s.timers = append(s.timers, t)
	return t
}

func render(cells []Cell) (string, string) {
	prev := make([]rune, len(cells))
	curr := make([]rune, len(cells))
	for i, c := range cells {
		prev[i], curr[i] = c.Prev, c.Curr
	}
	return string(prev), string(curr)
}

func settle(sched *ManualScheduler, eng *Engine) {
	for i := 0; i < 1000 && !eng.Idle(); i++ {
		sched.Fire()
	}
}

var _ = Describe("Engine", func() {
	var (
		sched  *ManualScheduler
		frames []Frame
		cfg    Config
		eng    *Engine
	)

	newEngine := func() *Engine {
		e, err := New(cfg,
			WithScheduler(sched),
			WithObserver(ObserverFunc(func(f Frame) { frames = append(frames, f) })),
		)
		Expect(err).NotTo(HaveOccurred())
		return e
	}

	BeforeEach(func() {
		sched = NewManualScheduler()
		frames = nil
		eng = nil
		cfg = DefaultConfig()
		cfg.Step = time.Millisecond
	})

	AfterEach(func() {
		if eng != nil {
			eng.Destroy()
		}
	})

	Context("with the numeric charset", func() {
		BeforeEach(func() {
			eng = newEngine()
		})

		It("should start blank and aligned", func() {
			prev, curr := render(eng.CurrentFrame())
			Expect(prev).To(Equal("00000"))
			Expect(curr).To(Equal("00000"))
			Expect(eng.Idle()).To(BeTrue())
		})

		It("should roll the last cell to its target one step per tick", func() {
			eng.SetTarget("7")
			Expect(eng.Ticks()).To(Equal(1))
			Expect(sched.Pending()).To(Equal(1))

			settle(sched, eng)

			Expect(frames).To(HaveLen(7))
			for i, f := range frames {
				_, curr := render(f.Cells)
				Expect(curr[:4]).To(Equal("0000"))
				Expect(rune(curr[4])).To(Equal(rune('1' + i)))
			}
			Expect(frames[6].Converged).To(BeTrue())

			prev, curr := render(eng.CurrentFrame())
			Expect(prev).To(Equal("00006"))
			Expect(curr).To(Equal("00007"))
			Expect(eng.State()).To(Equal(DisplayState{Previous: "6", Current: "7"}))
			Expect(sched.Pending()).To(Equal(0))
		})

		It("should not restart an identical transition in flight", func() {
			eng.SetTarget("42")
			Expect(eng.Ticks()).To(Equal(1))

			eng.SetTarget("42")

			Expect(eng.Ticks()).To(Equal(1))
			Expect(sched.Pending()).To(Equal(1))
		})

		It("should treat targets with the same sanitized goal as identical", func() {
			eng.SetTarget("5a")
			Expect(eng.Goal()).To(Equal("50"))

			eng.SetTarget("5b")
			Expect(eng.Ticks()).To(Equal(1))
			Expect(sched.Pending()).To(Equal(1))
		})

		It("should preempt the pending tick for a new goal", func() {
			eng.SetTarget("9")
			sched.Fire()
			Expect(eng.State().Current).To(Equal("2"))

			eng.SetTarget("3")
			Expect(eng.Ticks()).To(Equal(3))
			Expect(eng.State().Current).To(Equal("3"))
			Expect(eng.Idle()).To(BeTrue())
			Expect(sched.Pending()).To(Equal(0))
		})

		It("should keep exactly one timer across many target changes", func() {
			for _, v := range []string{"1", "99", "12345", "99", "5"} {
				eng.SetTarget(v)
				Expect(sched.Pending()).To(BeNumerically("<=", 1))
			}
			settle(sched, eng)
			Expect(eng.State().Current).To(Equal("5"))
		})

		It("should ignore a repeated target once converged", func() {
			eng.SetTarget("2")
			settle(sched, eng)
			ticks := eng.Ticks()

			eng.SetTarget("2")
			Expect(eng.Ticks()).To(Equal(ticks))
			Expect(eng.Idle()).To(BeTrue())
		})

		It("should wrap from the last symbol to the first", func() {
			eng.SetTarget("9")
			settle(sched, eng)
			eng.SetTarget("1")
			Expect(eng.State().Current).To(Equal("0"))
			settle(sched, eng)
			Expect(eng.State().Current).To(Equal("1"))
		})

		It("should grow and shrink with the target", func() {
			eng.SetTarget("123456")
			settle(sched, eng)
			_, curr := render(eng.CurrentFrame())
			Expect(curr).To(Equal("123456"))

			eng.SetTarget("12")
			_, curr = render(eng.CurrentFrame())
			Expect(curr).To(Equal("000012"))
			Expect(eng.State().Current).To(Equal("12"))

			last := frames[len(frames)-1]
			Expect(last.Moving).To(Equal(6))
			Expect(last.Advanced).To(BeZero())
		})

		It("should converge an empty target without visible change", func() {
			eng.SetTarget("")
			Expect(eng.Idle()).To(BeTrue())
			prev, curr := render(eng.CurrentFrame())
			Expect(prev).To(Equal("00000"))
			Expect(curr).To(Equal("00000"))
		})

		It("should report cells in motion", func() {
			eng.SetTarget("11")
			Expect(frames).To(HaveLen(1))
			Expect(frames[0].Moving).To(Equal(2))
			Expect(frames[0].Advanced).To(Equal(2))
			Expect(frames[0].Goal).To(Equal("11"))
			Expect(frames[0].Converged).To(BeTrue())
		})
	})

	Context("with the alpha charset", func() {
		BeforeEach(func() {
			cfg.Charset = charset.MustFromString(charset.Alpha)
			cfg.MinWidth = 0
			eng = newEngine()
		})

		It("should sanitize the goal and leave the fallback cell still", func() {
			eng.SetTarget("HI!")
			Expect(eng.Goal()).To(Equal("HIA"))

			settle(sched, eng)

			for _, f := range frames {
				Expect([]rune(f.Current)[2]).To(Equal('A'))
			}
			Expect(eng.State().Current).To(Equal("HIA"))
			Expect(frames).To(HaveLen(8))
			Expect(eng.Idle()).To(BeTrue())
		})
	})

	Context("with right padding", func() {
		BeforeEach(func() {
			cfg.PadDirection = align.Right
			cfg.MinWidth = 4
			eng = newEngine()
		})

		It("should pad after the value", func() {
			eng.SetTarget("1")
			_, curr := render(eng.CurrentFrame())
			Expect(curr).To(Equal("1000"))
		})
	})

	Context("with an initial value", func() {
		BeforeEach(func() {
			cfg.InitialValue = "12"
			eng = newEngine()
		})

		It("should roll in from blank on construction", func() {
			Expect(eng.Ticks()).To(Equal(1))
			Expect(eng.State()).To(Equal(DisplayState{Previous: "00", Current: "11"}))
			settle(sched, eng)
			Expect(eng.State().Current).To(Equal("12"))
		})
	})

	Context("with a settled display", func() {
		It("should start on the shown value without ticking", func() {
			e, err := New(cfg, WithScheduler(sched), WithDisplay("4a"))
			Expect(err).NotTo(HaveOccurred())
			eng = e

			Expect(eng.Ticks()).To(Equal(0))
			Expect(eng.State()).To(Equal(DisplayState{Previous: "40", Current: "40"}))

			eng.SetTarget("40")
			Expect(eng.Ticks()).To(Equal(0))

			eng.SetTarget("41")
			Expect(eng.Ticks()).To(Equal(1))
			Expect(eng.Idle()).To(BeTrue())
		})
	})

	Context("teardown", func() {
		var capture *captureScheduler

		BeforeEach(func() {
			capture = &captureScheduler{}
			var err error
			eng, err = New(cfg, WithScheduler(capture))
			Expect(err).NotTo(HaveOccurred())
		})

		It("should make a cancelled callback a no-op after destroy", func() {
			eng.SetTarget("5")
			Expect(capture.callbacks).To(HaveLen(1))
			before := eng.State()

			eng.Destroy()
			Expect(capture.timers[0].stopped).To(BeTrue())
			Expect(eng.Idle()).To(BeTrue())

			capture.callbacks[0]()
			Expect(eng.State()).To(Equal(before))
			Expect(eng.Ticks()).To(Equal(1))
			Expect(capture.callbacks).To(HaveLen(1))
		})

		It("should ignore targets after destroy", func() {
			eng.Destroy()
			eng.SetTarget("5")
			Expect(eng.Ticks()).To(Equal(0))
			Expect(capture.callbacks).To(BeEmpty())
		})

		It("should ignore a superseded callback", func() {
			eng.SetTarget("5")
			eng.SetTarget("8")
			Expect(capture.timers[0].stopped).To(BeTrue())

			capture.callbacks[0]()
			Expect(eng.Ticks()).To(Equal(2))
			Expect(capture.callbacks).To(HaveLen(2))
		})

		It("should resume after a plain teardown", func() {
			eng.SetTarget("3")
			eng.Teardown()
			Expect(eng.Idle()).To(BeTrue())

			eng.SetTarget("3")
			Expect(eng.Ticks()).To(Equal(2))
			Expect(eng.Idle()).To(BeFalse())
		})
	})

	Context("on the wall clock", func() {
		It("should settle with real timers", func() {
			e, err := New(cfg)
			Expect(err).NotTo(HaveOccurred())
			eng = e

			eng.SetTarget("34")
			Eventually(eng.Idle).WithTimeout(time.Second).Should(BeTrue())
			Expect(eng.State().Current).To(Equal("34"))
		})
	})
})

var _ = Describe("advance", func() {
	num := charset.MustFromString(charset.Numeric)
	alpha := charset.MustFromString(charset.Alpha)

	next := func(curr, goal string, set *charset.Set) (string, int) {
		n, advanced := advance([]rune(curr), []rune(goal), set)
		return string(n), advanced
	}

	It("should hold arrived cells", func() {
		got, advanced := next("123", "153", num)
		Expect(got).To(Equal("133"))
		Expect(advanced).To(Equal(1))
	})

	It("should start missing cells from the fallback", func() {
		got, advanced := next("", "05", num)
		Expect(got).To(Equal("01"))
		Expect(advanced).To(Equal(1))
	})

	It("should not count cells dropped by a shorter goal", func() {
		got, advanced := next("123456", "12", num)
		Expect(got).To(Equal("12"))
		Expect(advanced).To(BeZero())
	})

	It("should keep a fallback cell whose goal is not representable", func() {
		got, advanced := next("A", "!", alpha)
		Expect(got).To(Equal("A"))
		Expect(advanced).To(BeZero())
	})

	It("should keep cycling a non-fallback cell toward an unrepresentable goal", func() {
		got, advanced := next("Z", "!", alpha)
		Expect(got).To(Equal("A"))
		Expect(advanced).To(Equal(1))
	})

	It("should converge within one charset cycle per cell", func() {
		sets := []*charset.Set{num, alpha, charset.MustFromString(charset.Departures)}
		for _, set := range sets {
			symbols := set.Symbols()
			for _, from := range symbols {
				for _, to := range symbols {
					curr := []rune{from}
					goal := []rune{to}
					ticks := 0
					for string(curr) != string(goal) {
						curr, _ = advance(curr, goal, set)
						ticks++
						Expect(ticks).To(BeNumerically("<", set.Len()))
					}
				}
			}
		}
	})
})

var _ = Describe("Config", func() {
	It("should reject structurally invalid configuration", func() {
		cfg := DefaultConfig()
		cfg.Charset = nil
		_, err := New(cfg)
		Expect(err).To(MatchError(ErrNoCharset))

		cfg = DefaultConfig()
		cfg.MinWidth = -1
		Expect(cfg.Validate()).To(MatchError(ErrInvalidWidth))

		cfg = DefaultConfig()
		cfg.Step = 0
		Expect(cfg.Validate()).To(MatchError(ErrInvalidStep))
	})

	It("should default to five numeric cells every 200ms", func() {
		cfg := DefaultConfig()
		Expect(cfg.MinWidth).To(Equal(5))
		Expect(cfg.Step).To(Equal(200 * time.Millisecond))
		Expect(cfg.Charset.Fallback()).To(Equal('0'))
		Expect(cfg.PadDirection).To(Equal(align.Left))
	})
})
