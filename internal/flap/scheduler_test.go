package flap

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ManualScheduler", func() {
	var (
		sched *ManualScheduler
		calls []string
	)

	BeforeEach(func() {
		sched = NewManualScheduler()
		calls = nil
	})

	record := func(name string) func() {
		return func() { calls = append(calls, name) }
	}

	It("should fire due timers in deadline order", func() {
		sched.AfterFunc(30*time.Millisecond, record("c"))
		sched.AfterFunc(10*time.Millisecond, record("a"))
		sched.AfterFunc(20*time.Millisecond, record("b"))

		Expect(sched.Advance(25 * time.Millisecond)).To(Equal(2))
		Expect(calls).To(Equal([]string{"a", "b"}))
		Expect(sched.Now()).To(Equal(25 * time.Millisecond))
		Expect(sched.Pending()).To(Equal(1))
	})

	It("should not fire a stopped timer", func() {
		t := sched.AfterFunc(time.Millisecond, record("x"))
		Expect(t.Stop()).To(BeTrue())
		Expect(t.Stop()).To(BeFalse())

		sched.Advance(time.Second)
		Expect(calls).To(BeEmpty())
	})

	It("should report a fired timer as not stoppable", func() {
		t := sched.AfterFunc(time.Millisecond, record("x"))
		Expect(sched.Fire()).To(BeTrue())
		Expect(t.Stop()).To(BeFalse())
		Expect(sched.Fire()).To(BeFalse())
	})

	It("should run timers scheduled by a callback when they fall due", func() {
		sched.AfterFunc(time.Millisecond, func() {
			calls = append(calls, "first")
			sched.AfterFunc(time.Millisecond, record("second"))
		})

		sched.Advance(5 * time.Millisecond)
		Expect(calls).To(Equal([]string{"first", "second"}))
	})

	It("should jump the clock to the next deadline on Fire", func() {
		sched.AfterFunc(40*time.Millisecond, record("x"))
		sched.Fire()
		Expect(sched.Now()).To(Equal(40 * time.Millisecond))
	})
})
