// Package flap implements the split-flap transition engine.
//
// An [Engine] holds the frame shown now and the frame shown one tick ago.
// Each tick advances every cell one position through its character set until
// the cell lands on the target symbol:
//
//   - [Engine.SetTarget]: start rolling toward a new value (preempts any roll in flight)
//   - [Engine.CurrentFrame]: aligned (previous, current) pairs for a renderer
//   - [Engine.Destroy]: cancel the pending tick and retire the engine
//   - [Run]: drive an engine headlessly on a virtual clock until it settles
//
// # Example
//
//	eng, _ := flap.New(flap.DefaultConfig())
//	defer eng.Destroy()
//	eng.SetTarget("1234")
//
// # Scheduling
//
// Ticks are scheduled through a [Scheduler]. At most one timer is pending per
// engine; the handle is owned by the engine and a callback whose handle is no
// longer current does nothing. [RealScheduler] uses wall-clock timers,
// [ManualScheduler] a virtual clock advanced by the caller.
package flap
