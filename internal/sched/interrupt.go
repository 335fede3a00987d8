// internal/sched/interrupt.go

package sched

import "go.uber.org/zap"

// IntLevel is the simulated interrupt-enable state of the processor.
type IntLevel int

const (
	IntOff IntLevel = iota
	IntOn
)

func (l IntLevel) String() string {
	if l == IntOff {
		return "off"
	}
	return "on"
}

// Interrupt models the interrupt controller of the single simulated
// processor. Disabling interrupts is the kernel's only mutual-exclusion
// mechanism: a blocking lock inside the scheduler would have to re-enter
// the scheduler to wait, so every scheduler entry point instead asserts
// IntOff as a precondition.
type Interrupt struct {
	kernel *Kernel
	level  IntLevel
}

// Level returns the current interrupt-enable state.
func (i *Interrupt) Level() IntLevel { return i.level }

// SetLevel changes the interrupt-enable state and returns the old one,
// so callers can restore whatever level they found.
func (i *Interrupt) SetLevel(level IntLevel) IntLevel {
	old := i.level
	i.level = level
	return old
}

// OneTick advances simulated time by one tick. The wake scan runs first;
// afterwards, if the ready-queue head outranks the running thread under
// the active policy, the running thread yields before OneTick returns.
func (i *Interrupt) OneTick() {
	oldLevel := i.SetLevel(IntOff)

	woken := i.kernel.scheduler.WakeUp()
	if woken {
		i.kernel.log.Debug("tick woke sleeping threads",
			zap.Int64("tick", i.kernel.clock.Now()))
	}
	if i.kernel.scheduler.NeedYield() {
		i.kernel.CurrentThread().Yield()
	}

	i.SetLevel(oldLevel)
}

// Idle advances time while no thread is ready. Only legal when something
// is asleep and will eventually wake; otherwise no thread can ever run
// again on this processor and the kernel is deadlocked.
func (i *Interrupt) Idle() {
	assertf(i.level == IntOff, "interrupts enabled in Idle")
	assertf(i.kernel.scheduler.hasSleepers(), "no thread ready and none sleeping: kernel deadlocked")

	i.kernel.scheduler.WakeUp()
}
