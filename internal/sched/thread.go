// internal/sched/thread.go

package sched

import (
	"runtime"

	"go.uber.org/zap"
)

// Status is the scheduling state of a thread.
type Status int

const (
	StatusBlocked Status = iota // waiting: sleeping, not yet forked, or just created
	StatusReady                 // on the ready queue, runnable but not running
	StatusRunning               // the one thread currently executing
	StatusFinished              // done, awaiting deferred destruction
)

func (s Status) String() string {
	switch s {
	case StatusBlocked:
		return "BLOCKED"
	case StatusReady:
		return "READY"
	case StatusRunning:
		return "RUNNING"
	case StatusFinished:
		return "FINISHED"
	default:
		return "Unknown"
	}
}

// AddrSpace is the surface the scheduler needs from the (out of scope)
// virtual-memory subsystem: save and restore of address-space state
// around a context switch. Both calls are opaque to the scheduler.
type AddrSpace interface {
	SaveState()
	RestoreState()
}

// ThreadFunc is the body a forked thread executes.
type ThreadFunc func()

const (
	stackWords     = 1024
	stackFencepost = uint32(0xdeadbeef) // sentinel at the stack bound

	numUserRegisters = 40
)

// Thread is one schedulable thread of control. The scheduler manipulates
// it by reference only; creation and the initial Fork belong to the owner.
//
// The machine-dependent execution context is a goroutine parked on the
// resume channel: handing the thread a token is the "restore registers"
// half of a context switch, and blocking on one's own channel is the
// "save registers" half.
type Thread struct {
	kernel *Kernel

	name      string
	status    Status
	burstTime int
	priority  int

	// resume carries exactly one token per dispatch. Buffered so the
	// switching thread can hand off and park without a rendezvous.
	resume chan struct{}

	// stack simulates this thread's kernel stack; index 0 holds the
	// fencepost word CheckOverflow verifies. nil for the bootstrap
	// thread (it runs on the host stack) and after destruction.
	stack []uint32

	// user-mode machine state, present only when an address space is
	// attached. The machine emulator itself is external to this kernel.
	space          AddrSpace
	userRegisters  [numUserRegisters]int64
	savedRegisters [numUserRegisters]int64

	destroyed bool
}

func newThread(name string, k *Kernel) *Thread {
	return &Thread{
		kernel: k,
		name:   name,
		status: StatusBlocked,
		resume: make(chan struct{}, 1),
	}
}

func (t *Thread) Name() string        { return t.name }
func (t *Thread) SetName(name string) { t.name = name }

func (t *Thread) Status() Status      { return t.status }
func (t *Thread) setStatus(st Status) { t.status = st }

func (t *Thread) BurstTime() int       { return t.burstTime }
func (t *Thread) SetBurstTime(bt int)  { t.burstTime = bt }
func (t *Thread) Priority() int        { return t.priority }
func (t *Thread) SetPriority(prio int) { t.priority = prio }

func (t *Thread) Space() AddrSpace         { return t.space }
func (t *Thread) SetSpace(space AddrSpace) { t.space = space }

// SaveUserState snapshots the thread's user-mode registers on the way out
// of the processor. Only meaningful while an address space is attached.
func (t *Thread) SaveUserState() {
	t.savedRegisters = t.userRegisters
}

// RestoreUserState reloads the register snapshot taken by SaveUserState.
func (t *Thread) RestoreUserState() {
	t.userRegisters = t.savedRegisters
}

// CheckOverflow verifies the fencepost at the bound of the thread's
// simulated stack. A clobbered fencepost means the thread overran its
// stack at some earlier point; that is fatal.
func (t *Thread) CheckOverflow() {
	if t.stack != nil {
		assertf(t.stack[0] == stackFencepost, "thread %q overflowed its stack", t.name)
	}
}

// Fork allocates the thread's stack, starts its execution context and
// places it on the ready queue. The body runs with interrupts enabled and
// the thread finishes when the body returns.
func (t *Thread) Fork(fn ThreadFunc) {
	t.stack = make([]uint32, stackWords)
	t.stack[0] = stackFencepost
	go t.begin(fn)

	oldLevel := t.kernel.interrupt.SetLevel(IntOff)
	t.kernel.scheduler.ReadyToRun(t)
	t.kernel.interrupt.SetLevel(oldLevel)
}

// begin is a new thread's entry point. The first dispatch arrives here
// instead of returning from a switch inside Run, so the deferred
// destruction slot must be drained here too before anything else runs.
func (t *Thread) begin(fn ThreadFunc) {
	<-t.resume

	t.kernel.scheduler.checkToBeDestroyed()
	t.kernel.interrupt.SetLevel(IntOn)

	fn()
	t.Finish()
}

// Yield voluntarily hands the processor to the ready-queue head, if any,
// and requeues the calling thread behind it (by policy order). Returns
// when the scheduler dispatches this thread again.
func (t *Thread) Yield() {
	oldLevel := t.kernel.interrupt.SetLevel(IntOff)
	assertf(t == t.kernel.CurrentThread(), "thread %q yielding while not running", t.name)
	t.kernel.log.Debug("yielding thread", zap.String("thread", t.name))

	next := t.kernel.scheduler.FindNextToRun()
	if next != nil {
		t.kernel.scheduler.ReadyToRun(t)
		t.kernel.scheduler.Run(next, false)
	}
	t.kernel.interrupt.SetLevel(oldLevel)
}

// SleepFor blocks the calling thread for at least the given number of
// ticks. The call does not return until the wake scan readies the thread
// and the scheduler dispatches it again.
func (t *Thread) SleepFor(ticks int64) {
	oldLevel := t.kernel.interrupt.SetLevel(IntOff)
	assertf(t == t.kernel.CurrentThread(), "thread %q sleeping while not running", t.name)

	t.kernel.scheduler.FallAsleep(t, ticks)
	t.sleep(false)
	t.kernel.interrupt.SetLevel(oldLevel)
}

// Finish terminates the calling thread. Its stack cannot be freed here,
// while we are still running on it, so the thread is parked in the
// deferred-destruction slot and freed after the next switch.
// Never returns.
func (t *Thread) Finish() {
	t.kernel.interrupt.SetLevel(IntOff)
	assertf(t == t.kernel.CurrentThread(), "thread %q finishing while not running", t.name)
	t.kernel.log.Debug("finishing thread", zap.String("thread", t.name))

	t.sleep(true)
}

// sleep relinquishes the processor because the calling thread blocked or
// finished. If nothing is ready the kernel idles, advancing simulated
// time so sleeping threads can become ready.
func (t *Thread) sleep(finishing bool) {
	assertf(t.kernel.interrupt.Level() == IntOff, "interrupts enabled in sleep")
	assertf(t == t.kernel.CurrentThread(), "thread %q blocking while not running", t.name)

	if finishing {
		t.setStatus(StatusFinished)
	} else {
		t.setStatus(StatusBlocked)
	}

	next := t.kernel.scheduler.FindNextToRun()
	for next == nil {
		t.kernel.interrupt.Idle()
		next = t.kernel.scheduler.FindNextToRun()
	}
	t.kernel.scheduler.Run(next, finishing)
}

// destroy releases the thread's resources. Reached only through the
// deferred-destruction slot, after another thread's stack is live.
func (t *Thread) destroy() {
	assertf(!t.destroyed, "thread %q destroyed twice", t.name)
	t.kernel.log.Debug("destroying thread", zap.String("thread", t.name))
	t.destroyed = true
	t.stack = nil
}

// switchTo transfers control from old to next. To old it looks like a
// blocking call that returns when some future switch resumes it; to next
// it is the resumption of the call it parked in (or, for a brand-new
// thread, its entry point). A finishing thread's goroutine ends here.
func switchTo(old, next *Thread, finishing bool) {
	next.resume <- struct{}{}
	if finishing {
		runtime.Goexit()
	}
	<-old.resume
}
