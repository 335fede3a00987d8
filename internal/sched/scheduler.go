// internal/sched/scheduler.go
//
// Routines to choose the next thread to run and to dispatch to it.
// Every operation here assumes interrupts are already disabled: on a
// single processor that alone gives mutual exclusion, and a lock would
// be circular (waiting for it means re-entering the scheduler).

package sched

import (
	"fmt"

	"github.com/emirpasic/gods/trees/redblacktree"
	"go.uber.org/zap"
)

// Scheduler owns the ready queue, the sleep set and the single
// deferred-destruction slot. The ready queue is a red-black tree keyed by
// (policy order, insertion sequence); the sequence number makes the
// ordering stable, so equal policy keys dispatch in FIFO order and FCFS
// degenerates to pure arrival order.
type Scheduler struct {
	kernel *Kernel
	log    *zap.Logger
	tracer *Tracer
	clock  *Clock

	policy Policy
	cmp    Comparator // nil for FCFS

	ready *redblacktree.Tree
	seq   uint64 // insertion counter, tie-break within a policy tier

	sleeping []sleepEntry

	// toBeDestroyed holds at most one finished thread whose stack may
	// still be in use; it is drained at the next successful switch.
	toBeDestroyed *Thread
}

// readyKey orders the ready queue. The policy half of the comparison
// reads the thread's live ranking fields, so a thread's burst time and
// priority must not change while it sits on the ready queue.
type readyKey struct {
	thread *Thread
	seq    uint64
}

func newScheduler(policy Policy, k *Kernel) *Scheduler {
	s := &Scheduler{
		kernel: k,
		log:    k.log,
		tracer: k.tracer,
		clock:  k.clock,
		policy: policy,
		cmp:    policy.comparator(),
	}
	s.ready = redblacktree.NewWith(s.compareKeys)
	return s
}

func (s *Scheduler) compareKeys(a, b any) int {
	ka, kb := a.(readyKey), b.(readyKey)
	if s.cmp != nil {
		if c := s.cmp(ka.thread, kb.thread); c != 0 {
			return c
		}
	}
	switch {
	case ka.seq < kb.seq:
		return -1
	case ka.seq > kb.seq:
		return 1
	default:
		return 0
	}
}

// Policy returns the active scheduling discipline.
func (s *Scheduler) Policy() Policy { return s.policy }

// ReadyToRun marks a thread ready and inserts it into the ready queue at
// the position the active policy dictates.
func (s *Scheduler) ReadyToRun(t *Thread) {
	assertf(s.kernel.interrupt.Level() == IntOff, "interrupts enabled in ReadyToRun")
	s.log.Debug("putting thread on ready list", zap.String("thread", t.Name()))

	t.setStatus(StatusReady)
	s.seq++
	s.ready.Put(readyKey{thread: t, seq: s.seq}, t)
	s.tracer.Record(Event{Tick: s.clock.Now(), Kind: EventEnqueue, Thread: t.Name()})
}

// FindNextToRun removes and returns the front of the ready queue, or nil
// if no thread is ready. This is a consuming pop; use getFront to peek.
func (s *Scheduler) FindNextToRun() *Thread {
	assertf(s.kernel.interrupt.Level() == IntOff, "interrupts enabled in FindNextToRun")

	node := s.ready.Left()
	if node == nil {
		return nil
	}
	s.ready.Remove(node.Key)
	return node.Value.(*Thread)
}

// getFront peeks at the ready-queue head without removing it.
func (s *Scheduler) getFront() *Thread {
	node := s.ready.Left()
	if node == nil {
		return nil
	}
	return node.Value.(*Thread)
}

// HasReady reports whether any thread is waiting on the ready queue.
func (s *Scheduler) HasReady() bool { return s.ready.Size() > 0 }

func (s *Scheduler) hasSleepers() bool { return len(s.sleeping) > 0 }

// NeedYield reports whether the ready-queue head should displace the
// running thread under the active policy. FCFS never preempts. This is a
// decision hook only; the caller performs the actual yield.
func (s *Scheduler) NeedYield() bool {
	assertf(s.kernel.interrupt.Level() == IntOff, "interrupts enabled in NeedYield")

	now := s.kernel.CurrentThread()
	next := s.getFront()
	if next == nil {
		return false
	}
	switch s.policy {
	case FCFS:
		return false
	case SJF:
		return SJFCompare(now, next) > 0
	case Priority:
		return PriorityCompare(now, next) > 0
	default:
		assertf(false, "unknown scheduling policy %d in NeedYield", int(s.policy))
		return false
	}
}

// sleepEntry pairs a sleeping thread with the tick it becomes due.
// The wake tick is fixed at insertion.
type sleepEntry struct {
	thread   *Thread
	wakeTick int64
}

// FallAsleep records the thread in the sleep set, due at current+delay,
// and takes it out of circulation. The thread's own blocking entry point
// (Thread.SleepFor) does not return until the wake scan readies it.
func (s *Scheduler) FallAsleep(t *Thread, delay int64) {
	assertf(s.kernel.interrupt.Level() == IntOff, "interrupts enabled in FallAsleep")

	wakeTick := s.clock.Now() + delay
	s.log.Debug("thread falling asleep",
		zap.String("thread", t.Name()),
		zap.Int64("wake_tick", wakeTick))

	t.setStatus(StatusBlocked)
	s.sleeping = append(s.sleeping, sleepEntry{thread: t, wakeTick: wakeTick})
	s.tracer.Record(Event{Tick: s.clock.Now(), Kind: EventSleep, Thread: t.Name()})
}

// WakeUp advances the tick counter, then readies every sleeping thread
// whose wake tick is strictly less than the new count. Because the
// increment happens before the comparison, a sleep of n ticks becomes
// eligible on the (n+1)-th notification; downstream behavior depends on
// that, so it is deliberate. Returns whether anything woke, a signal for
// the caller to reconsider preemption via NeedYield.
func (s *Scheduler) WakeUp() bool {
	assertf(s.kernel.interrupt.Level() == IntOff, "interrupts enabled in WakeUp")

	now := s.clock.Advance()
	s.tracer.Record(Event{Tick: now, Kind: EventTick})

	woken := false
	for i := 0; i < len(s.sleeping); {
		e := s.sleeping[i]
		if e.wakeTick < now {
			woken = true
			s.tracer.Record(Event{Tick: now, Kind: EventWake, Thread: e.thread.Name()})
			s.ReadyToRun(e.thread)
			s.sleeping = append(s.sleeping[:i], s.sleeping[i+1:]...)
		} else {
			i++
		}
	}
	return woken
}

// Run dispatches the processor to nextThread. The caller must have
// already moved the previous running thread's status away from RUNNING
// (to READY, BLOCKED or, via finishing, FINISHED).
//
// If finishing is set, the outgoing thread is parked in the
// deferred-destruction slot instead of being freed: its stack is still
// the one we are running on, and it can only be released after another
// thread's stack is live. The slot is drained the next time any thread
// returns from a switch.
func (s *Scheduler) Run(nextThread *Thread, finishing bool) {
	oldThread := s.kernel.CurrentThread()
	assertf(s.kernel.interrupt.Level() == IntOff, "interrupts enabled in Run")

	if finishing {
		if s.toBeDestroyed != nil {
			assertf(false, "thread %q finishing while %q still awaits destruction",
				oldThread.Name(), s.toBeDestroyed.Name())
		}
		s.toBeDestroyed = oldThread
		s.tracer.Record(Event{Tick: s.clock.Now(), Kind: EventFinish, Thread: oldThread.Name()})
	}

	if oldThread.Space() != nil {
		oldThread.SaveUserState()
		oldThread.Space().SaveState()
	}

	oldThread.CheckOverflow()

	s.kernel.setCurrentThread(nextThread)
	nextThread.setStatus(StatusRunning)

	s.log.Debug("switching threads",
		zap.String("from", oldThread.Name()),
		zap.String("to", nextThread.Name()))
	s.tracer.Record(Event{Tick: s.clock.Now(), Kind: EventDispatch, Thread: nextThread.Name()})

	switchTo(oldThread, nextThread, finishing)

	// Back on oldThread's stack: some later switch picked this thread
	// again, possibly much later and from a different call site.
	assertf(s.kernel.interrupt.Level() == IntOff, "interrupts enabled on return from switch")
	s.log.Debug("resumed thread", zap.String("thread", oldThread.Name()))

	s.checkToBeDestroyed()

	if oldThread.Space() != nil {
		oldThread.RestoreUserState()
		oldThread.Space().RestoreState()
	}
}

// checkToBeDestroyed frees the thread parked in the deferred-destruction
// slot, if any. This is the only place a finished thread's resources are
// released; by now we are provably not running on its stack.
func (s *Scheduler) checkToBeDestroyed() {
	if s.toBeDestroyed != nil {
		s.tracer.Record(Event{Tick: s.clock.Now(), Kind: EventDestroy, Thread: s.toBeDestroyed.Name()})
		s.toBeDestroyed.destroy()
		s.toBeDestroyed = nil
	}
}

// Print dumps the ready-queue contents, for debugging. No mutation.
func (s *Scheduler) Print() {
	fmt.Println("Ready list contents:")
	it := s.ready.Iterator()
	for it.Next() {
		t := it.Value().(*Thread)
		fmt.Printf("  %s (priority %d, burst %d)\n", t.Name(), t.Priority(), t.BurstTime())
	}
}
