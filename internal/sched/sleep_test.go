package sched

import "testing"

func TestWakeUpNothingDue(t *testing.T) {
	k := newTestKernel(t, "fcfs")
	k.Interrupt().SetLevel(IntOff)

	if k.Scheduler().WakeUp() {
		t.Fatal("WakeUp with an empty sleep set must return false")
	}
	if got := k.Clock().Now(); got != 1 {
		t.Fatalf("tick = %d after one WakeUp, want 1", got)
	}
}

// A sleep of n ticks becomes eligible on the (n+1)-th notification: the
// tick counter increments before the strict-less-than scan. That
// off-by-one is observable behavior and must hold exactly.
func TestSleepWakeOffByOne(t *testing.T) {
	k := newTestKernel(t, "fcfs")
	k.Interrupt().SetLevel(IntOff)
	s := k.Scheduler()

	sleeper := k.NewThread("sleeper")
	s.FallAsleep(sleeper, 5)

	if sleeper.Status() != StatusBlocked {
		t.Fatalf("sleeping thread has status %v, want BLOCKED", sleeper.Status())
	}

	for i := 1; i <= 5; i++ {
		if s.WakeUp() {
			t.Fatalf("thread woke on tick %d, want tick 6", i)
		}
		if s.HasReady() {
			t.Fatalf("thread on ready queue after tick %d", i)
		}
	}

	if !s.WakeUp() {
		t.Fatal("6th WakeUp must wake the thread and return true")
	}
	if got := s.FindNextToRun(); got != sleeper {
		t.Fatal("woken thread must be on the ready queue")
	}
	if got := sleeper.Status(); got != StatusReady {
		t.Fatalf("woken thread has status %v, want READY", got)
	}
	if s.hasSleepers() {
		t.Fatal("sleep set must be empty after the wake")
	}
}

func TestWakeUpOnlyReadiesDueThreads(t *testing.T) {
	k := newTestKernel(t, "fcfs")
	k.Interrupt().SetLevel(IntOff)
	s := k.Scheduler()

	early := k.NewThread("early")
	late := k.NewThread("late")
	s.FallAsleep(early, 1)
	s.FallAsleep(late, 4)

	s.WakeUp() // tick 1: neither due
	if !s.WakeUp() {
		t.Fatal("tick 2 must wake the early sleeper")
	}
	if got := s.FindNextToRun(); got != early {
		t.Fatal("early sleeper must be readied first")
	}
	if !s.hasSleepers() {
		t.Fatal("late sleeper must remain asleep")
	}

	s.WakeUp() // tick 3
	s.WakeUp() // tick 4
	if !s.WakeUp() {
		t.Fatal("tick 5 must wake the late sleeper")
	}
	if got := s.FindNextToRun(); got != late {
		t.Fatal("late sleeper must be readied")
	}
}

// The wake tick is pinned when the thread falls asleep, not when the
// scan happens to look at it.
func TestWakeTickFixedAtInsertion(t *testing.T) {
	k := newTestKernel(t, "fcfs")
	k.Interrupt().SetLevel(IntOff)
	s := k.Scheduler()

	s.WakeUp() // advance to tick 1 before the sleep
	sleeper := k.NewThread("sleeper")
	s.FallAsleep(sleeper, 2) // due strictly after tick 3

	s.WakeUp() // 2
	s.WakeUp() // 3
	if s.HasReady() {
		t.Fatal("thread woke too early")
	}
	if !s.WakeUp() { // 4
		t.Fatal("thread must wake once the counter passes its wake tick")
	}
}
