// internal/sched/selftest.go

package sched

import "fmt"

// selfTestCase is one canned scenario: four threads A-D with fixed
// priority and burst-time pairs.
type selfTestCase struct {
	priorities [4]int
	bursts     [4]int
}

var selfTestCases = map[int]selfTestCase{
	0: {
		priorities: [4]int{5, 1, 3, 2},
		bursts:     [4]int{3, 9, 7, 3},
	},
	1: {
		priorities: [4]int{5, 1, 3, 2},
		bursts:     [4]int{1, 9, 2, 3},
	},
	2: {
		priorities: [4]int{10, 1, 2, 3},
		bursts:     [4]int{50, 10, 5, 10},
	},
}

// burstBody returns the body every self-test thread runs: burn one unit
// of burst time per simulated tick until none remains, printing the
// remainder each tick.
func burstBody(k *Kernel) ThreadFunc {
	return func() {
		for k.CurrentThread().BurstTime() > 0 {
			cur := k.CurrentThread()
			cur.SetBurstTime(cur.BurstTime() - 1)
			k.interrupt.OneTick()
			fmt.Printf("%s: remaining %d\n", k.CurrentThread().Name(), k.CurrentThread().BurstTime())
		}
	}
}

// SelfTest forks the four threads of the selected scenario and yields
// the calling thread so scheduling proceeds. An unrecognized selector is
// fatal. The caller decides how far to drain the run (RunUntilIdle).
func (k *Kernel) SelfTest(testcase int) {
	fmt.Printf("Using testcase: %d\n", testcase)
	fmt.Printf("Using scheduler: %v\n", k.scheduler.Policy())

	tc, ok := selfTestCases[testcase]
	assertf(ok, "no such testcase: %d", testcase)

	names := [4]string{"A", "B", "C", "D"}
	for i, name := range names {
		t := k.NewThread(name)
		t.SetPriority(tc.priorities[i])
		t.SetBurstTime(tc.bursts[i])
		t.Fork(burstBody(k))
	}
	k.CurrentThread().Yield()
}
