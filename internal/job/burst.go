// Package job provides canned thread bodies for the demo binary.
package job

import (
	"fmt"

	"coopkern/internal/sched"
)

// BurstLoop returns a body that burns one unit of burst time per
// simulated tick until the thread's burst is exhausted.
func BurstLoop(k *sched.Kernel) sched.ThreadFunc {
	return func() {
		for k.CurrentThread().BurstTime() > 0 {
			cur := k.CurrentThread()
			cur.SetBurstTime(cur.BurstTime() - 1)
			k.Interrupt().OneTick()
			fmt.Printf("%s: remaining %d\n", k.CurrentThread().Name(), k.CurrentThread().BurstTime())
		}
	}
}

// DozeLoop is like BurstLoop, but the thread sleeps for doze ticks after
// each unit of work instead of staying runnable, exercising the timed
// sleep/wake path.
func DozeLoop(k *sched.Kernel, doze int64) sched.ThreadFunc {
	return func() {
		for k.CurrentThread().BurstTime() > 0 {
			cur := k.CurrentThread()
			cur.SetBurstTime(cur.BurstTime() - 1)
			cur.SleepFor(doze)
			fmt.Printf("%s: remaining %d\n", k.CurrentThread().Name(), k.CurrentThread().BurstTime())
		}
	}
}
