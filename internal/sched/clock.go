// internal/sched/clock.go

package sched

import "sync/atomic"

// Clock counts simulated scheduler ticks. Time never advances on its own:
// every tick comes from an explicit Advance call (interrupt.OneTick or
// Idle), which keeps the whole kernel deterministic and lets tests drive
// the clock by hand.
type Clock struct {
	count atomic.Int64
}

// NewClock creates a clock starting at tick zero.
func NewClock() *Clock {
	return &Clock{}
}

// Advance moves time forward by one tick and returns the new tick count.
func (c *Clock) Advance() int64 {
	return c.count.Add(1)
}

// Now returns the current tick count atomically.
func (c *Clock) Now() int64 {
	return c.count.Load()
}
