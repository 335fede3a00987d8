// internal/sched/policy.go

package sched

// Policy selects the ready-queue discipline.
type Policy int

const (
	FCFS Policy = iota // strict arrival order, non-preemptive
	SJF                // shortest remaining burst time first
	Priority           // smallest priority number first
)

func (p Policy) String() string {
	switch p {
	case FCFS:
		return "FCFS"
	case SJF:
		return "SJF"
	case Priority:
		return "Priority"
	default:
		return "Unknown"
	}
}

// Comparator is a three-way ordering function over two thread descriptors.
// A zero result means "no preference": the ready queue keeps equal entries
// in insertion order, so ties stay FIFO-fair.
type Comparator func(a, b *Thread) int

// SJFCompare ranks threads by remaining burst time, ascending.
func SJFCompare(a, b *Thread) int {
	switch {
	case a.BurstTime() < b.BurstTime():
		return -1
	case a.BurstTime() > b.BurstTime():
		return 1
	default:
		return 0
	}
}

// PriorityCompare ranks threads by priority number, ascending
// (a smaller number runs first).
func PriorityCompare(a, b *Thread) int {
	switch {
	case a.Priority() < b.Priority():
		return -1
	case a.Priority() > b.Priority():
		return 1
	default:
		return 0
	}
}

// comparator returns the ordering function for the policy, selected once
// at scheduler construction. FCFS has none: arrival order is the order.
// An unknown tag is a fatal error rather than a silent fallthrough.
func (p Policy) comparator() Comparator {
	switch p {
	case FCFS:
		return nil
	case SJF:
		return SJFCompare
	case Priority:
		return PriorityCompare
	default:
		assertf(false, "unknown scheduling policy %d", int(p))
		return nil
	}
}
