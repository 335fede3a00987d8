package sched

import "testing"

func TestComparators(t *testing.T) {
	k := newTestKernel(t, "fcfs")

	mk := func(burst, prio int) *Thread {
		th := k.NewThread("t")
		th.SetBurstTime(burst)
		th.SetPriority(prio)
		return th
	}

	tests := map[string]struct {
		cmp  Comparator
		a, b *Thread
		want int
	}{
		"sjf smaller burst first":    {SJFCompare, mk(3, 0), mk(7, 0), -1},
		"sjf larger burst later":     {SJFCompare, mk(9, 0), mk(2, 0), 1},
		"sjf equal is no preference": {SJFCompare, mk(4, 0), mk(4, 0), 0},
		"priority smaller first":     {PriorityCompare, mk(0, 1), mk(0, 5), -1},
		"priority larger later":      {PriorityCompare, mk(0, 9), mk(0, 2), 1},
		"priority equal":             {PriorityCompare, mk(0, 3), mk(0, 3), 0},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.cmp(tt.a, tt.b); got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPolicyComparatorSelection(t *testing.T) {
	if FCFS.comparator() != nil {
		t.Fatal("FCFS must not have a comparator; arrival order is the order")
	}
	if SJF.comparator() == nil || Priority.comparator() == nil {
		t.Fatal("SJF and Priority must select a comparator")
	}
}

func TestUnknownPolicyIsFatal(t *testing.T) {
	wantAssert(t, func() {
		Policy(42).comparator()
	})
}

func TestPolicyString(t *testing.T) {
	tests := map[Policy]string{
		FCFS:       "FCFS",
		SJF:        "SJF",
		Priority:   "Priority",
		Policy(99): "Unknown",
	}
	for p, want := range tests {
		if got := p.String(); got != want {
			t.Errorf("Policy(%d).String() = %q, want %q", int(p), got, want)
		}
	}
}
