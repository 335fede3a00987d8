package sched

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEventKindString(t *testing.T) {
	tests := map[EventKind]string{
		EventTick:     "Tick",
		EventEnqueue:  "Enqueued",
		EventDispatch: "Dispatch",
		EventSleep:    "Sleep",
		EventWake:     "Wake",
		EventFinish:   "Finish",
		EventDestroy:  "Destroy",
		EventKind(99): "Unknown",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("EventKind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}

func TestTracerCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.csv")

	tr := NewTracer()
	if err := tr.EnableCSV(path); err != nil {
		t.Fatal(err)
	}
	tr.Record(Event{Tick: 4, Kind: EventDispatch, Thread: "A"})
	tr.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("trace has %d lines, want header plus one record", len(lines))
	}
	if lines[0] != "tick,event,thread" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "4,Dispatch,A" {
		t.Errorf("record = %q", lines[1])
	}

	if len(tr.Events()) != 1 {
		t.Errorf("in-memory trace has %d events, want 1", len(tr.Events()))
	}
}
