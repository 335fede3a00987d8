// internal/sched/event.go

package sched

import (
	"encoding/csv"
	"os"
	"strconv"
)

// EventKind represents the type of scheduler event.
type EventKind int

const (
	EventTick EventKind = iota
	EventEnqueue
	EventDispatch
	EventSleep
	EventWake
	EventFinish
	EventDestroy
)

// Event is recorded on every tick and on key scheduler actions.
type Event struct {
	Tick   int64
	Kind   EventKind
	Thread string
}

func (k EventKind) String() string {
	switch k {
	case EventTick:
		return "Tick"
	case EventEnqueue:
		return "Enqueued"
	case EventDispatch:
		return "Dispatch"
	case EventSleep:
		return "Sleep"
	case EventWake:
		return "Wake"
	case EventFinish:
		return "Finish"
	case EventDestroy:
		return "Destroy"
	default:
		return "Unknown"
	}
}

// Tracer keeps an in-memory record of scheduler events and, optionally,
// mirrors them to a CSV file. Scheduler code runs with interrupts
// disabled, so events are stored directly instead of going through a
// channel a consumer would have to drain.
type Tracer struct {
	events []Event

	csvFile   *os.File
	csvWriter *csv.Writer
}

func NewTracer() *Tracer {
	return &Tracer{}
}

// EnableCSV opens the given file path for CSV logging of events.
// Must be called before the kernel starts scheduling.
func (tr *Tracer) EnableCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)

	// write header
	w.Write([]string{"tick", "event", "thread"})
	w.Flush()
	tr.csvFile = f
	tr.csvWriter = w
	return nil
}

// Record stores one event and flushes it to CSV if logging is enabled.
func (tr *Tracer) Record(ev Event) {
	tr.events = append(tr.events, ev)

	if tr.csvWriter != nil {
		tr.csvWriter.Write([]string{
			strconv.FormatInt(ev.Tick, 10),
			ev.Kind.String(),
			ev.Thread,
		})
		tr.csvWriter.Flush()
	}
}

// Events exposes the recorded history (for inspection and tests).
func (tr *Tracer) Events() []Event {
	return tr.events
}

// Close flushes and closes the CSV file, if one was opened.
func (tr *Tracer) Close() {
	if tr.csvFile != nil {
		tr.csvWriter.Flush()
		tr.csvFile.Close()
		tr.csvFile = nil
		tr.csvWriter = nil
	}
}
