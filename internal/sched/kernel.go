// internal/sched/kernel.go

package sched

import "go.uber.org/zap"

// Kernel is the explicit context object tying the pieces together: the
// interrupt state, the scheduler, the tick clock, the event tracer and
// the single "currently running thread" reference the dispatcher updates.
// Nothing here is a package global, so tests can stand up as many
// independent kernels as they like.
type Kernel struct {
	log       *zap.Logger
	interrupt *Interrupt
	scheduler *Scheduler
	clock     *Clock
	tracer    *Tracer

	// current is the one thread with status RUNNING. Updated only by
	// Scheduler.Run, read anywhere.
	current *Thread
}

// New builds a kernel from the configuration. The calling goroutine
// becomes the bootstrap "main" thread: it is RUNNING from the start and
// is never forked.
func New(cfg Config, log *zap.Logger) (*Kernel, error) {
	policy, err := ParsePolicy(cfg.Policy)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	k := &Kernel{
		log:    log,
		clock:  NewClock(),
		tracer: NewTracer(),
	}
	if cfg.TracePath != "" {
		if err := k.tracer.EnableCSV(cfg.TracePath); err != nil {
			return nil, err
		}
	}
	k.interrupt = &Interrupt{kernel: k, level: IntOn}
	k.scheduler = newScheduler(policy, k)

	main := newThread("main", k)
	main.setStatus(StatusRunning)
	k.current = main

	return k, nil
}

// NewThread creates a thread descriptor owned by the caller. The thread
// does not run, and is unknown to the scheduler, until it is forked or
// handed to ReadyToRun.
func (k *Kernel) NewThread(name string) *Thread {
	return newThread(name, k)
}

// CurrentThread returns the thread currently holding the processor.
func (k *Kernel) CurrentThread() *Thread { return k.current }

func (k *Kernel) setCurrentThread(t *Thread) { k.current = t }

func (k *Kernel) Interrupt() *Interrupt { return k.interrupt }
func (k *Kernel) Scheduler() *Scheduler { return k.scheduler }
func (k *Kernel) Clock() *Clock         { return k.clock }
func (k *Kernel) Tracer() *Tracer       { return k.tracer }

// RunUntilIdle keeps the calling thread yielding, and simulated time
// advancing, until no other thread is ready or sleeping. Used by the
// demo binary and tests to let a scenario play out to completion.
func (k *Kernel) RunUntilIdle() {
	for {
		oldLevel := k.interrupt.SetLevel(IntOff)
		ready := k.scheduler.HasReady()
		sleeping := k.scheduler.hasSleepers()
		k.interrupt.SetLevel(oldLevel)

		switch {
		case ready:
			k.CurrentThread().Yield()
		case sleeping:
			k.interrupt.OneTick()
		default:
			return
		}
	}
}

// Close releases kernel resources held outside the process (the CSV
// trace file, if enabled).
func (k *Kernel) Close() {
	k.tracer.Close()
}
