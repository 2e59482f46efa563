package service

import (
	"sync"
	"time"
)

// Autosave periodically flushes the current session to the draft store. It is
// a two-state machine: Stopped -> Start() -> Running -> Stop() -> Stopped.
// Start while running and Stop while stopped are no-ops, which guards against
// duplicate timers from repeated UI mounts.
type Autosave struct {
	interval time.Duration
	flush    func()

	// newTicker creates a tick channel and its stop function. Inject a
	// custom implementation for deterministic testing without real timers.
	newTicker func(d time.Duration) (<-chan time.Time, func())

	mu   sync.Mutex
	quit chan struct{}
	done chan struct{}
}

func NewAutosave(interval time.Duration, flush func()) *Autosave {
	return &Autosave{
		interval:  interval,
		flush:     flush,
		newTicker: defaultNewTicker,
	}
}

// Start begins ticking. Idempotent.
func (a *Autosave) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.quit != nil {
		return
	}
	a.quit = make(chan struct{})
	a.done = make(chan struct{})
	go a.run(a.quit, a.done)
}

// Stop cancels the pending tick and waits for the flush loop to exit, so no
// flush runs after Stop returns. It does not issue a final flush; callers
// needing guaranteed last-state durability flush explicitly after stopping.
func (a *Autosave) Stop() {
	a.mu.Lock()
	quit, done := a.quit, a.done
	a.quit, a.done = nil, nil
	a.mu.Unlock()

	if quit == nil {
		return
	}
	close(quit)
	<-done
}

// Running reports whether the scheduler currently holds a timer.
func (a *Autosave) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.quit != nil
}

func (a *Autosave) run(quit <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	tick, stop := a.newTicker(a.interval)
	defer stop()

	for {
		select {
		case <-quit:
			return
		case <-tick:
			a.flush()
		}
	}
}

func defaultNewTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}
