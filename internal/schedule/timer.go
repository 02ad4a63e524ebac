// Package schedule provides the default ports.Scheduler backed by the Go
// runtime timer, plus a manual scheduler for deterministic tests.
package schedule

import (
	"sync"
	"time"

	"github.com/aretw0/espalier/pkg/ports"
)

// Timer is the production scheduler: RunSoon spawns a goroutine, RunAfter
// arms a time.Timer. The zero value is ready to use.
type Timer struct{}

// NewTimer creates a timer-backed scheduler.
func NewTimer() *Timer {
	return &Timer{}
}

// RunSoon executes fn on its own goroutine.
func (*Timer) RunSoon(fn func()) {
	go fn()
}

// RunAfter executes fn once d has elapsed. The returned cancel func stops
// the timer; cancelling after the timer fired is a no-op.
func (*Timer) RunAfter(d time.Duration, fn func()) ports.CancelFunc {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Manual is a scheduler driven by hand, for tests. Delayed work queues up
// until Fire is called; RunSoon executes inline.
type Manual struct {
	mu      sync.Mutex
	pending []func()
}

// NewManual creates a manual scheduler.
func NewManual() *Manual {
	return &Manual{}
}

// RunSoon executes fn synchronously.
func (*Manual) RunSoon(fn func()) {
	fn()
}

// RunAfter queues fn until the next Fire. The cancel func removes it.
func (m *Manual) RunAfter(_ time.Duration, fn func()) ports.CancelFunc {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pending = append(m.pending, fn)
	idx := len(m.pending) - 1
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if idx < len(m.pending) {
			m.pending[idx] = nil
		}
	}
}

// Fire runs all queued work in scheduling order and clears the queue.
func (m *Manual) Fire() {
	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	m.mu.Unlock()

	for _, fn := range pending {
		if fn != nil {
			fn()
		}
	}
}

// Pending reports how many scheduled (uncancelled) units are queued.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, fn := range m.pending {
		if fn != nil {
			n++
		}
	}
	return n
}
