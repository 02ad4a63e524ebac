package ports

import "time"

// CancelFunc cancels a scheduled unit of work. Calling it after the work
// has run is a no-op.
type CancelFunc func()

// Scheduler runs units of work for the manager, optionally after a delay.
// It is the engine's only view of the host's event loop: the debounced save
// is armed through RunAfter and the write itself dispatched via RunSoon.
type Scheduler interface {
	// RunSoon executes fn as background work.
	RunSoon(fn func())

	// RunAfter executes fn after d has elapsed. The returned CancelFunc
	// prevents execution if called before the delay fires.
	RunAfter(d time.Duration, fn func()) CancelFunc
}
