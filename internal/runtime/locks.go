package runtime

import "sync"

// flowLocks hands out one mutex per flow id, created on first use and
// dropped once the last holder releases it. Steps of the same flow are
// serialized; different flows never contend.
type flowLocks struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// lock blocks until the flow's mutex is available and returns the release
// func. Release must be called exactly once.
func (f *flowLocks) lock(flowID string) func() {
	f.mu.Lock()
	if f.locks == nil {
		f.locks = make(map[string]*lockEntry)
	}
	entry, ok := f.locks[flowID]
	if !ok {
		entry = &lockEntry{}
		f.locks[flowID] = entry
	}
	entry.refs++
	f.mu.Unlock()

	entry.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			entry.mu.Unlock()

			f.mu.Lock()
			entry.refs--
			if entry.refs == 0 {
				delete(f.locks, flowID)
			}
			f.mu.Unlock()
		})
	}
}
