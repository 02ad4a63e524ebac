// Package registry maps domain names to flow-handler factories.
package registry

import (
	"sort"
	"sync"

	"github.com/aretw0/espalier/pkg/ports"
)

// Registry manages the available flow handlers. It is an explicit object
// constructed at process start and handed to the manager; there is no
// package-level registry mutable at import time.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]ports.HandlerFactory
}

// New creates a new empty registry.
func New() *Registry {
	return &Registry{
		factories: make(map[string]ports.HandlerFactory),
	}
}

// Register adds a handler factory for a domain.
// If the domain is already registered, the factory is overwritten.
func (r *Registry) Register(domain string, factory ports.HandlerFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[domain] = factory
}

// Get looks up the factory for a domain.
func (r *Registry) Get(domain string) (ports.HandlerFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[domain]
	return factory, ok
}

// Domains returns the registered domain names, sorted for stable output.
func (r *Registry) Domains() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	domains := make([]string, 0, len(r.factories))
	for domain := range r.factories {
		domains = append(domains, domain)
	}
	sort.Strings(domains)
	return domains
}
