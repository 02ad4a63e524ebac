// Package ports defines the boundary interfaces of the Espalier engine.
//
// The manager core depends only on these contracts; concrete adapters
// (file, memory, redis stores, the timer scheduler, flow handler bases)
// live elsewhere and are injected. This keeps the core testable and the
// storage/scheduling layers swappable, following Hexagonal Architecture.
package ports
