package espalier

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/internal/runtime"
	"github.com/aretw0/espalier/internal/schedule"
	"github.com/aretw0/espalier/pkg/adapters/file"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/aretw0/espalier/pkg/registry"
)

// Version is the library version, surfaced by the CLI and the HTTP API.
const Version = "0.1.0"

// Engine is the high-level entry point for the Espalier library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	registry  *registry.Registry
	manager   *runtime.Manager
	store     ports.EntryStore
	sched     ports.Scheduler
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	saveDelay time.Duration
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithStore injects a custom entry store, bypassing the default file store.
func WithStore(store ports.EntryStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithScheduler injects a custom scheduler (useful for deterministic tests).
func WithScheduler(sched ports.Scheduler) Option {
	return func(e *Engine) {
		e.sched = sched
	}
}

// WithRegistry injects a pre-populated handler registry.
func WithRegistry(reg *registry.Registry) Option {
	return func(e *Engine) {
		e.registry = reg
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithSaveDelay overrides the debounce window for persisting entries.
func WithSaveDelay(d time.Duration) Option {
	return func(e *Engine) {
		e.saveDelay = d
	}
}

// New initializes a new Espalier Engine.
// By default it persists entries to a JSON document at storePath (or
// ".espalier/entries.json" when empty) and schedules saves on real timers.
// Inject WithStore to persist elsewhere, in which case storePath is ignored.
func New(storePath string, opts ...Option) (*Engine, error) {
	eng := &Engine{}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.store == nil {
		eng.store = file.New(storePath)
	}
	if eng.sched == nil {
		eng.sched = schedule.NewTimer()
	}
	if eng.registry == nil {
		eng.registry = registry.New()
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.saveDelay <= 0 {
		eng.saveDelay = runtime.DefaultSaveDelay
	}

	eng.manager = runtime.NewManager(
		eng.registry,
		eng.store,
		eng.sched,
		runtime.WithLogger(eng.logger),
		runtime.WithHooks(eng.hooks),
		runtime.WithSaveDelay(eng.saveDelay),
	)

	return eng, nil
}

// Register binds a handler factory to a domain. Registering the same domain
// twice replaces the factory; in-progress flows keep their old handler.
func (e *Engine) Register(domainName string, factory ports.HandlerFactory) {
	e.registry.Register(domainName, factory)
}

// Configure starts or continues a configuration flow for a domain.
// Pass an empty flowID to start and an empty stepID for the initial step.
func (e *Engine) Configure(ctx context.Context, domainName, flowID, stepID string, input any) (domain.Result, error) {
	return e.manager.Configure(ctx, domainName, flowID, stepID, input)
}

// Load restores the committed entries from the store. Call once at startup.
func (e *Engine) Load(ctx context.Context) error {
	return e.manager.Load(ctx)
}

// Flush persists the committed entries immediately, bypassing the debounce
// window. Call before shutdown so no scheduled save is lost.
func (e *Engine) Flush(ctx context.Context) error {
	return e.manager.Save(ctx)
}

// Domains returns the domains with committed entries in first-seen order.
func (e *Engine) Domains() []string {
	return e.manager.Domains()
}

// Entries returns the committed entries for a domain in insertion order.
func (e *Engine) Entries(domainName string) []domain.ConfigEntry {
	return e.manager.Entries(domainName)
}

// AllEntries returns every committed entry in insertion order.
func (e *Engine) AllEntries() []domain.ConfigEntry {
	return e.manager.AllEntries()
}

// Flows returns the ids of the flows currently in progress.
func (e *Engine) Flows() []string {
	return e.manager.Flows()
}

// Registry returns the handler registry used by the engine.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}
