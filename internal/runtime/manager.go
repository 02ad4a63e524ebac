// Package runtime contains the configuration-flow manager: the orchestrator
// that owns the committed entry list, tracks in-progress flows, dispatches
// steps, and schedules debounced persistence.
package runtime

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/aretw0/espalier/pkg/registry"
	"github.com/google/uuid"
)

// StepInit is the canonical first step dispatched when no step id is given.
const StepInit = "init"

// DefaultSaveDelay is the debounce window for persisting the entry list.
const DefaultSaveDelay = time.Second

// Manager orchestrates configuration flows and keeps track of the ones in
// progress. The entry list and the progress map are owned exclusively by
// the Manager; mutations happen only outside the single suspension point
// of a Configure call (the step dispatch), so concurrent flows never
// observe a torn intermediate state.
type Manager struct {
	registry  *registry.Registry
	store     ports.EntryStore
	sched     ports.Scheduler
	logger    *slog.Logger
	hooks     domain.LifecycleHooks
	saveDelay time.Duration

	mu          sync.Mutex
	entries     []domain.ConfigEntry
	progress    map[string]ports.FlowHandler
	pendingSave ports.CancelFunc

	flows flowLocks
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithHooks registers observability callbacks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Manager) {
		m.hooks = hooks
	}
}

// WithSaveDelay overrides the debounce window.
func WithSaveDelay(d time.Duration) Option {
	return func(m *Manager) {
		m.saveDelay = d
	}
}

// NewManager creates a manager with the given handler registry, entry store
// and scheduler.
func NewManager(reg *registry.Registry, store ports.EntryStore, sched ports.Scheduler, opts ...Option) *Manager {
	m := &Manager{
		registry:  reg,
		store:     store,
		sched:     sched,
		logger:    logging.NewNop(),
		saveDelay: DefaultSaveDelay,
		progress:  make(map[string]ports.FlowHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Domains returns the domains that have committed entries, each exactly
// once, in order of first appearance.
func (m *Manager) Domains() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[string]bool)
	var result []string
	for _, entry := range m.entries {
		if !seen[entry.Domain] {
			seen[entry.Domain] = true
			result = append(result, entry.Domain)
		}
	}
	return result
}

// Entries returns the committed entries for a domain in insertion order.
func (m *Manager) Entries(domainName string) []domain.ConfigEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []domain.ConfigEntry
	for _, entry := range m.entries {
		if entry.Domain == domainName {
			result = append(result, entry)
		}
	}
	return result
}

// AllEntries returns every committed entry in insertion order.
func (m *Manager) AllEntries() []domain.ConfigEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.entries)
}

// Flows returns the ids of the flows currently in progress.
func (m *Manager) Flows() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.progress))
	for id := range m.progress {
		ids = append(ids, id)
	}
	return ids
}

// Configure starts or continues a configuration flow.
//
// With an empty or unknown flowID a fresh flow is created; otherwise the
// live handler instance is reused so state set during one step is visible
// during the next. An empty stepID dispatches StepInit. The returned
// envelope decides the flow's fate: a form keeps it in progress, abort and
// create_entry end it, and create_entry additionally commits a ConfigEntry
// and schedules a debounced save.
func (m *Manager) Configure(ctx context.Context, domainName, flowID, stepID string, input any) (domain.Result, error) {
	if stepID == "" {
		stepID = StepInit
	}

	factory, ok := m.registry.Get(domainName)
	if !ok {
		return domain.Result{}, fmt.Errorf("domain %q: %w", domainName, domain.ErrUnknownHandler)
	}

	handler, flowID, release, created := m.acquireFlow(domainName, flowID, factory)
	defer release()

	if created {
		m.logger.Debug("flow started", "domain", domainName, "flow_id", flowID, "step_id", stepID)
		if m.hooks.OnFlowStart != nil {
			m.hooks.OnFlowStart(ctx, &domain.FlowEvent{FlowID: flowID, Domain: domainName, StepID: stepID})
		}
	}

	if !handler.HasStep(stepID) {
		// A flow that can never make progress must not linger.
		m.removeFlow(flowID)
		return domain.Result{}, fmt.Errorf("handler %q has no step %q: %w", domainName, stepID, domain.ErrUnknownStep)
	}

	// The step dispatch is the single suspension point of the call. No
	// manager state is held locked across it, and step errors leave the
	// flow exactly as it was so the caller may retry the same step.
	result, err := handler.Step(ctx, stepID, input)
	if err != nil {
		return domain.Result{}, err
	}

	if m.hooks.OnFlowResult != nil {
		m.hooks.OnFlowResult(ctx, &domain.ResultEvent{
			FlowEvent: domain.FlowEvent{FlowID: flowID, Domain: domainName, StepID: stepID},
			Type:      result.Type,
		})
	}

	switch result.Type {
	case domain.ResultTypeForm:
		return result, nil

	case domain.ResultTypeAbort:
		m.removeFlow(flowID)
		m.logger.Debug("flow aborted", "domain", domainName, "flow_id", flowID, "reason", result.Reason)
		return result, nil

	case domain.ResultTypeCreateEntry:
		m.removeFlow(flowID)

		entry := domain.ConfigEntry{
			ID:      flowID,
			Version: handler.Version(),
			Domain:  domainName,
			Title:   result.Title,
			Data:    result.Data,
			Source:  handler.Source(),
		}

		m.mu.Lock()
		m.entries = append(m.entries, entry)
		m.mu.Unlock()

		m.logger.Info("config entry created",
			"domain", domainName,
			"entry_id", entry.ID,
			"title", entry.Title,
			"source", entry.Source,
		)
		if m.hooks.OnEntryCreated != nil {
			m.hooks.OnEntryCreated(ctx, &domain.EntryEvent{Entry: entry})
		}

		m.ScheduleSave()
		return result, nil

	default:
		return domain.Result{}, fmt.Errorf("handler %q step %q returned unknown result type %q", domainName, stepID, result.Type)
	}
}

// acquireFlow resolves or creates the handler instance for a flow and takes
// the per-flow lock, serializing steps of the same flow while leaving other
// flows free to interleave. The caller must invoke release when done.
func (m *Manager) acquireFlow(domainName, flowID string, factory ports.HandlerFactory) (ports.FlowHandler, string, func(), bool) {
	for {
		m.mu.Lock()
		var handler ports.FlowHandler
		if flowID != "" {
			handler = m.progress[flowID]
		}
		created := false
		if handler == nil {
			flowID = newFlowID()
			handler = factory()
			handler.Bind(flowID, domainName)
			m.progress[flowID] = handler
			created = true
		}
		m.mu.Unlock()

		release := m.flows.lock(flowID)
		if created {
			return handler, flowID, release, true
		}

		// The flow may have finished while we waited for its lock; a
		// stale id starts a fresh flow.
		m.mu.Lock()
		current, live := m.progress[flowID]
		m.mu.Unlock()
		if live {
			return current, flowID, release, false
		}
		release()
		flowID = ""
	}
}

func (m *Manager) removeFlow(flowID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.progress, flowID)
}

// Load replaces the in-memory entry list from the store. Call it once at
// startup, before serving Configure calls that depend on existing entries.
// A missing store means zero prior entries; a malformed store is fatal.
func (m *Manager) Load(ctx context.Context) error {
	entries, err := m.store.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrStoreNotFound) {
			entries = nil
		} else {
			return fmt.Errorf("failed to load entries: %w", err)
		}
	}

	m.mu.Lock()
	m.entries = entries
	m.mu.Unlock()

	m.logger.Debug("entries loaded", "count", len(entries))
	return nil
}

// ScheduleSave requests a save of the entry list after the debounce window.
// Repeated calls within the window collapse into a single write reflecting
// the state as of the last call: each call cancels any pending timer before
// arming a new one.
func (m *Manager) ScheduleSave() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pendingSave != nil {
		m.pendingSave()
	}
	m.pendingSave = m.sched.RunAfter(m.saveDelay, func() {
		m.sched.RunSoon(func() {
			if err := m.Save(context.Background()); err != nil {
				m.logger.Error("scheduled save failed", "err", err)
			}
		})
	})
}

// Save persists the current entry list immediately, cancelling any pending
// debounced save first. Entries committed after the snapshot is taken are
// captured by the next save.
func (m *Manager) Save(ctx context.Context) error {
	m.mu.Lock()
	if m.pendingSave != nil {
		m.pendingSave()
		m.pendingSave = nil
	}
	snapshot := slices.Clone(m.entries)
	m.mu.Unlock()

	err := m.store.Save(ctx, snapshot)
	if m.hooks.OnSave != nil {
		m.hooks.OnSave(ctx, &domain.SaveEvent{Entries: len(snapshot), Err: err})
	}
	if err != nil {
		return fmt.Errorf("failed to save entries: %w", err)
	}
	return nil
}

func newFlowID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}
