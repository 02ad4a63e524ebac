package flow

import (
	"context"
	"fmt"

	"github.com/aretw0/espalier/pkg/domain"
)

// StepInit is the canonical first step of every flow.
const StepInit = "init"

// StepFunc is one named step of a flow. It receives the caller-supplied
// input (nil on first render) and returns exactly one result envelope.
// Steps may block on external I/O; the manager dispatches no other step of
// the same flow while one is in flight.
type StepFunc func(ctx context.Context, input any) (domain.Result, error)

// Handler is the embeddable base for concrete flow handlers. It carries the
// flow identity, the declared version and source, and the step table.
// The zero value is ready to use: version 0, source "user".
type Handler struct {
	flowID  string
	domain  string
	source  string
	version int
	steps   map[string]StepFunc
}

// Bind injects the flow identity. Called by the manager exactly once,
// before the first step dispatch.
func (h *Handler) Bind(flowID, domainName string) {
	h.flowID = flowID
	h.domain = domainName
}

// Handle registers a step function under the given id, overwriting any
// prior registration. Concrete handlers call it from their constructor.
func (h *Handler) Handle(stepID string, fn StepFunc) {
	if h.steps == nil {
		h.steps = make(map[string]StepFunc)
	}
	h.steps[stepID] = fn
}

// HasStep reports whether a step is registered for the given id.
func (h *Handler) HasStep(stepID string) bool {
	_, ok := h.steps[stepID]
	return ok
}

// Step dispatches the named step.
func (h *Handler) Step(ctx context.Context, stepID string, input any) (domain.Result, error) {
	fn, ok := h.steps[stepID]
	if !ok {
		return domain.Result{}, fmt.Errorf("step %q: %w", stepID, domain.ErrUnknownStep)
	}
	return fn(ctx, input)
}

// FlowID returns the identity injected by the manager.
func (h *Handler) FlowID() string { return h.flowID }

// Domain returns the domain that owns this flow.
func (h *Handler) Domain() string { return h.domain }

// SetSource overrides the provenance recorded on the created entry.
// Must be called before the step that completes the flow returns.
func (h *Handler) SetSource(source string) { h.source = source }

// Source returns the declared provenance, defaulting to "user".
func (h *Handler) Source() string {
	if h.source == "" {
		return domain.SourceUser
	}
	return h.source
}

// SetVersion declares the handler's schema version.
func (h *Handler) SetVersion(version int) { h.version = version }

// Version returns the declared schema version (default 0).
func (h *Handler) Version() int { return h.version }
