package ports

import (
	"context"

	"github.com/aretw0/espalier/pkg/domain"
)

// FlowHandler is one in-progress configuration flow. The manager creates a
// fresh instance per flow via a HandlerFactory and reuses that instance for
// every step, so handler-private state set at step N is visible at step N+1.
type FlowHandler interface {
	// Bind injects the flow identity. The manager calls it exactly once,
	// immediately after construction and before the first step dispatch.
	Bind(flowID, domain string)

	// HasStep reports whether a step is registered for the given id.
	HasStep(stepID string) bool

	// Step dispatches the named step with the caller-supplied input and
	// returns exactly one result envelope.
	Step(ctx context.Context, stepID string, input any) (domain.Result, error)

	// Source is the provenance recorded on the entry this flow creates.
	Source() string

	// Version is the handler's schema version, copied into the entry.
	Version() int
}

// HandlerFactory produces a fresh FlowHandler instance for a new flow.
type HandlerFactory func() FlowHandler
