package domain

import "context"

// FlowEvent describes a flow reaching the manager.
type FlowEvent struct {
	FlowID string `json:"flow_id"`
	Domain string `json:"domain"`
	StepID string `json:"step_id"`
}

// ResultEvent describes the envelope a step produced.
type ResultEvent struct {
	FlowEvent
	Type ResultType `json:"type"`
}

// EntryEvent describes a committed configuration entry.
type EntryEvent struct {
	Entry ConfigEntry `json:"entry"`
}

// SaveEvent describes a persistence attempt of the entry list.
type SaveEvent struct {
	Entries int   `json:"entries"`
	Err     error `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run synchronously on the configure path; keep them cheap.
type LifecycleHooks struct {
	OnFlowStart    func(context.Context, *FlowEvent)
	OnFlowResult   func(context.Context, *ResultEvent)
	OnEntryCreated func(context.Context, *EntryEvent)
	OnSave         func(context.Context, *SaveEvent)
}
