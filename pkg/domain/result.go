package domain

import "github.com/aretw0/espalier/pkg/schema"

// ResultType tags the envelope a flow step returns.
type ResultType string

const (
	// ResultTypeForm means the flow continues: the caller should render the
	// form and submit the next step.
	ResultTypeForm ResultType = "form"
	// ResultTypeCreateEntry means the flow completed successfully and a
	// ConfigEntry was (or will be) committed.
	ResultTypeCreateEntry ResultType = "create_entry"
	// ResultTypeAbort means the flow completed unsuccessfully.
	ResultTypeAbort ResultType = "abort"
)

// Result is the envelope every step operation returns. Exactly one variant
// applies, selected by Type; the manager trusts the tag and infers flow
// termination from nothing else.
type Result struct {
	Type   ResultType `json:"type"`
	FlowID string     `json:"flow_id"`

	// Form fields (Type == ResultTypeForm).
	Title       string            `json:"title,omitempty"`
	StepID      string            `json:"step_id,omitempty"`
	Description string            `json:"description,omitempty"`
	DataSchema  schema.Schema     `json:"data_schema,omitempty"`
	Errors      map[string]string `json:"errors,omitempty"`
	TotalSteps  int               `json:"total_steps,omitempty"`

	// Entry fields (Type == ResultTypeCreateEntry). Title is shared with
	// the form variant.
	Data any `json:"data,omitempty"`

	// Abort fields (Type == ResultTypeAbort).
	Reason string `json:"reason,omitempty"`
}
