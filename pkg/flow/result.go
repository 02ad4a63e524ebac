package flow

import (
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/schema"
)

// Form describes the next form to present to the caller.
type Form struct {
	Title       string
	StepID      string
	Description string
	DataSchema  schema.Schema
	Errors      map[string]string
	TotalSteps  int
}

// ShowForm returns a form envelope: the flow stays in progress and the
// caller is expected to submit StepID next.
func (h *Handler) ShowForm(form Form) domain.Result {
	return domain.Result{
		Type:        domain.ResultTypeForm,
		FlowID:      h.flowID,
		Title:       form.Title,
		StepID:      form.StepID,
		Description: form.Description,
		DataSchema:  form.DataSchema,
		Errors:      form.Errors,
		TotalSteps:  form.TotalSteps,
	}
}

// CreateEntry returns a completion envelope: the manager commits a
// ConfigEntry built from the flow identity, the handler's version and
// source, and the given title and data.
func (h *Handler) CreateEntry(title string, data any) domain.Result {
	return domain.Result{
		Type:   domain.ResultTypeCreateEntry,
		FlowID: h.flowID,
		Title:  title,
		Data:   data,
	}
}

// Abort returns an abort envelope: the flow ends without creating an entry.
func (h *Handler) Abort(reason string) domain.Result {
	return domain.Result{
		Type:   domain.ResultTypeAbort,
		FlowID: h.flowID,
		Reason: reason,
	}
}
