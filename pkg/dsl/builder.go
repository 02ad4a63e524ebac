package dsl

import (
	"context"
	"fmt"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/flow"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/aretw0/espalier/pkg/schema"
)

// StepFunc is a custom step body for flows that need logic beyond prompt
// chaining. Values holds everything earlier steps collected.
type StepFunc func(ctx context.Context, fl *Flow, input any) (domain.Result, error)

// Flow is the handler instance a Builder produces. Values accumulates the
// submitted fields of every completed step.
type Flow struct {
	flow.Handler
	Values map[string]any
}

// Builder manages the flow construction.
type Builder struct {
	version int
	source  string
	steps   []*StepBuilder
}

// New creates a new flow builder.
func New() *Builder {
	return &Builder{}
}

// Version declares the schema version recorded on created entries.
func (b *Builder) Version(v int) *Builder {
	b.version = v
	return b
}

// Source declares the provenance recorded on created entries.
func (b *Builder) Source(source string) *Builder {
	b.source = source
	return b
}

// Step creates a new step in the flow.
// If the step already exists, it returns the existing builder.
func (b *Builder) Step(id string) *StepBuilder {
	for _, sb := range b.steps {
		if sb.id == id {
			return sb
		}
	}
	sb := &StepBuilder{id: id, builder: b}
	b.steps = append(b.steps, sb)
	return sb
}

// Factory compiles the flow into a handler factory. Each started flow gets
// its own Flow instance, so collected values never leak between flows.
func (b *Builder) Factory() ports.HandlerFactory {
	// Snapshot so later Builder mutations don't affect issued factories.
	steps := make([]*StepBuilder, len(b.steps))
	copy(steps, b.steps)
	version, source := b.version, b.source
	totalSteps := len(steps)

	return func() ports.FlowHandler {
		fl := &Flow{Values: make(map[string]any)}
		fl.SetVersion(version)
		if source != "" {
			fl.SetSource(source)
		}
		for _, sb := range steps {
			fl.Handle(sb.id, sb.compile(fl, totalSteps))
		}
		return fl
	}
}

// StepBuilder provides a fluent API for configuring one step.
type StepBuilder struct {
	id          string
	builder     *Builder
	title       string
	description string
	fields      schema.Schema
	next        string
	finish      func(values map[string]any) (string, any)
	custom      StepFunc
}

// Title sets the form title shown for this step.
func (s *StepBuilder) Title(title string) *StepBuilder {
	s.title = title
	return s
}

// Description sets the form description shown for this step.
func (s *StepBuilder) Description(description string) *StepBuilder {
	s.description = description
	return s
}

// Field declares one expected input field.
func (s *StepBuilder) Field(name string, t schema.Type) *StepBuilder {
	if s.fields == nil {
		s.fields = make(schema.Schema)
	}
	s.fields[name] = t
	return s
}

// Then chains to the named step once this step's input validates.
func (s *StepBuilder) Then(next string) *StepBuilder {
	s.next = next
	return s
}

// Finish completes the flow once this step's input validates. The callback
// receives all collected values and returns the entry title and data.
func (s *StepBuilder) Finish(fn func(values map[string]any) (string, any)) *StepBuilder {
	s.finish = fn
	return s
}

// Func replaces the prompt behavior with a custom step body.
func (s *StepBuilder) Func(fn StepFunc) *StepBuilder {
	s.custom = fn
	return s
}

// compile turns the declaration into a step function bound to fl.
func (s *StepBuilder) compile(fl *Flow, totalSteps int) flow.StepFunc {
	if s.custom != nil {
		custom := s.custom
		return func(ctx context.Context, input any) (domain.Result, error) {
			return custom(ctx, fl, input)
		}
	}

	return func(ctx context.Context, input any) (domain.Result, error) {
		if input == nil {
			return fl.ShowForm(s.form(totalSteps, nil)), nil
		}

		values, ok := input.(map[string]any)
		if !ok {
			return domain.Result{}, fmt.Errorf("step %q: expected map input, got %T", s.id, input)
		}
		if err := s.fields.Validate(values); err != nil {
			return fl.ShowForm(s.form(totalSteps, fieldErrorMap(err))), nil
		}

		for field := range s.fields {
			fl.Values[field] = values[field]
		}

		switch {
		case s.finish != nil:
			title, data := s.finish(fl.Values)
			return fl.CreateEntry(title, data), nil
		case s.next != "":
			return fl.Step(ctx, s.next, nil)
		default:
			return domain.Result{}, fmt.Errorf("step %q has neither a next step nor a finish", s.id)
		}
	}
}

func (s *StepBuilder) form(totalSteps int, errs map[string]string) flow.Form {
	return flow.Form{
		Title:       s.title,
		StepID:      s.id,
		Description: s.description,
		DataSchema:  s.fields,
		Errors:      errs,
		TotalSteps:  totalSteps,
	}
}

func fieldErrorMap(err error) map[string]string {
	fields := schema.FieldErrors(err)
	out := make(map[string]string, len(fields))
	for _, fieldErr := range fields {
		if fe, ok := fieldErr.(*schema.FieldError); ok {
			out[fe.Field] = fe.Reason
		}
	}
	if len(out) == 0 {
		out["__all__"] = err.Error()
	}
	return out
}
