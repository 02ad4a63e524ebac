package schema

import "fmt"

// FieldError represents a single field validation failure.
type FieldError struct {
	Field  string
	Reason string
	Value  any
}

func (e *FieldError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("field %q: %s (got %T)", e.Field, e.Reason, e.Value)
}

// Errors aggregates multiple field validation failures.
type Errors struct {
	Fields []error
}

func (e *Errors) Error() string {
	if len(e.Fields) == 1 {
		return e.Fields[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Fields))
	for i, err := range e.Fields {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// FieldErrors returns the individual failures if err is an *Errors,
// otherwise nil.
func FieldErrors(err error) []error {
	if aggr, ok := err.(*Errors); ok {
		return aggr.Fields
	}
	return nil
}
