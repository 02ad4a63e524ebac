package schema

import (
	"encoding/json"
	"fmt"
)

// Schema maps form field names to their expected types.
type Schema map[string]Type

// Validate checks data against the schema. Every schema field is required.
// All failures are collected into a single Errors value.
func (s Schema) Validate(data map[string]any) error {
	if len(s) == 0 {
		return nil
	}

	var errs []error
	for field, typ := range s {
		value, ok := data[field]
		if !ok {
			errs = append(errs, &FieldError{Field: field, Reason: "required"})
			continue
		}
		if err := typ.Validate(value); err != nil {
			errs = append(errs, &FieldError{Field: field, Reason: err.Error(), Value: value})
		}
	}

	if len(errs) > 0 {
		return &Errors{Fields: errs}
	}
	return nil
}

// MarshalJSON serializes the schema as a map of field names to type names.
func (s Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}

	raw := make(map[string]string, len(s))
	for field, typ := range s {
		if typ == nil {
			return nil, fmt.Errorf("field %s: type is nil", field)
		}
		raw[field] = typ.Name()
	}
	return json.Marshal(raw)
}

// UnmarshalJSON reconstructs the schema from a map of field names to type
// names. Unknown type names fail the unmarshal.
func (s *Schema) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = nil
		return nil
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := ParseTypeMap(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
