package schema

import (
	"fmt"
	"reflect"
)

// Serialized names of the built-in field types.
const (
	TypeString = "string"
	TypeSecret = "secret"
	TypeInt    = "int"
	TypeFloat  = "float"
	TypeBool   = "bool"
)

// Type validates a single form field value.
type Type interface {
	// Name returns the serializable name of the type (e.g. "string", "int").
	Name() string
	// Validate checks whether a value conforms to this type.
	Validate(value any) error
}

type stringType struct{}

func (stringType) Name() string { return TypeString }

func (stringType) Validate(value any) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// secretType behaves like string but signals that the value is sensitive.
// Interactive callers should mask input for secret fields.
type secretType struct{}

func (secretType) Name() string { return TypeSecret }

func (secretType) Validate(value any) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

type intType struct{}

func (intType) Name() string { return TypeInt }

func (intType) Validate(value any) error {
	switch v := value.(type) {
	case int, int8, int16, int32, int64:
		return nil
	case float64:
		// JSON numbers decode as float64; accept whole numbers.
		if v == float64(int64(v)) {
			return nil
		}
		return fmt.Errorf("expected int, got non-integral float")
	default:
		return fmt.Errorf("expected int, got %T", value)
	}
}

type floatType struct{}

func (floatType) Name() string { return TypeFloat }

func (floatType) Validate(value any) error {
	switch value.(type) {
	case float32, float64, int, int8, int16, int32, int64:
		return nil
	default:
		return fmt.Errorf("expected float, got %T", value)
	}
}

type boolType struct{}

func (boolType) Name() string { return TypeBool }

func (boolType) Validate(value any) error {
	if _, ok := value.(bool); !ok {
		return fmt.Errorf("expected bool, got %T", value)
	}
	return nil
}

type sliceType struct {
	elem Type
}

func (t sliceType) Name() string { return "[" + t.elem.Name() + "]" }

func (t sliceType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("expected slice, got %T", value)
	}
	for i := 0; i < rv.Len(); i++ {
		if err := t.elem.Validate(rv.Index(i).Interface()); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

type customType struct {
	name     string
	validate func(any) error
}

func (t customType) Name() string            { return t.name }
func (t customType) Validate(value any) error { return t.validate(value) }

// String creates a string field type.
func String() Type { return stringType{} }

// Secret creates a sensitive string field type. Validation is identical to
// String; the distinct name lets interactive callers mask input.
func Secret() Type { return secretType{} }

// Int creates an integer field type.
func Int() Type { return intType{} }

// Float creates a floating-point field type.
func Float() Type { return floatType{} }

// Bool creates a boolean field type.
func Bool() Type { return boolType{} }

// Slice creates a field type for homogeneous lists of elem.
func Slice(elem Type) Type { return sliceType{elem: elem} }

// Custom creates a field type with a caller-supplied validator. The name is
// used for serialization, so round-tripping a custom type through JSON
// requires the receiving side to understand it.
func Custom(name string, validate func(any) error) Type {
	return customType{name: name, validate: validate}
}

// ParseType converts a serialized type name back into a Type.
// Slice types use bracket notation: "[string]", "[int]".
func ParseType(name string) (Type, error) {
	if len(name) > 2 && name[0] == '[' && name[len(name)-1] == ']' {
		elem, err := ParseType(name[1 : len(name)-1])
		if err != nil {
			return nil, err
		}
		return Slice(elem), nil
	}

	switch name {
	case TypeString:
		return String(), nil
	case TypeSecret:
		return Secret(), nil
	case TypeInt:
		return Int(), nil
	case TypeFloat:
		return Float(), nil
	case TypeBool:
		return Bool(), nil
	default:
		return nil, fmt.Errorf("unsupported type: %s", name)
	}
}

// ParseTypeMap converts a map of field names to type names into a Schema.
func ParseTypeMap(names map[string]string) (Schema, error) {
	result := make(Schema, len(names))
	for field, name := range names {
		t, err := ParseType(name)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field, err)
		}
		result[field] = t
	}
	return result, nil
}
