package advisor

import (
	"fmt"
	"slices"
)

// FieldType is the JSON type a structured response field must carry.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeBool    FieldType = "bool"
	TypeStrings FieldType = "strings"
	TypeEnum    FieldType = "enum"
)

// Field describes one required response field.
type Field struct {
	Name string
	Type FieldType
	Enum []string
}

// Schema lists the fields a structured response must contain.
type Schema struct {
	Fields []Field
}

// NewSchema creates a schema from the given fields.
func NewSchema(fields ...Field) *Schema {
	return &Schema{Fields: fields}
}

// Validate checks that every schema field is present in fields with the
// declared type. Errors wrap ErrMalformed.
func (s *Schema) Validate(fields map[string]any) error {
	if fields == nil {
		return fmt.Errorf("%w: no JSON object in response", ErrMalformed)
	}

	for _, f := range s.Fields {
		v, ok := fields[f.Name]
		if !ok || v == nil {
			return fmt.Errorf("%w: missing field %s", ErrMalformed, f.Name)
		}
		if err := f.check(v); err != nil {
			return fmt.Errorf("%w: field %s: %w", ErrMalformed, f.Name, err)
		}
	}

	return nil
}

func (f Field) check(v any) error {
	switch f.Type {
	case TypeString:
		if _, ok := v.(string); !ok {
			return fmt.Errorf("expected string, got %T", v)
		}
	case TypeBool:
		if _, ok := v.(bool); !ok {
			return fmt.Errorf("expected bool, got %T", v)
		}
	case TypeStrings:
		items, ok := v.([]any)
		if !ok {
			return fmt.Errorf("expected array, got %T", v)
		}
		for i, item := range items {
			if _, ok := item.(string); !ok {
				return fmt.Errorf("element %d: expected string, got %T", i, item)
			}
		}
	case TypeEnum:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", v)
		}
		if !slices.Contains(f.Enum, s) {
			return fmt.Errorf("%q not in %v", s, f.Enum)
		}
	default:
		return fmt.Errorf("unknown field type %q", f.Type)
	}
	return nil
}
