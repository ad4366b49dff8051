package directive

import (
	"errors"
	"fmt"
)

// Builder accumulates a [Directive] one field at a time, validating each
// field as it is set.
//
// Builders are single use and not safe for concurrent use.
type Builder struct {
	registry Registry
	index    map[string]int
	typ      string
	fields   []Field
}

// NewBuilder returns a [Builder] that validates directive types against registry.
func NewBuilder(registry Registry) *Builder {
	return &Builder{
		registry: registry,
		index:    make(map[string]int),
	}
}

// SetType sets the directive's type, which must be a registered annotation.
//
// Setting the type more than once replaces it.
func (b *Builder) SetType(name string) error {
	if !b.registry.Has(name) {
		return fmt.Errorf("Unrecognized Directive: %s", name) //nolint:staticcheck // Capitalised for compatibility with existing tooling
	}

	b.typ = name

	return nil
}

// Set assigns value to the named field.
//
// Assigning to a field a second time replaces its value but keeps its original
// position in the field order. The "type" field may only be set by [Builder.SetType]
// and list values must contain at least one item.
func (b *Builder) Set(name string, value Value) error {
	if name == TypeField {
		return fmt.Errorf("Field %q is reserved", name) //nolint:staticcheck // Capitalised to match the other directive errors
	}

	if value.IsList() && len(value.list) == 0 {
		return fmt.Errorf("Field %q has an empty list", name) //nolint:staticcheck // Capitalised to match the other directive errors
	}

	if i, exists := b.index[name]; exists {
		b.fields[i].Value = value
		return nil
	}

	b.index[name] = len(b.fields)
	b.fields = append(b.fields, Field{Name: name, Value: value})

	return nil
}

// Build returns the finished [Directive].
//
// It is an error to build a directive that never had its type set.
func (b *Builder) Build() (*Directive, error) {
	if b.typ == "" {
		return nil, errors.New("Directive has no type") //nolint:staticcheck // Capitalised to match the other directive errors
	}

	index := make(map[string]int, len(b.fields))
	fields := make([]Field, len(b.fields))

	for i, field := range b.fields {
		index[field.Name] = i
		fields[i] = field

		if field.Value.IsList() {
			fields[i].Value = List(field.Value.list...)
		}
	}

	return &Directive{
		index:  index,
		Type:   b.typ,
		fields: fields,
	}, nil
}
