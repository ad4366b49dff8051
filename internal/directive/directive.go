// Package directive provides the Directive type, the flat, validated record extracted
// from a single directive comment, along with the registry of recognised annotations
// and the builder the parser uses to assemble directives.
//
// A directive is written inside a comment like so:
//
//	/**
//	 * @RootComponent
//	 * pageTypes = product_page, product_page_special
//	 * description = 'Basic Product Page'
//	 */
//
// And becomes a [Directive] with Type "RootComponent" and two fields, one holding
// a list of two strings, the other a single string.
package directive

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"slices"
	"strings"

	"go.yaml.in/yaml/v4"
)

// TypeField is the name of the field holding a directive's type in its serialised form.
const TypeField = "type"

// Value is the value of a single directive field, either a scalar string or
// a non-empty list of strings.
//
// The zero Value is the empty scalar string.
type Value struct {
	scalar string   // The scalar value, unused if list is non-nil
	list   []string // The list value, nil for scalars
}

// Scalar returns a scalar [Value].
func Scalar(s string) Value {
	return Value{scalar: s}
}

// List returns a list [Value] holding a copy of items.
//
// Calling List with no items still returns a list, albeit an empty one, which
// a [Builder] will refuse to accept.
func List(items ...string) Value {
	list := make([]string, len(items))
	copy(list, items)

	return Value{list: list}
}

// IsList reports whether v holds a list.
func (v Value) IsList() bool {
	return v.list != nil
}

// Scalar returns the scalar string held by v, and whether v is a scalar at all.
func (v Value) Scalar() (string, bool) {
	if v.IsList() {
		return "", false
	}

	return v.scalar, true
}

// List returns a copy of the list held by v, and whether v is a list at all.
func (v Value) List() ([]string, bool) {
	if !v.IsList() {
		return nil, false
	}

	return slices.Clone(v.list), true
}

// Strings returns the value as a slice of strings regardless of its shape, a
// scalar becomes a single element slice.
func (v Value) Strings() []string {
	if v.IsList() {
		return slices.Clone(v.list)
	}

	return []string{v.scalar}
}

// Any returns the value as a string or a []string, suitable for generic encoders.
func (v Value) Any() any {
	if v.IsList() {
		return slices.Clone(v.list)
	}

	return v.scalar
}

// Equal reports whether v and other hold the same shape and contents.
func (v Value) Equal(other Value) bool {
	if v.IsList() != other.IsList() {
		return false
	}

	if v.IsList() {
		return slices.Equal(v.list, other.list)
	}

	return v.scalar == other.scalar
}

// String implements [fmt.Stringer] for a [Value], lists are rendered comma separated
// as they would be written in a directive and scalars are quoted.
func (v Value) String() string {
	if v.IsList() {
		return strings.Join(v.list, ", ")
	}

	return fmt.Sprintf("%q", v.scalar)
}

// MarshalJSON implements [json.Marshaler] for [Value].
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}

// MarshalYAML implements [yaml.Marshaler] for [Value].
func (v Value) MarshalYAML() (any, error) {
	return v.Any(), nil
}

// Field is a single named field of a [Directive].
type Field struct {
	Name  string
	Value Value
}

// Directive is the structured record extracted from a single directive comment.
//
// Its Type is always a member of the [Registry] it was built against, a Directive
// whose annotation was not recognised is never produced. Fields keep the order in
// which they were first assigned.
//
// Directives are immutable once built.
type Directive struct {
	index  map[string]int // Field name to index in fields
	Type   string         // The annotation name e.g. "RootComponent"
	fields []Field        // Fields in insertion order
}

// Get returns the value of the named field and whether it was present.
//
// The "type" field is reported like any other.
func (d *Directive) Get(name string) (Value, bool) {
	if name == TypeField {
		return Scalar(d.Type), true
	}

	i, ok := d.index[name]
	if !ok {
		return Value{}, false
	}

	return d.fields[i].Value, true
}

// Len returns the number of fields in the directive, not counting its type.
func (d *Directive) Len() int {
	return len(d.fields)
}

// Fields returns an iterator over the directive's fields in insertion order,
// not including its type.
func (d *Directive) Fields() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, field := range d.fields {
			if !yield(field.Name, field.Value) {
				return
			}
		}
	}
}

// Map returns the directive as a flat map of field name to either a string or
// a []string, including the "type" field.
func (d *Directive) Map() map[string]any {
	m := make(map[string]any, len(d.fields)+1)
	m[TypeField] = d.Type

	for name, value := range d.Fields() {
		m[name] = value.Any()
	}

	return m
}

// String implements [fmt.Stringer] for a [Directive], rendering it in the
// directive syntax it could have been parsed from.
func (d *Directive) String() string {
	s := &strings.Builder{}
	fmt.Fprintf(s, "@%s", d.Type)

	for name, value := range d.Fields() {
		fmt.Fprintf(s, "\n%s = %s", name, value)
	}

	return s.String()
}

// MarshalJSON implements [json.Marshaler] for a [Directive].
//
// The result is a single flat JSON object with "type" first and the remaining
// fields in insertion order.
func (d *Directive) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')

	if err := writeJSONMember(buf, TypeField, Scalar(d.Type)); err != nil {
		return nil, err
	}

	for name, value := range d.Fields() {
		buf.WriteByte(',')

		if err := writeJSONMember(buf, name, value); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalYAML implements [yaml.Marshaler] for a [Directive], producing an
// ordered mapping with "type" first.
func (d *Directive) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	if err := appendYAMLMember(node, TypeField, Scalar(d.Type)); err != nil {
		return nil, err
	}

	for name, value := range d.Fields() {
		if err := appendYAMLMember(node, name, value); err != nil {
			return nil, err
		}
	}

	return node, nil
}

// writeJSONMember writes a single "key": value pair to buf.
func writeJSONMember(buf *bytes.Buffer, name string, value Value) error {
	key, err := json.Marshal(name)
	if err != nil {
		return fmt.Errorf("could not encode field name %q: %w", name, err)
	}

	val, err := value.MarshalJSON()
	if err != nil {
		return fmt.Errorf("could not encode value of field %q: %w", name, err)
	}

	buf.Write(key)
	buf.WriteByte(':')
	buf.Write(val)

	return nil
}

// appendYAMLMember appends a key and value node to the mapping node.
func appendYAMLMember(mapping *yaml.Node, name string, value Value) error {
	key := &yaml.Node{}
	if err := key.Encode(name); err != nil {
		return fmt.Errorf("could not encode field name %q: %w", name, err)
	}

	val := &yaml.Node{}
	if err := val.Encode(value.Any()); err != nil {
		return fmt.Errorf("could not encode value of field %q: %w", name, err)
	}

	mapping.Content = append(mapping.Content, key, val)

	return nil
}
