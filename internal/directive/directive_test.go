package directive_test

import (
	"encoding/json"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.followtheprocess.codes/annot/internal/directive"
	"go.followtheprocess.codes/test"
	"go.yaml.in/yaml/v4"
)

func TestRegistry(t *testing.T) {
	registry := directive.DefaultRegistry()

	test.True(t, registry.Has("RootComponent"))
	test.False(t, registry.Has("Unknown"))
	test.False(t, registry.Has("rootcomponent"))
	test.Equal(t, registry.Len(), 1)

	extended := registry.With("Layout", "Slot")
	test.Equal(t, extended.Len(), 3)
	test.True(t, extended.Has("Layout"))
	test.Equal(t, strings.Join(extended.Names(), ","), "Layout,RootComponent,Slot")

	// The original is untouched
	test.False(t, registry.Has("Layout"))

	var empty directive.Registry
	test.False(t, empty.Has("RootComponent"))
	test.Equal(t, empty.Len(), 0)
}

func TestValue(t *testing.T) {
	scalar := directive.Scalar("Basic Product Page")
	list := directive.List("product_page", "product_page_special")

	s, ok := scalar.Scalar()
	test.True(t, ok)
	test.Equal(t, s, "Basic Product Page")
	test.False(t, scalar.IsList())

	_, ok = scalar.List()
	test.False(t, ok)

	items, ok := list.List()
	test.True(t, ok)
	test.True(t, list.IsList())
	test.True(t, slices.Equal(items, []string{"product_page", "product_page_special"}))

	_, ok = list.Scalar()
	test.False(t, ok)

	test.Equal(t, scalar.String(), `"Basic Product Page"`)
	test.Equal(t, list.String(), "product_page, product_page_special")

	test.True(t, slices.Equal(scalar.Strings(), []string{"Basic Product Page"}))

	// A one element list is not the same as a scalar
	test.False(t, directive.List("foo").Equal(directive.Scalar("foo")))
	test.True(t, directive.List("a", "b").Equal(directive.List("a", "b")))
	test.False(t, directive.List("a", "b").Equal(directive.List("b", "a")))

	// An empty list is still a list
	test.True(t, directive.List().IsList())
}

func TestValueIsCopied(t *testing.T) {
	items := []string{"a", "b"}
	value := directive.List(items...)

	items[0] = "changed"

	got, _ := value.List()
	test.Equal(t, got[0], "a")

	got[1] = "changed"

	again, _ := value.List()
	test.Equal(t, again[1], "b")
}

func TestBuilder(t *testing.T) {
	b := directive.NewBuilder(directive.DefaultRegistry())

	test.Ok(t, b.SetType("RootComponent"))
	test.Ok(t, b.Set("pageTypes", directive.List("product_page", "product_page_special")))
	test.Ok(t, b.Set("description", directive.Scalar("Basic Product Page")))

	d, err := b.Build()
	test.Ok(t, err)

	test.Equal(t, d.Type, "RootComponent")
	test.Equal(t, d.Len(), 2)

	want := map[string]any{
		"type":        "RootComponent",
		"pageTypes":   []string{"product_page", "product_page_special"},
		"description": "Basic Product Page",
	}

	if diff := cmp.Diff(want, d.Map()); diff != "" {
		t.Errorf("Map() mismatch (-want +got):\n%s", diff)
	}

	typ, ok := d.Get("type")
	test.True(t, ok)
	test.True(t, typ.Equal(directive.Scalar("RootComponent")))

	_, ok = d.Get("missing")
	test.False(t, ok)
}

func TestBuilderErrors(t *testing.T) {
	tests := []struct {
		build   func(b *directive.Builder) error // Builder steps under test
		name    string                           // Name of the test case
		wantErr string                           // Expected error message
	}{
		{
			name:    "unrecognised type",
			build:   func(b *directive.Builder) error { return b.SetType("Unknown") },
			wantErr: "Unrecognized Directive: Unknown",
		},
		{
			name:    "reserved field",
			build:   func(b *directive.Builder) error { return b.Set("type", directive.Scalar("Other")) },
			wantErr: `Field "type" is reserved`,
		},
		{
			name:    "empty list",
			build:   func(b *directive.Builder) error { return b.Set("pageTypes", directive.List()) },
			wantErr: `Field "pageTypes" has an empty list`,
		},
		{
			name: "no type",
			build: func(b *directive.Builder) error {
				_, err := b.Build()
				return err
			},
			wantErr: "Directive has no type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build(directive.NewBuilder(directive.DefaultRegistry()))
			test.Err(t, err)
			test.Equal(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBuilderReassignKeepsOrder(t *testing.T) {
	b := directive.NewBuilder(directive.DefaultRegistry())

	test.Ok(t, b.SetType("RootComponent"))
	test.Ok(t, b.Set("a", directive.Scalar("1")))
	test.Ok(t, b.Set("b", directive.Scalar("2")))
	test.Ok(t, b.Set("a", directive.List("x", "y")))

	d, err := b.Build()
	test.Ok(t, err)

	var names []string
	for name := range d.Fields() {
		names = append(names, name)
	}

	test.Equal(t, strings.Join(names, ","), "a,b")

	a, ok := d.Get("a")
	test.True(t, ok)
	test.True(t, a.Equal(directive.List("x", "y")))
}

func TestDirectiveString(t *testing.T) {
	b := directive.NewBuilder(directive.DefaultRegistry())
	test.Ok(t, b.SetType("RootComponent"))
	test.Ok(t, b.Set("pageTypes", directive.List("foo", "bizz")))
	test.Ok(t, b.Set("description", directive.Scalar("hey")))

	d, err := b.Build()
	test.Ok(t, err)

	want := "@RootComponent\npageTypes = foo, bizz\ndescription = \"hey\""
	test.Diff(t, d.String(), want)
}

func TestMarshalJSON(t *testing.T) {
	b := directive.NewBuilder(directive.DefaultRegistry())
	test.Ok(t, b.SetType("RootComponent"))
	test.Ok(t, b.Set("pageTypes", directive.List("product_page", "product_page_special")))
	test.Ok(t, b.Set("description", directive.Scalar("Basic Product Page")))

	d, err := b.Build()
	test.Ok(t, err)

	got, err := json.Marshal(d)
	test.Ok(t, err)

	want := `{"type":"RootComponent","pageTypes":["product_page","product_page_special"],"description":"Basic Product Page"}`
	test.Diff(t, string(got), want)
}

func TestMarshalYAML(t *testing.T) {
	b := directive.NewBuilder(directive.DefaultRegistry())
	test.Ok(t, b.SetType("RootComponent"))
	test.Ok(t, b.Set("pageTypes", directive.List("product_page", "product_page_special")))
	test.Ok(t, b.Set("description", directive.Scalar("Basic Product Page")))

	d, err := b.Build()
	test.Ok(t, err)

	got, err := yaml.Marshal(d)
	test.Ok(t, err)

	// Round trip through a generic map, the ordering is checked by the prefix
	var decoded map[string]any

	test.Ok(t, yaml.Unmarshal(got, &decoded))

	want := map[string]any{
		"type":        "RootComponent",
		"pageTypes":   []any{"product_page", "product_page_special"},
		"description": "Basic Product Page",
	}

	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Errorf("YAML round trip mismatch (-want +got):\n%s", diff)
	}

	test.True(t, strings.HasPrefix(string(got), "type: RootComponent\npageTypes:"), test.Context("got:\n%s", got))
}
