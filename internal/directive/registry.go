package directive

import (
	"maps"
	"slices"

	"github.com/creachadair/mds/mapset"
)

// RootComponent is the annotation marking a file's default export as the root
// component for a set of page types.
const RootComponent = "RootComponent"

// Registry is the closed set of annotation names a directive's type may take.
//
// The zero Registry is empty and recognises nothing.
type Registry struct {
	names mapset.Set[string]
}

// NewRegistry returns a [Registry] recognising exactly the given names.
func NewRegistry(names ...string) Registry {
	return Registry{names: mapset.New(names...)}
}

// DefaultRegistry returns the [Registry] of annotations known out of the box.
func DefaultRegistry() Registry {
	return NewRegistry(RootComponent)
}

// With returns a new [Registry] containing everything in r plus the extra names.
//
// r itself is not modified.
func (r Registry) With(names ...string) Registry {
	return NewRegistry(append(r.Names(), names...)...)
}

// Has reports whether name is a registered annotation.
func (r Registry) Has(name string) bool {
	return r.names.Has(name)
}

// Len returns the number of registered annotations.
func (r Registry) Len() int {
	return len(r.names)
}

// Names returns the registered annotation names in sorted order.
func (r Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.names))
}
