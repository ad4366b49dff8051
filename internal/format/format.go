// Package format provides mechanisms for exporting extracted directives into
// external formats.
//
// Notably, the package provides the [Exporter] interface for doing this in a
// format-agnostic way, along with the built in exporters: JSON, YAML, TOML, msgpack
// and a plain text summary.
package format

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"go.followtheprocess.codes/annot/internal/extract"
)

// Exporter is the interface defining a mechanism for exporting the directives
// extracted from a set of files into an external format.
type Exporter interface {
	// Export exports the extracted files into an external format, written to w.
	Export(w io.Writer, files []extract.File) error
}

// Names of the built in exporters.
const (
	JSON    = "json"
	YAML    = "yaml"
	TOML    = "toml"
	Msgpack = "msgpack"
	Text    = "text"
)

// Names returns the names of all the built in exporters, sorted.
func Names() []string {
	names := []string{JSON, YAML, TOML, Msgpack, Text}
	slices.Sort(names)

	return names
}

// New returns the built in [Exporter] with the given name.
//
// Names are case insensitive, an unknown name is an error.
func New(name string) (Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case JSON:
		return JSONExporter{}, nil
	case YAML, "yml":
		return YAMLExporter{}, nil
	case TOML:
		return TOMLExporter{}, nil
	case Msgpack:
		return MsgpackExporter{}, nil
	case Text, "txt":
		return TextExporter{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q, expected one of %s", name, strings.Join(Names(), ", "))
	}
}
