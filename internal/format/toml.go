package format

import (
	"io"

	"github.com/BurntSushi/toml"
	"go.followtheprocess.codes/annot/internal/extract"
)

// TOMLExporter is an [Exporter] that writes extracted directives as a TOML document.
//
// Each file becomes a [[files]] table with its directives and errors
// as nested arrays of tables.
type TOMLExporter struct{}

// Export implements [Exporter] for [TOMLExporter] and exports the given files
// as a complete TOML document.
func (t TOMLExporter) Export(w io.Writer, files []extract.File) error {
	encoder := toml.NewEncoder(w)
	encoder.Indent = ""

	return encoder.Encode(newDocument(files))
}
