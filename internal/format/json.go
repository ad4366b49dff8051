package format

import (
	"encoding/json"
	"io"

	"go.followtheprocess.codes/annot/internal/extract"
)

// JSONExporter is an [Exporter] that writes extracted directives as a JSON document.
type JSONExporter struct{}

// Export implements [Exporter] for [JSONExporter] and exports the given files
// as a single JSON array, one object per file.
func (j JSONExporter) Export(w io.Writer, files []extract.File) error {
	if files == nil {
		files = []extract.File{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(files)
}
