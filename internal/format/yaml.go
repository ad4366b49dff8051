package format

import (
	"io"

	"go.followtheprocess.codes/annot/internal/extract"
	"go.yaml.in/yaml/v4"
)

const yamlIndent = 2

// YAMLExporter is an [Exporter] that writes extracted directives as a YAML document.
type YAMLExporter struct{}

// Export implements [Exporter] for [YAMLExporter] and exports the given files as
// a complete YAML document.
func (y YAMLExporter) Export(w io.Writer, files []extract.File) error {
	if files == nil {
		files = []extract.File{}
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(yamlIndent)

	if err := encoder.Encode(files); err != nil {
		return err
	}

	return encoder.Close()
}
