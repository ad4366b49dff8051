package format

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"go.followtheprocess.codes/annot/internal/extract"
)

// MsgpackExporter is an [Exporter] that writes extracted directives in
// the binary msgpack format.
//
// The document has the same shape as the TOML export, keys of every
// map are sorted so the output is deterministic.
type MsgpackExporter struct{}

// Export implements [Exporter] for [MsgpackExporter].
func (m MsgpackExporter) Export(w io.Writer, files []extract.File) error {
	encoder := msgpack.NewEncoder(w)
	encoder.SetSortMapKeys(true)

	return encoder.Encode(newDocument(files))
}
