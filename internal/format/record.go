package format

import (
	"go.followtheprocess.codes/annot/internal/extract"
	"go.followtheprocess.codes/annot/internal/syntax"
)

// document is the plain data form of a set of extracted files, used by the
// encoders that cannot make use of the custom marshalling on directives.
type document struct {
	Files []file `toml:"files" msgpack:"files"`
}

// file is the plain data form of a single [extract.File].
type file struct {
	Name       string           `toml:"name"                 msgpack:"name"`
	Directives []map[string]any `toml:"directives,omitempty" msgpack:"directives"`
	Errors     []diagnostic     `toml:"errors,omitempty"     msgpack:"errors"`
}

// diagnostic is the plain data form of a [syntax.Diagnostic].
//
// Line and column are omitted when the diagnostic has no position. Lines are
// 1 indexed and columns are 0 indexed byte offsets, the same as the JSON and
// YAML exports.
type diagnostic struct {
	Message string `toml:"message"          msgpack:"message"`
	Line    int    `toml:"line,omitempty"   msgpack:"line,omitempty"`
	Column  int    `toml:"column,omitempty" msgpack:"column,omitempty"`
	Start   int    `toml:"start"            msgpack:"start"`
	End     int    `toml:"end"              msgpack:"end"`
}

// newDocument converts extracted files to their plain data form.
func newDocument(files []extract.File) document {
	doc := document{Files: make([]file, 0, len(files))}

	for _, f := range files {
		doc.Files = append(doc.Files, newFile(f))
	}

	return doc
}

func newFile(f extract.File) file {
	out := file{
		Name:       f.Name,
		Directives: make([]map[string]any, 0, len(f.Directives)),
		Errors:     make([]diagnostic, 0, len(f.Errors)),
	}

	for _, d := range f.Directives {
		out.Directives = append(out.Directives, d.Map())
	}

	for _, diag := range f.Errors {
		out.Errors = append(out.Errors, newDiagnostic(diag))
	}

	return out
}

func newDiagnostic(diag syntax.Diagnostic) diagnostic {
	out := diagnostic{
		Message: diag.Msg,
		Start:   diag.Span.Start,
		End:     diag.Span.End,
	}

	if diag.HasPosition() {
		out.Line = diag.Position.Line
		out.Column = diag.Position.Column
	}

	return out
}
