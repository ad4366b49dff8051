package format

import (
	"fmt"
	"io"
	"strings"

	"go.followtheprocess.codes/annot/internal/extract"
)

// TextExporter is an [Exporter] that writes a plain, human readable summary
// of the extracted directives.
type TextExporter struct{}

// Export implements [Exporter] for [TextExporter].
func (t TextExporter) Export(w io.Writer, files []extract.File) error {
	s := &strings.Builder{}

	for i, file := range files {
		if i > 0 {
			s.WriteByte('\n')
		}

		fmt.Fprintf(
			s,
			"%s: %s, %s\n",
			file.Name,
			plural(len(file.Directives), "directive"),
			plural(len(file.Errors), "error"),
		)

		for _, found := range file.Directives {
			for line := range strings.Lines(found.String()) {
				fmt.Fprintf(s, "  %s", line)
			}

			s.WriteByte('\n')
		}

		for _, diag := range file.Errors {
			fmt.Fprintf(s, "  error %s: %s", diag.Span, diag)
		}
	}

	_, err := io.WriteString(w, s.String())

	return err
}

// plural formats n alongside word, pluralised if n is not 1.
func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}

	return fmt.Sprintf("%d %ss", n, word)
}
