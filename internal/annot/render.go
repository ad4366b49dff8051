package annot

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"go.followtheprocess.codes/annot/internal/syntax"
	"go.followtheprocess.codes/hue"
)

// Styles.
const (
	// errorStyle is the style used for the "Error" label heading each diagnostic.
	errorStyle = hue.Red | hue.Bold

	// caretStyle is the style used for the caret pointing at the problem.
	caretStyle = hue.Red | hue.Bold

	// gutterStyle is the style used for line numbers and the gutter separator.
	gutterStyle = hue.BrightBlack

	// dimmed is the style used for informational notes.
	dimmed = hue.BrightBlack | hue.Italic
)

// renderDiagnostic writes a diagnostic raised in the file called name to w, showing
// the offending source line with a caret underneath the problem.
//
// Lexical diagnostics point at the exact character, grammar diagnostics carry no
// position so the caret points at the start of the comment they were raised in.
func renderDiagnostic(w io.Writer, name, src string, diag syntax.Diagnostic) {
	pos := diag.Position
	exact := diag.HasPosition()

	if !exact {
		pos = syntax.Resolve(src, diag.Span.Start)
	}

	fmt.Fprintf(w, "%s: %s:%s: %s\n", errorStyle.Text("Error"), name, pos, diag.Msg)

	line := lineAt(src, pos)
	number := strconv.Itoa(pos.Line)
	gutter := strings.Repeat(" ", len(number))

	fmt.Fprintf(w, " %s %s %s\n", gutterStyle.Text(number), gutterStyle.Text("|"), line)
	fmt.Fprintf(w, " %s %s %s%s", gutter, gutterStyle.Text("|"), padding(line, pos.Column), caretStyle.Text("^"))

	if !exact {
		fmt.Fprintf(w, " %s", dimmed.Text("in this comment"))
	}

	fmt.Fprintln(w)
}

// lineAt returns the full line of src containing pos, without its line ending.
func lineAt(src string, pos syntax.Position) string {
	start := max(0, pos.Offset-pos.Column)
	end := strings.IndexByte(src[start:], '\n')

	if end == -1 {
		end = len(src)
	} else {
		end += start
	}

	return strings.TrimSuffix(src[start:end], "\r")
}

// padding returns the whitespace needed to align a caret under the column'th byte
// of line.
//
// Tabs are preserved, wide characters take as many cells as they occupy on screen.
func padding(line string, column int) string {
	s := &strings.Builder{}

	for _, char := range line[:min(column, len(line))] {
		if char == '\t' {
			s.WriteByte('\t')
			continue
		}

		s.WriteString(strings.Repeat(" ", runewidth.RuneWidth(char)))
	}

	return s.String()
}
