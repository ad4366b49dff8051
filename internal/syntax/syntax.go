// Package syntax handles turning the raw text of directive comments into meaningful
// data structures. The tokeniser and parser live in sub packages, this package holds
// the source positions, spans and diagnostics they share.
package syntax

import (
	"fmt"
	"strings"
)

// Position is a resolved source position.
//
// Positions are computed on demand from a byte offset into the full source text
// by [Resolve], they are never tracked incrementally by the scanner.
type Position struct {
	Offset int `json:"offset" yaml:"offset"` // Byte offset of the position from the start of the text
	Line   int `json:"line"   yaml:"line"`   // Line number (1 indexed)
	Column int `json:"column" yaml:"column"` // Byte offset from the start of the line (0 indexed)
}

// IsValid reports whether the [Position] describes a valid source position.
//
// The zero Position is invalid, which is how grammar level diagnostics with no
// location are represented.
func (p Position) IsValid() bool {
	return p.Line >= 1 && p.Column >= 0 && p.Offset >= 0
}

// String returns a string representation of a [Position] in the form "line:column".
//
// The column is rendered 1 indexed, so that most text editors and terminals will be able
// to navigate to it.
func (p Position) String() string {
	if !p.IsValid() {
		return fmt.Sprintf("BadPosition: {Offset: %d, Line: %d, Column: %d}", p.Offset, p.Line, p.Column)
	}

	return fmt.Sprintf("%d:%d", p.Line, p.Column+1)
}

// Resolve maps an absolute byte offset into src to a [Position].
//
// The line is 1 plus the number of newlines in src[:offset], the column is the number
// of bytes between the last of those newlines and offset. Offsets outside src are clamped
// to its bounds.
func Resolve(src string, offset int) Position {
	offset = max(0, min(offset, len(src)))

	before := src[:offset]
	line := 1 + strings.Count(before, "\n")
	column := offset - (strings.LastIndexByte(before, '\n') + 1)

	return Position{
		Offset: offset,
		Line:   line,
		Column: column,
	}
}

// Location is the resolved start and end of a range of source text.
type Location struct {
	Start Position `json:"start" yaml:"start"`
	End   Position `json:"end"   yaml:"end"`
}

// Span is a half open [Start, End) range of byte offsets into a larger source text,
// typically identifying a single comment.
type Span struct {
	Start int `json:"start" yaml:"start"` // Byte offset of the first character in the span
	End   int `json:"end"   yaml:"end"`   // Byte offset one past the last character in the span
}

// Len returns the number of bytes covered by the span, an inverted span has length 0.
func (s Span) Len() int {
	return max(0, s.End-s.Start)
}

// String implements [fmt.Stringer] for a [Span].
func (s Span) String() string {
	return fmt.Sprintf("[%d, %d)", s.Start, s.End)
}

// Diagnostic is a syntax level diagnostic, raised by either the scanner or
// the parser.
//
// Diagnostics from the scanner always carry a valid Position pointing at the offending
// character, those from the parser do not and Position is left as the zero value.
type Diagnostic struct {
	Msg      string   `json:"message"           yaml:"message"`            // A descriptive message explaining the error
	Position Position `json:"location,omitzero" yaml:"location,omitempty"` // The source position the diagnostic points to, if known
	Span     Span     `json:"span,omitzero"     yaml:"span,omitempty"`     // The comment the diagnostic was raised in, if known
}

// HasPosition reports whether the diagnostic points at a specific source position.
func (d Diagnostic) HasPosition() bool {
	return d.Position.IsValid()
}

// Error implements the error interface for [Diagnostic], returning just the message
// so that it matches exactly what was reported.
func (d Diagnostic) Error() string {
	return d.Msg
}

// String prints a [Diagnostic] with its position if it has one.
func (d Diagnostic) String() string {
	if d.HasPosition() {
		return d.Position.String() + ": " + d.Msg + "\n"
	}

	return d.Msg + "\n"
}
