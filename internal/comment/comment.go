// Package comment locates the comments in JavaScript-like source text, reporting
// the byte range each one occupies so that directives may be parsed out of them.
//
// It understands just enough of the host language to not be fooled by comment
// markers inside string and template literals, it is very much not a parser for
// the language itself. In particular regular expression literals are not recognised,
// so a regex containing "//" or "/*" may be mistaken for the start of a comment.
//
// Like the directive scanner, the finder is a small state machine of "findFns".
package comment

import (
	"fmt"
	"strings"

	"go.followtheprocess.codes/annot/internal/syntax"
)

// Kind distinguishes line comments from block comments.
type Kind int

// Comment kinds.
const (
	Line  Kind = iota // line
	Block             // block
)

// String implements [fmt.Stringer] for [Kind].
func (k Kind) String() string {
	switch k {
	case Line:
		return "line"
	case Block:
		return "block"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Comment is a single comment in a source text.
type Comment struct {
	Kind Kind        // Line or block
	Span syntax.Span // Exact half open byte range, including the comment markers
}

// findFn represents the state of the finder as a function that does the work
// associated with the current state, then returns the next state.
type findFn func(*finder) findFn

// finder holds the state of a single pass over the source.
type finder struct {
	src      string    // Source text
	comments []Comment // Comments found so far
	start    int       // Start of the current comment
	pos      int       // Current position in src
}

// Find returns every comment in src, in the order they appear.
//
// Line comments run up to but not including the terminating newline, block comments
// include their closing "*/". A block comment left open runs to the end of src.
func Find(src string) []Comment {
	f := &finder{src: src}

	for state := findCode; state != nil; {
		state = state(f)
	}

	return f.comments
}

// Spans is like [Find] but returns only the byte ranges.
func Spans(src string) []syntax.Span {
	comments := Find(src)

	spans := make([]syntax.Span, 0, len(comments))
	for _, comment := range comments {
		spans = append(spans, comment.Span)
	}

	return spans
}

// atEOF reports whether the finder has reached the end of the source.
func (f *finder) atEOF() bool {
	return f.pos >= len(f.src)
}

// restHasPrefix reports whether the remainder of the input begins with prefix.
func (f *finder) restHasPrefix(prefix string) bool {
	return strings.HasPrefix(f.src[f.pos:], prefix)
}

// emit records a comment spanning from start to the current position.
func (f *finder) emit(kind Kind) {
	f.comments = append(f.comments, Comment{
		Kind: kind,
		Span: syntax.Span{Start: f.start, End: f.pos},
	})
}

// findCode is the initial state, scanning ordinary source code.
func findCode(f *finder) findFn {
	for !f.atEOF() {
		switch {
		case f.restHasPrefix("//"):
			return findLineComment
		case f.restHasPrefix("/*"):
			return findBlockComment
		}

		switch f.src[f.pos] {
		case '\'', '"':
			return findString
		case '`':
			return findTemplate
		default:
			f.pos++
		}
	}

	return nil
}

// findLineComment scans a '//' comment up to the end of the line.
func findLineComment(f *finder) findFn {
	f.start = f.pos

	end := strings.IndexByte(f.src[f.pos:], '\n')
	if end == -1 {
		f.pos = len(f.src)
	} else {
		f.pos += end
	}

	f.emit(Line)

	return findCode
}

// findBlockComment scans a '/* */' comment.
func findBlockComment(f *finder) findFn {
	f.start = f.pos

	// Search after the opening marker so "/*/" is not taken as closed
	end := strings.Index(f.src[f.pos+len("/*"):], "*/")
	if end == -1 {
		f.pos = len(f.src)
	} else {
		f.pos += len("/*") + end + len("*/")
	}

	f.emit(Block)

	return findCode
}

// findString skips over a single or double quoted string literal, these
// end at the matching quote or, if unterminated, at the end of the line.
func findString(f *finder) findFn {
	quote := f.src[f.pos]
	f.pos++

	for !f.atEOF() {
		switch f.src[f.pos] {
		case '\\':
			f.pos += 2
		case quote:
			f.pos++
			return findCode
		case '\n':
			return findCode
		default:
			f.pos++
		}
	}

	return nil
}

// findTemplate skips over a template literal, which may span lines.
//
// Nested templates inside '${}' substitutions are not tracked.
func findTemplate(f *finder) findFn {
	f.pos++

	for !f.atEOF() {
		switch f.src[f.pos] {
		case '\\':
			f.pos += 2
		case '`':
			f.pos++
			return findCode
		default:
			f.pos++
		}
	}

	return nil
}
