// Package scanner implements the lexical scanner for directive comments, reading a
// bounded range of the raw source text and producing the ordered sequence of tokens
// to be consumed by the parser.
//
// The scanner is a state-function based scanner similar to that described by Rob Pike
// in his talk [Lexical Scanning in Go]. Unlike the version in that talk, it is not
// concurrent: the ranges scanned are single comments so the whole token sequence is
// collected synchronously into a slice and handed back in one go.
//
// The scanner proceeds one utf-8 rune at a time until a particular token is recognised,
// the token is then "emitted" onto the end of the token slice.
//
// The 'run' method consumes these "scanFns" which return states in a continual loop until
// nil is returned marking the fact that either "there is nothing more to scan" or
// "we've hit an error".
//
// [Lexical Scanning in Go]: https://go.dev/talks/2011/lex.slide#1
package scanner

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"go.followtheprocess.codes/annot/internal/syntax"
	"go.followtheprocess.codes/annot/internal/syntax/token"
)

const (
	eof       = rune(-1) // eof signifies we have reached the end of the scanned range.
	tokenHint = 16       // initial capacity of the token slice, most directives are short
)

// scanFn represents the state of the scanner as a function that does the work
// associated with the current state, then returns the next state.
type scanFn func(*Scanner) scanFn

// Scanner is the directive comment scanner.
type Scanner struct {
	diagnostic *syntax.Diagnostic // The diagnostic that stopped scanning, if any
	src        string             // The full source text, offsets are absolute into this
	tokens     []token.Token      // Tokens scanned so far
	start      int                // The start position of the current token
	pos        int                // Current scanner position in src (bytes, 0 indexed)
	end        int                // Offset at which scanning must stop, never passed
}

// New returns a new [Scanner] over the half open range [start, end) of src.
//
// Offsets are always into the full src, not a substring, so that token positions
// are in absolute document coordinates. The range is clamped to the bounds of src.
func New(src string, start, end int) *Scanner {
	start = max(0, min(start, len(src)))
	end = max(start, min(end, len(src)))

	return &Scanner{
		src:    src,
		tokens: make([]token.Token, 0, tokenHint),
		start:  start,
		pos:    start,
		end:    end,
	}
}

// Tokenize scans the range [start, end) of src, returning the tokens it contains.
//
// On a lexical error, the tokens found before the failure are returned along with
// a [syntax.Diagnostic] describing it, callers must not expect the tokens to cover
// the entire range in that case.
func Tokenize(src string, start, end int) ([]token.Token, error) {
	s := New(src, start, end)
	s.run()

	if s.diagnostic != nil {
		return s.tokens, *s.diagnostic
	}

	return s.tokens, nil
}

// next returns the next utf8 rune in the range, or [eof], and advances the scanner
// over that rune such that successive calls to [Scanner.next] iterate through
// the range one rune at a time.
func (s *Scanner) next() rune {
	if s.pos >= s.end {
		return eof
	}

	char, width := utf8.DecodeRuneInString(s.src[s.pos:s.end])
	s.pos += width

	return char
}

// peek returns the next utf8 rune in the range, or [eof], but does not
// advance the scanner.
//
// Successive calls to peek simply return the same rune again and again.
func (s *Scanner) peek() rune {
	if s.pos >= s.end {
		return eof
	}

	char, _ := utf8.DecodeRuneInString(s.src[s.pos:s.end])

	return char
}

// skip ignores any characters for which the predicate returns true, stopping at the
// first one that returns false such that after it returns, [Scanner.next] returns the
// first 'false' char.
//
// The scanner start position is brought up to the current position before returning, effectively
// ignoring everything it's travelled over in the meantime.
func (s *Scanner) skip(predicate func(r rune) bool) {
	for predicate(s.peek()) {
		s.next()
	}

	s.start = s.pos
}

// discard brings the start position up to the current position, throwing away
// anything consumed since the last emit.
func (s *Scanner) discard() {
	s.start = s.pos
}

// takeWhile consumes characters so long as the predicate returns true, stopping at the
// first one that returns false such that after it returns, [Scanner.next] returns the first 'false' rune.
func (s *Scanner) takeWhile(predicate func(r rune) bool) {
	for predicate(s.peek()) {
		s.next()
	}
}

// emit appends a token of the given kind to the token slice, using the scanner's
// internal state to populate position information.
func (s *Scanner) emit(kind token.Kind, value string) {
	s.tokens = append(s.tokens, token.New(s.src, kind, value, s.start, s.pos))
	s.start = s.pos
}

// run starts the state machine for the scanner, it runs with each [scanFn] returning the next
// state until one returns nil (typically in response to an error or the end of the range).
func (s *Scanner) run() {
	for state := scanStart; state != nil; {
		state = state(s)
	}
}

// error records a diagnostic at the scanner's current position and returns
// a nil scanFn, stopping the state machine.
func (s *Scanner) error(msg string) scanFn {
	s.diagnostic = &syntax.Diagnostic{
		Msg:      msg,
		Position: syntax.Resolve(s.src, s.pos),
	}

	return nil
}

// errorf calls error with a formatted message.
func (s *Scanner) errorf(format string, a ...any) scanFn {
	return s.error(fmt.Sprintf(format, a...))
}

// scanStart is the initial state of the scanner, it is also the state
// returned to after every token.
func scanStart(s *Scanner) scanFn {
	s.skip(isSpace)

	char := s.peek()

	switch {
	case char == eof:
		return nil
	case isIdent(char):
		return scanIdent
	}

	switch char {
	case '\'', '"':
		return scanString
	case '@':
		s.next()
		s.emit(token.At, "")
	case '=':
		s.next()
		s.emit(token.Assign, "")
	case ',':
		s.next()
		s.emit(token.Comma, "")
	case '*', '/':
		// Comment decoration: leading asterisks and the opening or closing
		// markers themselves, none of which mean anything to a directive
		s.next()
		s.discard()
	default:
		return s.errorf("Unknown token \"%s\"", string(char))
	}

	return scanStart
}

// scanIdent scans a maximal run of identifier characters.
func scanIdent(s *Scanner) scanFn {
	s.takeWhile(isIdent)
	s.emit(token.Ident, s.src[s.start:s.pos])

	return scanStart
}

// scanString scans a single or double quoted string.
//
// The contents are taken verbatim, there are no escape sequences, and a string
// may not span multiple lines.
func scanString(s *Scanner) scanFn {
	quote := s.next()

	for {
		switch s.peek() {
		case quote:
			s.next()
			// Trim the quotes from the value, they are a single byte each
			s.emit(token.String, s.src[s.start+1:s.pos-1])

			return scanStart
		case '\n', eof:
			return s.error("Unterminated string encountered")
		default:
			s.next()
		}
	}
}

// isSpace reports whether r is whitespace between tokens, the zero width
// no-break space (a byte order mark) counts.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// isIdent reports whether r is a valid identifier character.
func isIdent(r rune) bool {
	return isAlpha(r) || isDigit(r) || r == '_' || r == '-'
}

// isAlpha reports whether r is an ASCII alpha character.
func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// isDigit reports whether r is a valid ASCII digit.
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
