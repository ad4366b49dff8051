// Package token provides the set of lexical tokens found in a directive comment.
package token

import (
	"fmt"
	"slices"

	"go.followtheprocess.codes/annot/internal/syntax"
)

// Kind is the kind of a token.
type Kind int

// Token definitions.
const (
	EOF    Kind = iota // EOF
	At                 // at
	Assign             // assign
	Comma              // comma
	String             // string
	Ident              // identifier
)

// String implements [fmt.Stringer] for [Kind].
//
// These are the names used in parse error messages.
func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case At:
		return "at"
	case Assign:
		return "assign"
	case Comma:
		return "comma"
	case String:
		return "string"
	case Ident:
		return "identifier"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText implements [encoding.TextMarshaler] for [Kind].
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Token is a lexical token in a directive comment.
//
// Tokens only store raw byte offsets, the line and column are resolved from the
// source text by [Token.Location] when, and only when, somebody asks for them.
type Token struct {
	src   string // The full source text the offsets refer to
	Value string // The token's value, the identifier name or string contents
	Kind  Kind   // The kind of token this is
	Start int    // Byte offset from the start of the text to the start of this token
	End   int    // Byte offset from the start of the text to the end of this token
}

// New returns a new [Token] over src.
//
// A Go string is an immutable reference to its bytes, so holding src here
// does not copy the source text.
func New(src string, kind Kind, value string, start, end int) Token {
	return Token{
		src:   src,
		Value: value,
		Kind:  kind,
		Start: start,
		End:   end,
	}
}

// Location resolves the line and column of the start and end of the token.
func (t Token) Location() syntax.Location {
	return syntax.Location{
		Start: syntax.Resolve(t.src, t.Start),
		End:   syntax.Resolve(t.src, t.End),
	}
}

// String implement [fmt.Stringer] for a [Token].
func (t Token) String() string {
	if t.Is(String, Ident) {
		return fmt.Sprintf("<Token::%s start=%d, end=%d, value=%q>", t.Kind, t.Start, t.End, t.Value)
	}

	return fmt.Sprintf("<Token::%s start=%d, end=%d>", t.Kind, t.Start, t.End)
}

// Is reports whether the token is any of the provided [Kind]s.
func (t Token) Is(kinds ...Kind) bool {
	return slices.Contains(kinds, t.Kind)
}
