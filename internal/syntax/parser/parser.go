// Package parser implements the directive parser, a recursive descent parser consuming
// the tokens of a single comment and producing a flat [directive.Directive].
//
// The grammar is:
//
//	directive  := '@' IDENT statement*
//	statement  := assignment | annotation
//	annotation := '@' IDENT
//	assignment := IDENT '=' rhs
//	rhs        := STRING | IDENT | list
//	list       := IDENT (',' IDENT)* ','?
//
// A comment whose first token is not '@' is simply not a directive, which is not
// an error. The first error encountered aborts the parse and no partially built
// directive is ever returned alongside it.
package parser

import (
	"fmt"

	"go.followtheprocess.codes/annot/internal/directive"
	"go.followtheprocess.codes/annot/internal/syntax"
	"go.followtheprocess.codes/annot/internal/syntax/scanner"
	"go.followtheprocess.codes/annot/internal/syntax/token"
)

// Parser is the directive parser.
type Parser struct {
	builder *directive.Builder // Accumulates the directive as statements are parsed
	tokens  []token.Token      // The full token sequence of the comment
	current token.Token        // Current token under inspection
	next    token.Token        // Next token in the stream
	offset  int                // Index into tokens of the token after next
}

// New initialises and returns a new [Parser] over tokens, validating annotation
// names against registry.
func New(tokens []token.Token, registry directive.Registry) *Parser {
	p := &Parser{
		builder: directive.NewBuilder(registry),
		tokens:  tokens,
	}

	// Read 2 tokens so current and next are set
	p.advance()
	p.advance()

	return p
}

// ParseRange scans and parses the half open range [start, end) of src as
// a single directive comment.
//
// Lexical errors are returned as is, the tokens scanned before the failure
// are not parsed.
func ParseRange(src string, start, end int, registry directive.Registry) (*directive.Directive, error) {
	tokens, err := scanner.Tokenize(src, start, end)
	if err != nil {
		return nil, err
	}

	return New(tokens, registry).Parse()
}

// Parse parses the tokens to completion.
//
// If the tokens do not describe a directive at all, both the returned directive and
// error are nil. Otherwise exactly one of them is non-nil, any error will be
// a [syntax.Diagnostic].
func (p *Parser) Parse() (*directive.Directive, error) {
	if !p.current.Is(token.At) {
		return nil, nil //nolint:nilnil // Not being a directive is not an error
	}

	for !p.current.Is(token.EOF) {
		var err error

		switch p.current.Kind {
		case token.At:
			err = p.parseAnnotation()
		case token.Ident:
			err = p.parseAssignment()
		default:
			err = p.errorf("Unknown top-level token of type %q encountered", p.current.Kind)
		}

		if err != nil {
			return nil, err
		}
	}

	d, err := p.builder.Build()
	if err != nil {
		return nil, p.error(err.Error())
	}

	return d, nil
}

// advance advances the parser by a single token.
func (p *Parser) advance() {
	p.current = p.next

	if p.offset >= len(p.tokens) {
		p.next = token.Token{Kind: token.EOF}
		return
	}

	p.next = p.tokens[p.offset]
	p.offset++
}

// error returns a [syntax.Diagnostic] with the given message.
//
// Grammar level diagnostics carry no source position.
func (p *Parser) error(msg string) error {
	return syntax.Diagnostic{Msg: msg}
}

// errorf calls error with a formatted message.
func (p *Parser) errorf(format string, a ...any) error {
	return p.error(fmt.Sprintf(format, a...))
}

// parseAnnotation parses an '@' IDENT annotation, setting the directive's type.
func (p *Parser) parseAnnotation() error {
	// Skip the '@'
	p.advance()

	if !p.current.Is(token.Ident) {
		return p.errorf("Expected identifier after %q, found %q", "@", p.current.Kind)
	}

	if err := p.builder.SetType(p.current.Value); err != nil {
		return p.error(err.Error())
	}

	p.advance()

	return nil
}

// parseAssignment parses a 'key = rhs' statement.
func (p *Parser) parseAssignment() error {
	name := p.current.Value

	if !p.next.Is(token.Assign) {
		return p.errorf("Unexpected identifier %q", name)
	}

	// Skip over the identifier and the '='
	p.advance()
	p.advance()

	var value directive.Value

	switch {
	case p.current.Is(token.String):
		value = directive.Scalar(p.current.Value)
		p.advance()
	case p.current.Is(token.Ident) && p.next.Is(token.Comma):
		items, err := p.parseList()
		if err != nil {
			return err
		}

		value = directive.List(items...)
	case p.current.Is(token.Ident):
		// A lone identifier is a scalar, not a single item list
		value = directive.Scalar(p.current.Value)
		p.advance()
	default:
		return p.errorf(
			"Unrecognized right-hand side value in assignment of %q. Found: %q",
			name,
			p.current.Kind,
		)
	}

	if err := p.builder.Set(name, value); err != nil {
		return p.error(err.Error())
	}

	return nil
}

// parseList parses a comma separated list of identifiers.
//
// A list ends when the comment ends (a single trailing comma is allowed there) or when an
// item is followed by something other than a comma, which then begins the next statement.
// A trailing comma followed by what looks like a new assignment is ambiguous with one more
// list item coming, so is an error.
func (p *Parser) parseList() ([]string, error) {
	var items []string

	for p.current.Is(token.Ident) {
		items = append(items, p.current.Value)
		p.advance()

		if p.current.Is(token.EOF) {
			// Last item in the list and the last statement of the directive
			break
		}

		hadComma := p.current.Is(token.Comma)
		if hadComma {
			p.advance()
		}

		if !hadComma && p.current.Is(token.Ident) {
			// No separator, so this identifier starts the next statement
			break
		}

		if p.current.Is(token.EOF) {
			// Trailing comma at the very end of the comment
			break
		}

		if hadComma && p.current.Is(token.Ident) && p.next.Is(token.Assign) {
			return nil, p.error("Encountered illegal assignment in an unterminated list")
		}
	}

	if p.current.Is(token.Comma) {
		return nil, p.error("Unterminated list encountered")
	}

	return items, nil
}
