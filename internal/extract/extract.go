// Package extract implements the directive driver, applying the scanner and parser to every
// comment in a document and collecting all the directives and errors found.
//
// Each comment is parsed in isolation, a failure in one never stops the rest from being
// processed, so one malformed directive can never hide valid directives elsewhere in the
// same document.
package extract

import (
	"errors"
	"log/slog"

	"go.followtheprocess.codes/annot/internal/comment"
	"go.followtheprocess.codes/annot/internal/directive"
	"go.followtheprocess.codes/annot/internal/syntax"
	"go.followtheprocess.codes/annot/internal/syntax/parser"
	"go.followtheprocess.codes/annot/internal/syntax/scanner"
	"go.followtheprocess.codes/annot/internal/syntax/token"
	"go.followtheprocess.codes/log"
)

// CompatEndAdjust is the number of bytes trimmed from the end of every externally
// supplied span before it is scanned.
//
// Upstream comment finders have been seen to report span ends one past the
// exclusive end, this compensates for them. Spans from [comment.Find] are exact
// and need no adjustment.
const CompatEndAdjust = 1

// Result is the outcome of extracting directives from a single document.
type Result struct {
	Directives []*directive.Directive `json:"directives" yaml:"directives"` // Every directive successfully parsed, in document order
	Errors     []syntax.Diagnostic    `json:"errors"     yaml:"errors"`     // Every error, at most one per comment, in document order
}

// OK reports whether the document was free of errors.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// File returns the result as a [File] with the given name.
func (r Result) File(name string) File {
	return File{
		Name:       name,
		Directives: r.Directives,
		Errors:     r.Errors,
	}
}

// File is the [Result] of extracting directives from a named document, typically
// a file on disk.
type File struct {
	Name       string                 `json:"name"       yaml:"name"`
	Directives []*directive.Directive `json:"directives" yaml:"directives"`
	Errors     []syntax.Diagnostic    `json:"errors"     yaml:"errors"`
}

// Option is a functional option for configuring an [Extractor].
type Option func(*Extractor)

// WithRegistry sets the registry of recognised annotations, the default
// is [directive.DefaultRegistry].
func WithRegistry(registry directive.Registry) Option {
	return func(e *Extractor) {
		e.registry = registry
	}
}

// WithEndAdjust sets the number of bytes trimmed from the end of every span passed
// to [Extractor.Extract], the default is [CompatEndAdjust]. Negative values are treated as 0.
func WithEndAdjust(n int) Option {
	return func(e *Extractor) {
		e.endAdjust = max(0, n)
	}
}

// WithLogger sets a logger to which per-comment outcomes are logged at debug level,
// by default nothing is logged.
func WithLogger(logger *log.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// Extractor is the directive driver.
//
// An Extractor holds no mutable state, it is safe to use concurrently and
// to reuse across documents.
type Extractor struct {
	logger    *log.Logger        // Optional debug logger
	registry  directive.Registry // Recognised annotations
	endAdjust int                // Bytes trimmed from the end of each span
}

// New returns a new [Extractor] configured with options.
func New(options ...Option) Extractor {
	e := Extractor{
		registry:  directive.DefaultRegistry(),
		endAdjust: CompatEndAdjust,
	}

	for _, option := range options {
		option(&e)
	}

	return e
}

// Parse extracts every directive from raw source text, locating the comments
// with [comment.Find] and the default [Extractor].
func Parse(src string) Result {
	return New().Parse(src)
}

// Parse locates every comment in src with [comment.Find] and extracts the
// directives from them.
//
// The comment spans are exact so no end adjustment is applied, regardless
// of [WithEndAdjust].
func (e Extractor) Parse(src string) Result {
	exact := e
	exact.endAdjust = 0

	return exact.Extract(src, comment.Spans(src))
}

// Extract parses each span of src as a directive comment.
//
// Spans are scanned against the full src rather than a substring, so any
// positions reported are in absolute document coordinates. Every span is always
// attempted: comments that are not directives contribute nothing, successfully
// parsed directives and errors are collected in span order.
func (e Extractor) Extract(src string, spans []syntax.Span) Result {
	result := Result{
		Directives: make([]*directive.Directive, 0),
		Errors:     make([]syntax.Diagnostic, 0),
	}

	for _, span := range spans {
		found, err := e.extractSpan(src, span)

		switch {
		case err != nil:
			diag := syntax.Diagnostic{Msg: err.Error()}
			errors.As(err, &diag)

			diag.Span = span
			result.Errors = append(result.Errors, diag)

			e.debug(
				"Directive error",
				slog.String("span", span.String()),
				slog.Int("bytes", span.Len()),
				slog.String("error", diag.Msg),
			)
		case found != nil:
			result.Directives = append(result.Directives, found)

			e.debug(
				"Found directive",
				slog.String("span", span.String()),
				slog.String("type", found.Type),
				slog.Int("fields", found.Len()),
			)
		default:
			e.debug("Not a directive", slog.String("span", span.String()), slog.Int("bytes", span.Len()))
		}
	}

	return result
}

// extractSpan scans and parses a single span.
//
// A lexical error in a comment that does not begin with '@' means the comment simply
// isn't a directive (most prose has punctuation the directive scanner doesn't know), so
// it is not reported.
func (e Extractor) extractSpan(src string, span syntax.Span) (*directive.Directive, error) {
	tokens, err := scanner.Tokenize(src, span.Start, span.End-e.endAdjust)
	if err != nil {
		if len(tokens) == 0 || !tokens[0].Is(token.At) {
			return nil, nil //nolint:nilnil // Not being a directive is not an error
		}

		return nil, err
	}

	return parser.New(tokens, e.registry).Parse()
}

// debug logs at debug level if a logger has been set.
func (e Extractor) debug(msg string, attrs ...slog.Attr) {
	if e.logger == nil {
		return
	}

	e.logger.Debug(msg, attrs...)
}
