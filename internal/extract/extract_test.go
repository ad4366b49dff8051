package extract_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.followtheprocess.codes/annot/internal/directive"
	"go.followtheprocess.codes/annot/internal/extract"
	"go.followtheprocess.codes/annot/internal/syntax"
	"go.followtheprocess.codes/log"
	"go.followtheprocess.codes/test"
)

const valid = `
/**
 * @RootComponent
 * pageTypes = foo, bizz
 */
`

func TestParseSingleDirective(t *testing.T) {
	result := extract.Parse(valid)

	test.Equal(t, len(result.Errors), 0)
	test.Equal(t, len(result.Directives), 1)
	test.True(t, result.OK())

	want := map[string]any{
		"type":      "RootComponent",
		"pageTypes": []string{"foo", "bizz"},
	}

	if diff := cmp.Diff(want, result.Directives[0].Map()); diff != "" {
		t.Errorf("directive mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrorBelowDirective(t *testing.T) {
	src := valid + `
/**
 * @NonExistentDirective
 */
`
	result := extract.Parse(src)

	test.Equal(t, len(result.Directives), 1)
	test.Equal(t, len(result.Errors), 1)
	test.Equal(t, result.Errors[0].Msg, "Unrecognized Directive: NonExistentDirective")
	test.False(t, result.OK())
}

func TestParseDirectiveBelowError(t *testing.T) {
	src := `
/**
* @NonExistentDirective
*/
` + valid

	result := extract.Parse(src)

	test.Equal(t, len(result.Directives), 1)
	test.Equal(t, len(result.Errors), 1)
}

func TestFailureIsolation(t *testing.T) {
	const (
		good  = "/** @RootComponent\n * pageTypes = a, b */\n"
		bad   = "/** @RootComponent\n * pageTypes = a, b,\n * description = 'x' */\n"
		prose = "// just a normal comment: nothing to see here.\n"
	)

	// Whichever position the malformed directive is in, everything else is still found
	for n := 2; n <= 5; n++ {
		for broken := range n {
			t.Run(fmt.Sprintf("%d spans broken at %d", n, broken), func(t *testing.T) {
				var src strings.Builder
				src.WriteString("import x from 'y';\n" + prose)

				for i := range n {
					if i == broken {
						src.WriteString(bad)
					} else {
						src.WriteString(good)
					}

					src.WriteString("export const a" + fmt.Sprint(i) + " = 1;\n")
				}

				result := extract.Parse(src.String())

				test.Equal(t, len(result.Directives), n-1)
				test.Equal(t, len(result.Errors), 1)
				test.Equal(t, result.Errors[0].Msg, "Encountered illegal assignment in an unterminated list")
			})
		}
	}
}

func TestNonDirectiveCommentsAreSilent(t *testing.T) {
	src := `
// TODO: this has a colon, and a full stop.
/* (parentheses) and "unterminated
   strings */
/**
 * Some prose, then a directive-looking thing: @RootComponent
 */
// eslint-disable-next-line no-unused-vars
const x = "/* not a comment */";
`
	result := extract.Parse(src)

	test.Equal(t, len(result.Directives), 0)
	test.Equal(t, len(result.Errors), 0)
}

func TestLexicalErrorInDirectiveIsReported(t *testing.T) {
	src := "const a = 1;\n/**\n * @RootComponent\n * description = 'never closed\n */\n"

	result := extract.Parse(src)

	test.Equal(t, len(result.Directives), 0)
	test.Equal(t, len(result.Errors), 1)

	diag := result.Errors[0]
	test.Equal(t, diag.Msg, "Unterminated string encountered")

	// Positions are absolute within the whole document, not the comment
	test.Equal(t, diag.Position, syntax.Position{Offset: 65, Line: 4, Column: 30})
	test.Equal(t, diag.Span, syntax.Span{Start: 13, End: 69})
}

func TestGrammarErrorHasSpanButNoPosition(t *testing.T) {
	src := "x;\n/* @RootComponent foo bar */"

	result := extract.Parse(src)

	test.Equal(t, len(result.Errors), 1)
	test.Equal(t, result.Errors[0].Msg, `Unexpected identifier "foo"`)
	test.False(t, result.Errors[0].HasPosition())
	test.Equal(t, result.Errors[0].Span, syntax.Span{Start: 3, End: 31})
}

func TestExtractEndAdjust(t *testing.T) {
	src := "// @RootComponent foo = bar"

	// Spans reported one past the end, the way upstream tools do
	spans := []syntax.Span{{Start: 0, End: len(src) + 1}}

	result := extract.New().Extract(src, spans)
	test.Equal(t, len(result.Errors), 0)
	test.Equal(t, len(result.Directives), 1)

	foo, ok := result.Directives[0].Get("foo")
	test.True(t, ok)
	test.True(t, foo.Equal(directive.Scalar("bar")))

	// With the default adjustment an exact span loses its last byte
	exact := []syntax.Span{{Start: 0, End: len(src)}}

	result = extract.New().Extract(src, exact)
	foo, _ = result.Directives[0].Get("foo")
	test.True(t, foo.Equal(directive.Scalar("ba")))

	// Unless told otherwise
	result = extract.New(extract.WithEndAdjust(0)).Extract(src, exact)
	foo, _ = result.Directives[0].Get("foo")
	test.True(t, foo.Equal(directive.Scalar("bar")))
}

func TestExtractNoSpans(t *testing.T) {
	result := extract.New().Extract("@RootComponent", nil)

	test.Equal(t, len(result.Directives), 0)
	test.Equal(t, len(result.Errors), 0)
	test.True(t, result.Directives != nil, test.Context("Directives should be empty, not nil"))
	test.True(t, result.Errors != nil, test.Context("Errors should be empty, not nil"))
}

func TestWithRegistry(t *testing.T) {
	src := "/* @Layout slots = header, footer */\n/* @RootComponent */"

	result := extract.New(extract.WithRegistry(directive.DefaultRegistry().With("Layout"))).Parse(src)

	test.Equal(t, len(result.Errors), 0)
	test.Equal(t, len(result.Directives), 2)
	test.Equal(t, result.Directives[0].Type, "Layout")
	test.Equal(t, result.Directives[1].Type, "RootComponent")
}

func TestWithLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := log.New(buf, log.WithLevel(log.LevelDebug))

	extract.New(extract.WithLogger(logger)).Parse(valid + "// plain\n/* @Nope */")

	logs := buf.String()
	test.True(t, strings.Contains(logs, "Found directive"), test.Context("logs:\n%s", logs))
	test.True(t, strings.Contains(logs, "Not a directive"), test.Context("logs:\n%s", logs))
	test.True(t, strings.Contains(logs, "Directive error"), test.Context("logs:\n%s", logs))
}

func TestResultFile(t *testing.T) {
	file := extract.Parse(valid).File("component.js")

	test.Equal(t, file.Name, "component.js")
	test.Equal(t, len(file.Directives), 1)
	test.Equal(t, len(file.Errors), 0)
}

func TestParseIsPure(t *testing.T) {
	src := valid + "/* @Bad */" + valid

	first := extract.Parse(src)
	second := extract.Parse(src)

	test.Equal(t, len(first.Directives), len(second.Directives))

	for i := range first.Directives {
		if diff := cmp.Diff(first.Directives[i].Map(), second.Directives[i].Map()); diff != "" {
			t.Errorf("directive %d differs between runs:\n%s", i, diff)
		}
	}

	if diff := cmp.Diff(first.Errors, second.Errors); diff != "" {
		t.Errorf("errors differ between runs:\n%s", diff)
	}
}
