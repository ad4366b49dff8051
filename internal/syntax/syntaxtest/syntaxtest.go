// Package syntaxtest provides syntax level test utilities.
package syntaxtest

import (
	"io/fs"
	"iter"
	"path/filepath"
	"testing"
)

// corpus is a selection of directive comments, valid and invalid, covering
// every token kind and every grammar error.
var corpus = []string{
	"",
	"@RootComponent",
	"/**\n * @RootComponent\n * pageTypes = product_page, product_page_special\n * description = 'Basic Product Page'\n */",
	"@RootComponent pageTypes = foo, bizz description = \"test\"",
	"@RootComponent\npageTypes = foo, bizz,",
	"@RootComponent\npageTypes = foo, bizz,\ndescription = \"hey\"",
	"// @RootComponent foo = bar",
	"@Unknown",
	"foo = \"bar",
	"@RootComponent foo bar",
	"@RootComponent foo = ,",
	"@RootComponent foo = a,,",
	"@@@,,,===",
	"@RootComponent x = 'ünïcödé'",
	"just some prose: with punctuation.",
}

// Corpus returns the seed corpus shared by the scanner and parser fuzz tests.
func Corpus() []string {
	out := make([]string, len(corpus))
	copy(out, corpus)

	return out
}

// Seed adds every entry of [Corpus] to the fuzz target f.
func Seed(f *testing.F) {
	f.Helper()

	for _, src := range corpus {
		f.Add(src)
	}
}

// AllFilesWithExtension returns an iterator over all filepaths under
// root with the matching extension, recursively.
//
// A call to AllFilesWithExtension like this:
//
//	for file, err := range AllFilesWithExtension("testdata", ".txtar") {
//	    // Loop body
//	}
//
// Is roughly equivalent to the following in bash:
//
//	for file in testdata/**/*.txtar; do { # stuff }; done
func AllFilesWithExtension(root, ext string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}

			if d.Type().IsRegular() && filepath.Ext(d.Name()) == ext {
				if !yield(path, nil) {
					return fs.SkipAll
				}
			}

			return nil
		})
		if err != nil {
			yield("", err)
		}
	}
}
