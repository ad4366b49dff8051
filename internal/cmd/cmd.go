// Package cmd implements annot's CLI.
package cmd

import (
	"go.followtheprocess.codes/cli"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// Build builds and returns the annot CLI.
func Build() (*cli.Command, error) {
	return cli.New(
		"annot",
		cli.Short("Find and validate @Directive annotations in source comments"),
		cli.Version(version),
		cli.Commit(commit),
		cli.BuildDate(date),
		cli.Example("Check every file in the current directory for malformed directives", "annot check"),
		cli.Example("Check a single file", "annot check ./src/RootComponents/Product.js"),
		cli.Example("Export every directive in a project as JSON", "annot extract ./src"),
		cli.Example("Export as YAML to a file", "annot extract ./src --format yaml --output directives.yaml"),
		cli.SubCommands(check, extract),
	)
}
