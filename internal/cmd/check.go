package cmd

import (
	"context"

	"go.followtheprocess.codes/annot/internal/annot"
	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/cli/flag"
)

const checkLong = `
The path argument may be a directory or a file.

If it is the name of a file, then this file alone is checked for malformed
directives, whatever its extension.

If it is a directory, this directory is scanned recursively for all files
with one of the configured extensions (by default .js, .jsx, .ts, .tsx, .mjs
and .cjs) and any matching files will be checked. Hidden directories and
node_modules are skipped.

Every comment in every file is checked, one malformed directive never hides
another. Comments that are not directives are ignored.
`

// check returns the check subcommand.
func check() (*cli.Command, error) {
	var options annot.CheckOptions

	return cli.New(
		"check",
		cli.Short("Check source files for malformed directives"),
		cli.Long(checkLong),
		cli.Arg(&options.Path, "path", "Path to check, may be directory or file", cli.ArgDefault(".")),
		cli.Flag(&options.Config, "config", flag.NoShortHand, "Path to a config file, default is annot.toml in the cwd"),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			app := annot.New(options.Debug, cmd.Stdout(), cmd.Stderr())
			return app.Check(ctx, options)
		}),
	)
}
