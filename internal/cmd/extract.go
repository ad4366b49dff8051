package cmd

import (
	"context"
	"strings"

	"go.followtheprocess.codes/annot/internal/annot"
	"go.followtheprocess.codes/annot/internal/format"
	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/cli/flag"
)

const extractLong = `
The extract command finds every directive in the files given by path and
exports them, along with any errors, in one of the supported formats.

Path is interpreted exactly as for 'annot check'. Malformed directives do not
stop the export, they are reported in it next to the file they were found in.

The format defaults to the one set in the config file, or json if there
isn't one.
`

// extract returns the extract subcommand.
func extract() (*cli.Command, error) {
	var options annot.ExtractOptions

	return cli.New(
		"extract",
		cli.Short("Export the directives in source files"),
		cli.Long(extractLong),
		cli.Arg(&options.Path, "path", "Path to extract from, may be directory or file", cli.ArgDefault(".")),
		cli.Flag(&options.Format, "format", 'f', "Export format, one of "+strings.Join(format.Names(), ", ")),
		cli.Flag(&options.Output, "output", 'o', "File to write the export to, default is stdout"),
		cli.Flag(&options.Config, "config", flag.NoShortHand, "Path to a config file, default is annot.toml in the cwd"),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			app := annot.New(options.Debug, cmd.Stdout(), cmd.Stderr())
			return app.Extract(ctx, options)
		}),
	)
}

