package annot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.followtheprocess.codes/annot/internal/extract"
	"go.followtheprocess.codes/annot/internal/format"
)

// ExtractOptions are the options passed to the extract subcommand.
type ExtractOptions struct {
	// Path is the path (file or directory) to extract directives from.
	Path string

	// Config is the path to a config file, if empty the current directory
	// is searched for one.
	Config string

	// Format is the name of the export format, if empty the configured
	// format is used.
	Format string

	// Output is the name of a file to write the export to, if empty
	// it is written to stdout.
	Output string

	// Debug enables debug logging.
	Debug bool
}

// Extract implements the extract subcommand.
//
// Malformed directives do not stop the export, they are included in it alongside
// every directive that was successfully parsed.
func (a Annot) Extract(ctx context.Context, options ExtractOptions) error {
	logger := a.logger.Prefixed("extract").With(slog.String("path", options.Path))
	logger.Debug("Extracting directives")

	cfg, err := a.loadConfig(logger, options.Config)
	if err != nil {
		return err
	}

	name := cfg.Format
	if options.Format != "" {
		name = options.Format
	}

	exporter, err := format.New(name)
	if err != nil {
		return err
	}

	paths, err := collect(logger, options.Path, cfg)
	if err != nil {
		return err
	}

	sources, err := process(ctx, logger, a.extractor(logger, cfg), paths)
	if err != nil {
		return err
	}

	files := make([]extract.File, 0, len(sources))
	for _, source := range sources {
		files = append(files, source.result)
	}

	logger.Debug("Exporting", slog.String("format", name), slog.Int("files", len(files)))

	if options.Output == "" {
		return export(exporter, name, a.stdout, files)
	}

	out, err := os.Create(options.Output)
	if err != nil {
		return fmt.Errorf("could not create output file: %w", err)
	}

	exportErr := export(exporter, name, out, files)

	if err := out.Close(); err != nil {
		return errors.Join(exportErr, fmt.Errorf("could not close output file: %w", err))
	}

	return exportErr
}

// export writes files to w with exporter, name is the name of the format for errors.
func export(exporter format.Exporter, name string, w io.Writer, files []extract.File) error {
	if err := exporter.Export(w, files); err != nil {
		return fmt.Errorf("could not export to %s: %w", name, err)
	}

	return nil
}
