package annot

import (
	"context"
	"fmt"
	"log/slog"

	"go.followtheprocess.codes/msg"
)

// CheckOptions are the options passed to the check subcommand.
type CheckOptions struct {
	// Path is the path (file or directory) to check.
	Path string

	// Config is the path to a config file, if empty the current directory
	// is searched for one.
	Config string

	// Debug enables debug logging.
	Debug bool
}

// Check implements the check subcommand.
//
// Every file is checked, a diagnostic is printed for every malformed directive
// and [ErrInvalid] returned if there were any.
func (a Annot) Check(ctx context.Context, options CheckOptions) error {
	logger := a.logger.Prefixed("check").With(slog.String("path", options.Path))
	logger.Debug("Checking path")

	cfg, err := a.loadConfig(logger, options.Config)
	if err != nil {
		return err
	}

	paths, err := collect(logger, options.Path, cfg)
	if err != nil {
		return err
	}

	logger.Debug("Checking files given by path", slog.Int("number", len(paths)))

	sources, err := process(ctx, logger, a.extractor(logger, cfg), paths)
	if err != nil {
		return err
	}

	var errs, invalid int

	for _, source := range sources {
		file := source.result

		if len(file.Errors) == 0 {
			msg.Fsuccess(a.stdout, "%s is valid (%s)", file.Name, plural(len(file.Directives), "directive"))
			continue
		}

		invalid++
		errs += len(file.Errors)

		for _, diag := range file.Errors {
			renderDiagnostic(a.stderr, file.Name, source.contents, diag)
		}
	}

	if invalid != 0 {
		return fmt.Errorf("%w: %s in %s", ErrInvalid, plural(errs, "error"), plural(invalid, "file"))
	}

	return nil
}

// plural formats n alongside word, pluralised if n is not 1.
func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}

	return fmt.Sprintf("%d %ss", n, word)
}
