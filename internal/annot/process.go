package annot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"go.followtheprocess.codes/annot/internal/extract"
	"go.followtheprocess.codes/log"
	"golang.org/x/sync/errgroup"
)

// source is a file that has been read and had its directives extracted.
type source struct {
	contents string       // The raw file contents, kept for rendering diagnostics
	result   extract.File // The extracted directives and errors
}

// process reads and extracts directives from every path concurrently.
//
// The returned sources are in the same order as paths. Malformed directives are not
// an error here, they are reported in each result, only failing to read a file is.
func process(ctx context.Context, logger *log.Logger, extractor extract.Extractor, paths []string) ([]source, error) {
	start := time.Now()
	sources := make([]source, len(paths))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			contents, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("could not read %s: %w", path, err)
			}

			src := string(contents)
			result := extractor.Parse(src).File(path)

			logger.Debug(
				"Processed file",
				slog.String("file", path),
				slog.Int("directives", len(result.Directives)),
				slog.Int("errors", len(result.Errors)),
			)

			sources[i] = source{contents: src, result: result}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	logger.Debug("Processed all files", slog.Int("files", len(paths)), slog.Duration("took", time.Since(start)))

	return sources, nil
}
