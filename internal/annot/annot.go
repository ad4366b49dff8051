// Package annot implements the functionality of the program, the CLI in package cmd is simply the
// entrypoint to exported functions and methods in this package.
package annot

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"go.followtheprocess.codes/annot/internal/config"
	"go.followtheprocess.codes/annot/internal/extract"
	"go.followtheprocess.codes/log"
)

// ErrInvalid is returned when one or more files contain malformed directives.
var ErrInvalid = errors.New("invalid directives")

// Annot represents the annot program.
type Annot struct {
	stdout io.Writer   // Normal program output is written here
	stderr io.Writer   // Logs and errors are written here
	logger *log.Logger // The logger for the application
}

// New returns a new [Annot].
func New(debug bool, stdout, stderr io.Writer) Annot {
	level := log.LevelInfo
	if debug {
		level = log.LevelDebug
	}

	logger := log.New(stderr, log.Prefix("annot"), log.WithLevel(level))

	return Annot{
		stdout: stdout,
		stderr: stderr,
		logger: logger,
	}
}

// loadConfig loads the config file at path or, if path is empty, the one found in
// the current directory. No config file at all means the defaults.
func (a Annot) loadConfig(logger *log.Logger, path string) (config.Config, error) {
	if path == "" {
		found, ok := config.Find(".")
		if !ok {
			logger.Debug("No config file found, using defaults")
			return config.Default(), nil
		}

		path = found
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	logger.Debug(
		"Loaded config",
		slog.String("config", path),
		slog.Any("annotations", cfg.Annotations),
		slog.Any("extensions", cfg.Extensions),
	)

	return cfg, nil
}

// extractor builds the directive driver described by cfg.
func (a Annot) extractor(logger *log.Logger, cfg config.Config) extract.Extractor {
	options := []extract.Option{
		extract.WithRegistry(cfg.Registry()),
		extract.WithLogger(logger),
	}

	if cfg.EndAdjust != nil {
		options = append(options, extract.WithEndAdjust(*cfg.EndAdjust))
	}

	return extract.New(options...)
}

// collect returns the files to process given by path.
//
// If path is a file it is returned alone regardless of its extension, if it's a directory
// it is walked recursively for files with one of the configured extensions. Hidden
// directories and node_modules are never descended into.
func collect(logger *log.Logger, path string, cfg config.Config) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("could not get path info: %w", err)
	}

	if !info.IsDir() {
		logger.Debug("Path is a file")
		return []string{path}, nil
	}

	logger.Debug("Path is a directory")

	var paths []string

	err = filepath.WalkDir(path, func(file string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if file != path && skipDir(d.Name()) {
				return filepath.SkipDir
			}

			return nil
		}

		if cfg.HasExtension(file) {
			paths = append(paths, file)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not walk %s: %w", path, err)
	}

	return paths, nil
}

// skipDir reports whether the named directory should be skipped while walking.
func skipDir(name string) bool {
	return name == "node_modules" || strings.HasPrefix(name, ".")
}
