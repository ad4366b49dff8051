// Package config handles loading the optional annot configuration file.
//
// Configuration may be written in TOML (annot.toml) or in JSON with comments
// and trailing commas (annot.jsonc or annot.json). Every key is optional, anything
// left unset takes its default.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tailscale/hujson"
	"go.followtheprocess.codes/annot/internal/directive"
	"go.followtheprocess.codes/annot/internal/format"
)

// Filenames are the names of config files searched for by [Find], in order of preference.
var Filenames = []string{"annot.toml", "annot.jsonc", "annot.json"}

// DefaultExtensions are the file extensions searched for directives when
// none are configured.
var DefaultExtensions = []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs"}

// Config is the annot configuration.
type Config struct {
	// EndAdjust overrides the number of bytes trimmed from the end of externally
	// supplied comment spans, nil means use the default.
	EndAdjust *int `json:"end_adjust" toml:"end_adjust"`

	// Format is the default export format for the extract subcommand.
	Format string `json:"format" toml:"format"`

	// Annotations are additional annotation names to recognise, on top
	// of the built in ones.
	Annotations []string `json:"annotations" toml:"annotations"`

	// Extensions are the file extensions searched for directives when
	// walking a directory.
	Extensions []string `json:"extensions" toml:"extensions"`
}

// Default returns the default [Config].
func Default() Config {
	return Config{
		Format:     format.JSON,
		Extensions: slices.Clone(DefaultExtensions),
	}
}

// Find looks for a config file in dir, returning its path and whether one was found.
func Find(dir string) (string, bool) {
	for _, name := range Filenames {
		path := filepath.Join(dir, name)

		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, true
		}
	}

	return "", false
}

// Load reads and decodes the config file at path, choosing the decoder by
// file extension.
//
// Values in the file are laid over [Default] and the result is validated.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not read config file: %w", err)
	}

	var cfg Config

	switch ext := filepath.Ext(path); ext {
	case ".toml":
		cfg, err = decodeTOML(contents)
	case ".json", ".jsonc":
		cfg, err = decodeJSON(contents)
	default:
		return Config{}, fmt.Errorf("unsupported config file extension %q", ext)
	}

	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	cfg = cfg.withDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: invalid config: %w", path, err)
	}

	return cfg, nil
}

// decodeTOML decodes a TOML config, rejecting unknown keys.
func decodeTOML(contents []byte) (Config, error) {
	var cfg Config

	meta, err := toml.Decode(string(contents), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse TOML: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}

		return Config{}, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	return cfg, nil
}

// decodeJSON decodes a JSON config, comments and trailing commas are allowed.
func decodeJSON(contents []byte) (Config, error) {
	standard, err := hujson.Standardize(contents)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse JSON: %w", err)
	}

	var cfg Config

	decoder := json.NewDecoder(bytes.NewReader(standard))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode JSON: %w", err)
	}

	return cfg, nil
}

// withDefaults fills any unset values from [Default].
func (c Config) withDefaults() Config {
	defaults := Default()

	if c.Format == "" {
		c.Format = defaults.Format
	}

	if len(c.Extensions) == 0 {
		c.Extensions = defaults.Extensions
	}

	return c
}

// Validate reports whether the Config is valid, returning an error
// if it's not.
//
// nil means the config is valid.
func (c Config) Validate() error {
	var errs []error

	for _, name := range c.Annotations {
		if !isAnnotation(name) {
			errs = append(errs, fmt.Errorf("annotation %q is not a valid identifier", name))
		}
	}

	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) == 1 {
			errs = append(errs, fmt.Errorf("extension %q must be of the form '.ext'", ext))
		}
	}

	if c.Format != "" {
		if _, err := format.New(c.Format); err != nil {
			errs = append(errs, err)
		}
	}

	if c.EndAdjust != nil && *c.EndAdjust < 0 {
		errs = append(errs, fmt.Errorf("end_adjust cannot be negative, got %d", *c.EndAdjust))
	}

	return errors.Join(errs...)
}

// Registry returns the annotation registry described by the config, the built
// in annotations plus any configured ones.
func (c Config) Registry() directive.Registry {
	return directive.DefaultRegistry().With(c.Annotations...)
}

// HasExtension reports whether path has one of the configured extensions.
func (c Config) HasExtension(path string) bool {
	return slices.Contains(c.Extensions, filepath.Ext(path))
}

// isAnnotation reports whether name could be written after an '@' in a directive.
func isAnnotation(name string) bool {
	if name == "" {
		return false
	}

	for _, char := range name {
		switch {
		case char >= 'a' && char <= 'z', char >= 'A' && char <= 'Z', char >= '0' && char <= '9', char == '_', char == '-':
		default:
			return false
		}
	}

	return true
}
