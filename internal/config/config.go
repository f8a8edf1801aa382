// Package config loads project-level compiler configuration from an
// asthra.toml file, the way the teacher's internal/tqw package loads TQW
// world data files: a plain struct decoded with github.com/BurntSushi/toml,
// no reflection-magic validation layer on top.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/asthra-lang/asthrac/internal/diag"
)

// Config is the contents of one asthra.toml file: the defaults CLI flags
// and programmatic callers can still override (SPEC_FULL.md §10.3).
type Config struct {
	// Target is the default backend target triple used when a caller of
	// compile() doesn't supply one.
	Target string `toml:"target"`

	// OptLevel is the default optimization level passed through to the
	// backend unexamined.
	OptLevel int `toml:"opt_level"`

	// DisabledWarnings lists diagnostic categories suppressed by default.
	DisabledWarnings []string `toml:"disabled_warnings"`

	// Coverage requests coverage-instrumentation metadata by default.
	Coverage bool `toml:"coverage"`

	// ParallelFiles enables the bounded-worker-pool per-file analysis
	// path by default (SPEC_FULL.md §12).
	ParallelFiles bool `toml:"parallel_files"`
}

// Default returns the configuration used when no asthra.toml is present:
// a native target, optimization level 0, no suppressed warnings.
func Default() Config {
	return Config{Target: "native", OptLevel: 0}
}

// Load reads and decodes the asthra.toml file at path. A missing file is
// not an error — it returns Default(), matching the teacher's
// tolerant-of-absence preference for optional config (server/config.go's
// Config zero value is itself always valid).
func Load(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if cfg.Target == "" {
		cfg.Target = "native"
	}
	return cfg, nil
}

// DisabledCategories resolves the configured warning-category names into
// internal/diag.Category values. An unrecognized name is passed through
// as its own category rather than failing the load; it simply never
// matches a diagnostic's actual category, so it has no effect instead of
// stopping the compile.
func (c Config) DisabledCategories() []diag.Category {
	out := make([]diag.Category, 0, len(c.DisabledWarnings))
	for _, name := range c.DisabledWarnings {
		out = append(out, diag.Category(name))
	}
	return out
}
