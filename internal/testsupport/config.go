package testsupport

import (
	"path/filepath"
	"testing"

	"prematch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Matching.ProgressEvery = 0

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithShowRenames enables audit record emission on the test config.
func WithShowRenames() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Matching.ShowRenames = true
	}
}

// WithContinueOnError makes batch runs skip failed rows.
func WithContinueOnError() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Matching.ContinueOnError = true
	}
}
