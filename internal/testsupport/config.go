package testsupport

import (
	"path/filepath"
	"testing"

	"auraforge/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.CacheDir = filepath.Join(base, "cache")
	cfg.Paths.OutputDir = filepath.Join(base, "output")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Runs.DatabasePath = filepath.Join(base, "logs", "runs.db")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	return &cfg
}

// WithArmoryEndpoints overrides the record service endpoints on the test config.
func WithArmoryEndpoints(itemURL, spellURL string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Armory.ItemURL = itemURL
		cfg.Armory.SpellURL = spellURL
	}
}

// WithListingBaseURL overrides the listing source base URL on the test config.
func WithListingBaseURL(baseURL string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Listing.BaseURL = baseURL
	}
}
