package testsupport

import (
	"path/filepath"
	"testing"

	"bookbind/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.ScratchDir = filepath.Join(base, "scratch")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithFormatVersion overrides the archive format version on the test config.
func WithFormatVersion(version int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Archive.FormatVersion = version
	}
}

// WithExternalZip points the tool facility at the given binaries.
func WithExternalZip(zipBinary, unzipBinary string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Tools.UseExternalZip = true
		cfg.Tools.ZipBinary = zipBinary
		cfg.Tools.UnzipBinary = unzipBinary
	}
}
