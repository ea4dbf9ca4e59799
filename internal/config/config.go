package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	ScratchDir string `toml:"scratch_dir"`
	LogDir     string `toml:"log_dir"`
}

// Archive contains configuration for generated EPUB archives.
type Archive struct {
	FormatVersion int      `toml:"format_version"`
	ContentDirs   []string `toml:"content_dirs"`
}

// Tools contains configuration for external executables.
type Tools struct {
	// UseExternalZip switches the compression facility from the built-in
	// zip implementation to the configured zip/unzip binaries.
	UseExternalZip bool   `toml:"use_external_zip"`
	ZipBinary      string `toml:"zip_binary"`
	UnzipBinary    string `toml:"unzip_binary"`
	// Validator is the epubcheck-style executable invoked by external
	// collaborators; bookbind only reports its availability.
	Validator string `toml:"validator"`
}

// Sessions contains configuration for the session registry and listing output.
type Sessions struct {
	// ListStyle selects the workspace listing rendering: "table" or "plain".
	ListStyle string `toml:"list_style"`
	// StaleAfterDays controls when `sessions prune` removes abandoned
	// workspaces.
	StaleAfterDays int `toml:"stale_after_days"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for bookbind.
//
// Configuration sections by subsystem:
//   - Paths: scratch root for workspaces and the log directory
//   - Archive: EPUB format version and content subdirectory set
//   - Tools: external zip/unzip and validator executables
//   - Sessions: registry listing style and stale-workspace cutoff
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Archive  Archive  `toml:"archive"`
	Tools    Tools    `toml:"tools"`
	Sessions Sessions `toml:"sessions"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/bookbind/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("bookbind.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the scratch root and log directory. The scratch
// root is created once here at process start; allocators never recreate it.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.ScratchDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// ZipBinary returns the external zip executable name.
func (c *Config) ZipBinary() string {
	if b := strings.TrimSpace(c.Tools.ZipBinary); b != "" {
		return b
	}
	return "zip"
}

// UnzipBinary returns the external unzip executable name.
func (c *Config) UnzipBinary() string {
	if b := strings.TrimSpace(c.Tools.UnzipBinary); b != "" {
		return b
	}
	return "unzip"
}

// SinkPath returns the location of the shared diagnostic log sink.
func (c *Config) SinkPath() string {
	return filepath.Join(c.Paths.LogDir, "tools.log")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
