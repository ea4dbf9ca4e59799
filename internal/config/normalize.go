package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeArchive()
	c.normalizeSessions()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.ScratchDir) == "" {
		c.Paths.ScratchDir = defaultScratchDir
	}
	if c.Paths.ScratchDir, err = expandPath(c.Paths.ScratchDir); err != nil {
		return fmt.Errorf("paths.scratch_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeArchive() {
	if c.Archive.FormatVersion == 0 {
		c.Archive.FormatVersion = defaultFormatVersion
	}
	dirs := make([]string, 0, len(c.Archive.ContentDirs))
	for _, dir := range c.Archive.ContentDirs {
		if trimmed := strings.TrimSpace(dir); trimmed != "" {
			dirs = append(dirs, trimmed)
		}
	}
	if len(dirs) == 0 {
		dirs = defaultContentDirs()
	}
	c.Archive.ContentDirs = dirs
}

func (c *Config) normalizeSessions() {
	c.Sessions.ListStyle = strings.ToLower(strings.TrimSpace(c.Sessions.ListStyle))
	if c.Sessions.ListStyle == "" {
		c.Sessions.ListStyle = defaultListStyle
	}
	if c.Sessions.StaleAfterDays <= 0 {
		c.Sessions.StaleAfterDays = defaultStaleAfterDays
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
