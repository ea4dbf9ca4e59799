package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateArchive(); err != nil {
		return err
	}
	if err := c.validateSessions(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateArchive() error {
	if c.Archive.FormatVersion != 2 && c.Archive.FormatVersion != 3 {
		return fmt.Errorf("archive.format_version must be 2 or 3, got %d", c.Archive.FormatVersion)
	}
	for _, dir := range c.Archive.ContentDirs {
		if strings.ContainsAny(dir, `/\`) {
			return fmt.Errorf("archive.content_dirs entry %q must be a bare directory name", dir)
		}
		if strings.HasPrefix(dir, ".") {
			return fmt.Errorf("archive.content_dirs entry %q must not start with a dot", dir)
		}
	}
	return nil
}

func (c *Config) validateSessions() error {
	switch c.Sessions.ListStyle {
	case "table", "plain":
		return nil
	default:
		return fmt.Errorf("sessions.list_style must be \"table\" or \"plain\", got %q", c.Sessions.ListStyle)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("logging.level must be one of debug, info, warn, error")
	}
	return nil
}
