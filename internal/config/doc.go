// Package config loads, normalizes, and validates bookbind configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// CLI needs: the scratch root for editing workspaces, archive format options,
// external tool executables, and logging output.
//
// Always obtain settings through this package so downstream code receives
// sanitized absolute paths and clear validation errors.
package config
