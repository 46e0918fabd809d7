// Package config loads, normalizes, and validates phototag configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI and engine need: the image folder, catalog database, progress file,
// lock file, log output, and batch processor defaults.
//
// Always obtain settings through this package so downstream code receives
// sanitized absolute paths, canonical log formats, and clear validation
// errors.
package config
