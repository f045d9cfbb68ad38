// Package config loads, normalizes, and validates latebot configuration.
//
// It supplies defaults, reads the TOML file, applies LATEBOT_* environment
// overrides, and turns the [match] section into a ready fuzzy.Matcher.
// Always obtain settings through this package so the daemon and CLI see the
// same phrases and thresholds.
package config
