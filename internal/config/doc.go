// Package config loads, normalizes, and validates stagedtimer configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files and honours the STAGEDTIMER_NTFY_TOPIC environment fallback.
// Presets are validated through the duration parser at load time, so a bad
// preset token is reported before any timer starts.
package config
