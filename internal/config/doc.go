// Package config loads, normalizes, and validates tracklink configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// MUSIC_DIR_ROOT and the Spotify client credentials. The Config type
// centralizes every knob the importer and CLI need, so the music directory,
// data directory, and catalog settings are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
