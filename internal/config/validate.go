package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMusicBrainz(); err != nil {
		return err
	}
	if err := c.validateSpotify(); err != nil {
		return err
	}
	if err := c.validateImport(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.MusicDir) == "" {
		return errors.New("paths.music_dir must be set (or export MUSIC_DIR_ROOT)")
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateMusicBrainz() error {
	for name, raw := range map[string]string{
		"musicbrainz.base_url":      c.MusicBrainz.BaseURL,
		"musicbrainz.cover_art_url": c.MusicBrainz.CoverArtURL,
	} {
		parsed, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("%s must be an http(s) url, got %q", name, raw)
		}
	}
	if c.MusicBrainz.RequestsPerSecond > maxMusicBrainzRequestsPerSecond {
		return fmt.Errorf("musicbrainz.requests_per_second must not exceed %.0f", maxMusicBrainzRequestsPerSecond)
	}
	return nil
}

func (c *Config) validateSpotify() error {
	if (c.Spotify.ClientID == "") != (c.Spotify.ClientSecret == "") {
		return errors.New("spotify.client_id and spotify.client_secret must be set together")
	}
	return nil
}

func (c *Config) validateImport() error {
	if c.Import.Workers > 16 {
		return errors.New("import.workers must be between 1 and 16")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
