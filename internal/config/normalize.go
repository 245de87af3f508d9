package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeMusicBrainz()
	c.normalizeSpotify()
	c.normalizeImport()
	if err := c.normalizeMatchCache(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("MUSIC_DIR_ROOT"); ok && strings.TrimSpace(value) != "" {
		c.Paths.MusicDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}

	var err error
	if c.Paths.MusicDir, err = expandPath(strings.TrimSpace(c.Paths.MusicDir)); err != nil {
		return fmt.Errorf("paths.music_dir: %w", err)
	}
	if c.Paths.DataDir, err = expandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeMusicBrainz() {
	c.MusicBrainz.BaseURL = strings.TrimRight(strings.TrimSpace(c.MusicBrainz.BaseURL), "/")
	if c.MusicBrainz.BaseURL == "" {
		c.MusicBrainz.BaseURL = defaultMusicBrainzBaseURL
	}
	c.MusicBrainz.CoverArtURL = strings.TrimRight(strings.TrimSpace(c.MusicBrainz.CoverArtURL), "/")
	if c.MusicBrainz.CoverArtURL == "" {
		c.MusicBrainz.CoverArtURL = defaultCoverArtBaseURL
	}
	c.MusicBrainz.UserAgent = strings.TrimSpace(c.MusicBrainz.UserAgent)
	if c.MusicBrainz.UserAgent == "" {
		c.MusicBrainz.UserAgent = defaultUserAgent
	}
	if c.MusicBrainz.RequestsPerSecond <= 0 {
		c.MusicBrainz.RequestsPerSecond = defaultRequestsPerSecond
	}
	if c.MusicBrainz.TimeoutSeconds <= 0 {
		c.MusicBrainz.TimeoutSeconds = defaultMusicBrainzTimeout
	}
	if c.MusicBrainz.SearchLimit <= 0 {
		c.MusicBrainz.SearchLimit = defaultSearchLimit
	}
}

func (c *Config) normalizeSpotify() {
	if c.Spotify.ClientID == "" {
		if value, ok := os.LookupEnv("SPOTIFY_ID"); ok {
			c.Spotify.ClientID = value
		}
	}
	if c.Spotify.ClientSecret == "" {
		if value, ok := os.LookupEnv("SPOTIFY_SECRET"); ok {
			c.Spotify.ClientSecret = value
		}
	}
	c.Spotify.ClientID = strings.TrimSpace(c.Spotify.ClientID)
	c.Spotify.ClientSecret = strings.TrimSpace(c.Spotify.ClientSecret)
}

func (c *Config) normalizeImport() {
	if c.Import.Workers <= 0 {
		c.Import.Workers = defaultImportWorkers
	}
	exts := make([]string, 0, len(c.Import.Extensions))
	seen := make(map[string]struct{}, len(c.Import.Extensions))
	for _, ext := range c.Import.Extensions {
		normalized := strings.ToLower(strings.TrimSpace(ext))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		exts = append(exts, normalized)
	}
	if len(exts) == 0 {
		exts = DefaultExtensions()
	}
	c.Import.Extensions = exts
}

func (c *Config) normalizeMatchCache() error {
	if strings.TrimSpace(c.MatchCache.Path) == "" {
		c.MatchCache.Path = filepath.Join(c.Paths.DataDir, defaultMatchCacheFileName)
	}
	var err error
	if c.MatchCache.Path, err = expandPath(strings.TrimSpace(c.MatchCache.Path)); err != nil {
		return fmt.Errorf("match_cache.path: %w", err)
	}
	return nil
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
