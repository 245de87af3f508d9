package testsupport

import (
	"path/filepath"
	"testing"

	"tracklink/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.MusicDir = filepath.Join(base, "music")
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.MatchCache.Path = filepath.Join(base, "data", "match_cache.json")
	cfgVal.MusicBrainz.RequestsPerSecond = 50
	cfgVal.MusicBrainz.TimeoutSeconds = 5
	cfgVal.Import.Workers = 1

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithMusicBrainzURL points the catalog client at a test server.
func WithMusicBrainzURL(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.MusicBrainz.BaseURL = baseURL
		b.cfg.MusicBrainz.CoverArtURL = baseURL
	}
}

// WithSpotify sets client credentials on the test config.
func WithSpotify(id, secret string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Spotify.ClientID = id
		b.cfg.Spotify.ClientSecret = secret
	}
}

// WithWorkers overrides the import worker count.
func WithWorkers(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Import.Workers = n
	}
}

// WithoutMatchCache disables the per-file outcome cache.
func WithoutMatchCache() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.MatchCache.Enabled = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
