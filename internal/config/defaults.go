package config

const (
	defaultConfigPath               = "~/.config/tracklink/config.toml"
	defaultMusicDir                 = "~/Music"
	defaultDataDir                  = "~/.local/share/tracklink"
	defaultLogDir                   = "~/.local/share/tracklink/logs"
	defaultMusicBrainzBaseURL       = "https://musicbrainz.org/ws/2"
	defaultCoverArtBaseURL          = "https://coverartarchive.org"
	defaultUserAgent                = "tracklink/dev ( https://github.com/tracklink/tracklink )"
	defaultRequestsPerSecond        = 1.0
	defaultMusicBrainzTimeout       = 30
	defaultSearchLimit              = 25
	defaultImportWorkers            = 2
	defaultLogFormat                = "console"
	defaultLogLevel                 = "info"
	defaultMatchCacheFileName       = "match_cache.json"
	maxMusicBrainzRequestsPerSecond = 50.0
)

// DefaultExtensions lists the audio extensions imported when none are configured.
func DefaultExtensions() []string {
	return []string{".flac", ".mp3"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			MusicDir: defaultMusicDir,
			DataDir:  defaultDataDir,
			LogDir:   defaultLogDir,
		},
		MusicBrainz: MusicBrainz{
			BaseURL:           defaultMusicBrainzBaseURL,
			CoverArtURL:       defaultCoverArtBaseURL,
			UserAgent:         defaultUserAgent,
			RequestsPerSecond: defaultRequestsPerSecond,
			TimeoutSeconds:    defaultMusicBrainzTimeout,
			SearchLimit:       defaultSearchLimit,
		},
		Import: Import{
			Workers:           defaultImportWorkers,
			Extensions:        DefaultExtensions(),
			RememberUnmatched: true,
		},
		MatchCache: MatchCache{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
