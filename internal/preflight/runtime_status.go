package preflight

import (
	"context"
	"strings"

	"tracklink/internal/config"
)

// CheckMusicBrainzFromConfig evaluates catalog status from config and connectivity.
func CheckMusicBrainzFromConfig(ctx context.Context, cfg *config.Config) Result {
	const name = "MusicBrainz"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	if strings.TrimSpace(cfg.MusicBrainz.UserAgent) == "" {
		return Result{Name: name, Detail: "Missing user agent"}
	}
	return CheckMusicBrainz(ctx, cfg.MusicBrainz.BaseURL, cfg.MusicBrainz.UserAgent)
}

// CheckSpotifyFromConfig evaluates Spotify status, reporting "Disabled" as
// passing when no credentials are configured.
func CheckSpotifyFromConfig(ctx context.Context, cfg *config.Config) Result {
	const name = "Spotify"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	if !cfg.SpotifyEnabled() {
		return Result{Name: name, Passed: true, Detail: "Disabled"}
	}
	return CheckSpotify(ctx, cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, "")
}
