package preflight

import (
	"context"

	"tracklink/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Music directory", cfg.Paths.MusicDir, AccessRead),
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir, AccessReadWrite),
		CheckMusicBrainzFromConfig(ctx, cfg),
	}
	if cfg.SpotifyEnabled() {
		results = append(results, CheckSpotify(ctx, cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, ""))
	}
	return results
}
