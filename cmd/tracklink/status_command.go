package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tracklink/internal/config"
	"tracklink/internal/library"
	"tracklink/internal/preflight"
)

type checkView struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

type statusView struct {
	ConfigPath      string      `json:"config_path"`
	LibraryPath     string      `json:"library_path"`
	SchemaVersion   string      `json:"schema_version"`
	LatestMigration string      `json:"latest_migration"`
	Integrity       bool        `json:"integrity_ok"`
	Artists         int         `json:"artists"`
	Albums          int         `json:"albums"`
	Tracks          int         `json:"tracks"`
	CacheEnabled    bool        `json:"match_cache_enabled"`
	CacheEntries    int         `json:"match_cache_entries"`
	Checks          []checkView `json:"checks"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show library, cache, and service health",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			defer store.Close()

			health, healthErr := store.CheckHealth(cmd.Context())
			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			cache, err := ctx.openMatchCache()
			if err != nil {
				return err
			}

			view := statusView{
				ConfigPath:      ctx.configPath,
				LibraryPath:     health.DBPath,
				SchemaVersion:   health.SchemaVersion,
				LatestMigration: health.LatestMigration,
				Integrity:       health.IntegrityCheck,
				Artists:         stats.Artists,
				Albums:          stats.Albums,
				Tracks:          stats.Tracks,
				CacheEnabled:    cache != nil,
			}
			if cache != nil {
				view.CacheEntries = cache.Count()
			}
			for _, r := range preflight.RunAll(cmd.Context(), cfg) {
				view.Checks = append(view.Checks, checkView{Name: r.Name, Passed: r.Passed, Detail: r.Detail})
			}

			if ctx.JSONMode() {
				return writeJSON(cmd, view)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			lines := renderSectionHeader("Library", colorize)
			lines = append(lines,
				renderStatusLine("Config", statusInfo, orDash(view.ConfigPath), colorize),
				databaseStatusLine(health, healthErr, colorize),
				renderStatusLine("Contents", statusInfo,
					fmt.Sprintf("%d artists, %d albums, %d tracks", stats.Artists, stats.Albums, stats.Tracks), colorize),
				matchCacheStatusLine(cfg, view.CacheEntries, colorize),
				"",
			)
			lines = append(lines, renderSectionHeader("Checks", colorize)...)
			for _, c := range view.Checks {
				kind := statusOK
				if !c.Passed {
					kind = statusError
				}
				lines = append(lines, renderStatusLine(c.Name, kind, c.Detail, colorize))
			}
			if !cfg.SpotifyEnabled() {
				lines = append(lines, renderStatusLine("Spotify", statusInfo, "Disabled (no artist images)", colorize))
			}
			fmt.Fprintln(out, strings.Join(lines, "\n"))
			return nil
		},
	}
}

func databaseStatusLine(health library.DatabaseHealth, err error, colorize bool) string {
	switch {
	case err != nil:
		return renderStatusLine("Database", statusError, err.Error(), colorize)
	case len(health.MissingTables) > 0:
		return renderStatusLine("Database", statusError, "Missing tables: "+strings.Join(health.MissingTables, ", "), colorize)
	case !health.IntegrityCheck:
		return renderStatusLine("Database", statusWarn, "Integrity check failed", colorize)
	case health.SchemaVersion != health.LatestMigration:
		return renderStatusLine("Database", statusWarn,
			fmt.Sprintf("Schema %s, expected %s", orDash(health.SchemaVersion), health.LatestMigration), colorize)
	}
	return renderStatusLine("Database", statusOK, fmt.Sprintf("%s (schema %s)", health.DBPath, health.SchemaVersion), colorize)
}

func matchCacheStatusLine(cfg *config.Config, entries int, colorize bool) string {
	if !cfg.MatchCache.Enabled {
		return renderStatusLine("Match cache", statusWarn, "Disabled", colorize)
	}
	return renderStatusLine("Match cache", statusOK, fmt.Sprintf("%d entries", entries), colorize)
}
