package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tracklink/internal/config"
	"tracklink/internal/importer"
	"tracklink/internal/preflight"
)

type outcomeView struct {
	Path        string `json:"path"`
	Status      string `json:"status"`
	Reason      string `json:"reason,omitempty"`
	Detail      string `json:"detail,omitempty"`
	RecordingID string `json:"recording_id,omitempty"`
	ReleaseID   string `json:"release_id,omitempty"`
	ArtistID    string `json:"artist_id,omitempty"`
	Title       string `json:"title,omitempty"`
	Artist      string `json:"artist,omitempty"`
	Album       string `json:"album,omitempty"`
	Score       int    `json:"score"`
}

type summaryView struct {
	RunID    string         `json:"run_id"`
	Total    int            `json:"total"`
	Matched  int            `json:"matched"`
	Skipped  int            `json:"skipped"`
	Failed   int            `json:"failed"`
	Seconds  float64        `json:"seconds"`
	Reasons  map[string]int `json:"reasons"`
	Outcomes []outcomeView  `json:"outcomes"`
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	var workers int
	var showAll bool

	cmd := &cobra.Command{
		Use:   "import [dir]",
		Short: "Match audio files to the catalog and store them in the library",
		Long: `Walk a directory (default: the configured music_dir) for audio files,
match each to a MusicBrainz recording and release, and store the result.

Files already in the library are skipped. Files with no catalog candidate are
remembered in the match cache and skipped until they change.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if workers > 0 {
				cfg.Import.Workers = workers
			}

			dir := cfg.Paths.MusicDir
			if len(args) == 1 {
				if dir, err = config.ExpandPath(args[0]); err != nil {
					return err
				}
			}
			if check := preflight.CheckDirectoryAccess("Music directory", dir, preflight.AccessRead); !check.Passed {
				return fmt.Errorf("music directory not usable: %s", check.Detail)
			}

			store, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			defer store.Close()

			imp, err := ctx.newImporter(cmd.Context(), store)
			if err != nil {
				return err
			}

			summary, outcomes, err := imp.Run(cmd.Context(), dir)
			if err != nil {
				if errors.Is(err, importer.ErrBatchRunning) {
					return fmt.Errorf("%w; wait for it to finish", err)
				}
				return err
			}

			if ctx.JSONMode() {
				return writeJSON(cmd, buildSummaryView(summary, outcomes))
			}
			printImportResult(cmd.OutOrStdout(), dir, summary, outcomes, showAll)
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent files (default: configured import.workers)")
	cmd.Flags().BoolVarP(&showAll, "all", "a", false, "List files skipped because they were already imported or cached")
	return cmd
}

func buildSummaryView(summary importer.Summary, outcomes []importer.Outcome) summaryView {
	view := summaryView{
		RunID:    summary.RunID,
		Total:    summary.Total,
		Matched:  summary.Matched,
		Skipped:  summary.Skipped,
		Failed:   summary.Failed,
		Seconds:  summary.Duration.Seconds(),
		Reasons:  summary.Reasons,
		Outcomes: make([]outcomeView, 0, len(outcomes)),
	}
	for _, o := range outcomes {
		view.Outcomes = append(view.Outcomes, outcomeView{
			Path:        o.Path,
			Status:      string(o.Status),
			Reason:      o.Reason,
			Detail:      o.Detail,
			RecordingID: o.RecordingID,
			ReleaseID:   o.ReleaseID,
			ArtistID:    o.ArtistID,
			Title:       o.Title,
			Artist:      o.Artist,
			Album:       o.Album,
			Score:       o.Score,
		})
	}
	return view
}

func printImportResult(out io.Writer, root string, summary importer.Summary, outcomes []importer.Outcome, showAll bool) {
	var rows [][]string
	for _, o := range outcomes {
		if !showAll && o.Status == importer.StatusSkipped && (o.Reason == importer.ReasonImported || o.Reason == importer.ReasonCached) {
			continue
		}
		note := reasonLabel(o.Reason)
		if o.Status == importer.StatusMatched {
			note = fmt.Sprintf("score %d", o.Score)
		}
		rows = append(rows, []string{
			displayPath(root, o.Path),
			statusLabel(o.Status),
			note,
			orDash(o.Artist),
			orDash(o.Album),
			orDash(o.Title),
		})
	}

	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable(
			[]string{"File", "Status", "Note", "Artist", "Album", "Title"},
			rows,
			nil,
		))
	}

	fmt.Fprintf(out, "Run %s: %d files, %d matched, %d skipped, %d failed in %s\n",
		summary.RunID, summary.Total, summary.Matched, summary.Skipped, summary.Failed,
		summary.Duration.Round(10*time.Millisecond))
	if len(summary.Reasons) > 0 {
		keys := make([]string, 0, len(summary.Reasons))
		for k := range summary.Reasons {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%d", k, summary.Reasons[k]))
		}
		fmt.Fprintf(out, "Not imported: %s\n", strings.Join(parts, " "))
	}
}
