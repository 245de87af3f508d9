package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"tracklink/internal/config"
	"tracklink/internal/importer"
)

type candidateView struct {
	Index     int    `json:"index"`
	ID        string `json:"recording_id"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Releases  int    `json:"releases"`
	Score     int    `json:"score"`
	Breakdown string `json:"breakdown"`
}

type matchView struct {
	Path             string          `json:"path"`
	Dialect          string          `json:"dialect"`
	FormatHint       string          `json:"format_hint"`
	Query            string          `json:"query"`
	Candidates       []candidateView `json:"candidates"`
	RecordingID      string          `json:"recording_id,omitempty"`
	RecordingTitle   string          `json:"recording_title,omitempty"`
	ReleaseID        string          `json:"release_id,omitempty"`
	ReleaseTitle     string          `json:"release_title,omitempty"`
	ArtistID         string          `json:"artist_id,omitempty"`
	Artist           string          `json:"artist,omitempty"`
	Score            int             `json:"score"`
	Breakdown        string          `json:"breakdown,omitempty"`
	ReleaseScore     int             `json:"release_score"`
	ReleaseBreakdown string          `json:"release_breakdown,omitempty"`
	Error            string          `json:"error,omitempty"`
}

func newMatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "match <file>",
		Short: "Resolve one file against the catalog without storing it",
		Long: `Read the tags of one audio file, search the catalog, and show every
candidate recording with its penalty breakdown along with the chosen
recording, release, and artist. Nothing is written to the library.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			imp, err := ctx.newImporter(cmd.Context(), nil)
			if err != nil {
				return err
			}

			preview, resolveErr := imp.Resolve(cmd.Context(), path)
			view := buildMatchView(path, preview, resolveErr)
			if ctx.JSONMode() {
				if err := writeJSON(cmd, view); err != nil {
					return err
				}
				return resolveErr
			}
			printMatch(cmd.OutOrStdout(), view)
			return resolveErr
		},
	}
}

func buildMatchView(path string, preview importer.Preview, err error) matchView {
	view := matchView{
		Path:       path,
		Query:      preview.Query,
		Candidates: []candidateView{},
	}
	if preview.File.Dialect != 0 {
		view.Dialect = preview.File.Dialect.String()
		view.FormatHint = preview.Hint.String()
	}
	for _, c := range preview.Candidates {
		artist := ""
		if len(c.Candidate.ArtistCredit) > 0 {
			artist = c.Candidate.ArtistCredit[0].DisplayName()
		}
		view.Candidates = append(view.Candidates, candidateView{
			Index:     c.Index + 1,
			ID:        c.Candidate.ID,
			Title:     c.Candidate.Title,
			Artist:    artist,
			Releases:  len(c.Candidate.Releases),
			Score:     c.Score,
			Breakdown: c.Breakdown.String(),
		})
	}
	if err != nil {
		view.Error = err.Error()
		return view
	}

	m := preview.Match
	view.RecordingID = m.Candidate.Recording.ID
	view.RecordingTitle = m.Candidate.Recording.Title
	view.ReleaseID = m.Candidate.Release.ID
	view.ReleaseTitle = m.Candidate.Release.Title
	view.ArtistID = m.Candidate.Artist.Artist.ID
	view.Artist = m.Candidate.Artist.DisplayName()
	view.Score = m.Score
	view.Breakdown = m.Breakdown.String()
	view.ReleaseScore = m.Candidate.ReleaseScore.Score
	view.ReleaseBreakdown = m.Candidate.ReleaseScore.Breakdown.String()
	return view
}

func printMatch(out io.Writer, view matchView) {
	fmt.Fprintln(out, renderKeyValues([][2]string{
		{"File", view.Path},
		{"Dialect", orDash(view.Dialect)},
		{"Format hint", orDash(view.FormatHint)},
	}))
	fmt.Fprintf(out, "Query: %s\n", orDash(view.Query))

	if len(view.Candidates) > 0 {
		rows := make([][]string, 0, len(view.Candidates))
		for _, c := range view.Candidates {
			marker := ""
			if c.ID == view.RecordingID {
				marker = "*"
			}
			rows = append(rows, []string{
				marker + strconv.Itoa(c.Index),
				c.ID,
				c.Title,
				orDash(c.Artist),
				strconv.Itoa(c.Releases),
				strconv.Itoa(c.Score),
				c.Breakdown,
			})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"#", "Recording", "Title", "Artist", "Releases", "Score", "Breakdown"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
		))
	}

	if view.Error != "" {
		fmt.Fprintf(out, "No match: %s\n", view.Error)
		return
	}
	fmt.Fprintln(out, renderKeyValues([][2]string{
		{"Recording", fmt.Sprintf("%s (%s)", view.RecordingTitle, view.RecordingID)},
		{"Release", fmt.Sprintf("%s (%s)", view.ReleaseTitle, view.ReleaseID)},
		{"Artist", fmt.Sprintf("%s (%s)", view.Artist, view.ArtistID)},
		{"Recording score", fmt.Sprintf("%d [%s]", view.Score, view.Breakdown)},
		{"Release score", fmt.Sprintf("%d [%s]", view.ReleaseScore, view.ReleaseBreakdown)},
	}))
}
