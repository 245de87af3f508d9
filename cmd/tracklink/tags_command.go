package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"tracklink/internal/audiotag"
	"tracklink/internal/config"
	"tracklink/internal/matching"
	"tracklink/internal/musicbrainz"
)

type tagsView struct {
	Path        string `json:"path"`
	Dialect     string `json:"dialect"`
	FormatHint  string `json:"format_hint"`
	Album       string `json:"album"`
	Artist      string `json:"artist"`
	Title       string `json:"title"`
	TrackNumber int    `json:"track_number"`
	TrackCount  int    `json:"track_count"`
	CountFilled bool   `json:"track_count_from_siblings"`
	DiscNumber  int    `json:"disc_number"`
	DiscCount   int    `json:"disc_count"`
	Length      int    `json:"length_seconds"`
	Query       string `json:"query"`
}

func newTagsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tags <file>",
		Short: "Show the tags read from one audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			file, err := audiotag.Read(path)
			if err != nil {
				return err
			}
			md := file.Metadata
			filled := audiotag.Enrich(path, &md, cfg.Import.Extensions)

			view := tagsView{
				Path:        path,
				Dialect:     file.Dialect.String(),
				FormatHint:  matching.ClassifyFormat(path, md).String(),
				Album:       md.Album,
				Artist:      md.Artist,
				Title:       md.Title,
				TrackNumber: md.TrackNumber,
				TrackCount:  md.TrackCount,
				CountFilled: filled,
				DiscNumber:  md.DiscNumber,
				DiscCount:   md.DiscCount,
				Length:      md.Length,
				Query:       musicbrainz.BuildQuery(md),
			}
			if ctx.JSONMode() {
				return writeJSON(cmd, view)
			}

			trackCount := intOrDash(view.TrackCount)
			if filled {
				trackCount += " (from " + filepath.Base(filepath.Dir(path)) + ")"
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderKeyValues([][2]string{
				{"File", view.Path},
				{"Dialect", view.Dialect},
				{"Format hint", view.FormatHint},
				{"Album", orDash(view.Album)},
				{"Artist", orDash(view.Artist)},
				{"Title", orDash(view.Title)},
				{"Track", intOrDash(view.TrackNumber)},
				{"Track count", trackCount},
				{"Disc", intOrDash(view.DiscNumber)},
				{"Disc count", intOrDash(view.DiscCount)},
				{"Length", formatDuration(view.Length)},
			}))
			fmt.Fprintf(cmd.OutOrStdout(), "Query: %s\n", orDash(view.Query))
			return nil
		},
	}
}
