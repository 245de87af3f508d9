package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tracklink/internal/library"
)

func newLibraryCommand(ctx *commandContext) *cobra.Command {
	libraryCmd := &cobra.Command{
		Use:   "library",
		Short: "Browse the imported library",
	}

	libraryCmd.AddCommand(newLibraryArtistsCommand(ctx))
	libraryCmd.AddCommand(newLibraryAlbumsCommand(ctx))
	libraryCmd.AddCommand(newLibraryTracksCommand(ctx))

	return libraryCmd
}

type artistView struct {
	MBID     string `json:"mbid"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
	Albums   int    `json:"albums"`
}

type albumView struct {
	MBID     string `json:"mbid"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	ImageURL string `json:"image_url,omitempty"`
	Tracks   int    `json:"tracks"`
}

type trackView struct {
	MBID         string `json:"mbid"`
	Title        string `json:"title"`
	Disc         int    `json:"disc,omitempty"`
	Position     int    `json:"position"`
	Duration     int    `json:"duration"`
	Album        string `json:"album"`
	Artist       string `json:"artist"`
	FileLocation string `json:"file_location"`
}

func newLibraryArtistsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "artists",
		Short: "List artists",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			defer store.Close()

			artists, err := store.ListArtists(cmd.Context())
			if err != nil {
				return err
			}

			views := make([]artistView, 0, len(artists))
			for _, a := range artists {
				views = append(views, artistView{MBID: a.MBID, Name: a.Name, ImageURL: a.ImageURL, Albums: a.AlbumCount})
			}
			if ctx.JSONMode() {
				return writeJSON(cmd, views)
			}
			if len(views) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No artists in library")
				return nil
			}
			rows := make([][]string, 0, len(views))
			for _, v := range views {
				rows = append(rows, []string{v.Name, v.MBID, strconv.Itoa(v.Albums), yesNo(v.ImageURL != "")})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Artist", "MBID", "Albums", "Image"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
}

func newLibraryAlbumsCommand(ctx *commandContext) *cobra.Command {
	var artistMBID string

	cmd := &cobra.Command{
		Use:   "albums",
		Short: "List albums, optionally for one artist",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			defer store.Close()

			albums, err := store.ListAlbums(cmd.Context(), strings.TrimSpace(artistMBID))
			if err != nil {
				return err
			}

			views := make([]albumView, 0, len(albums))
			for _, a := range albums {
				views = append(views, albumView{MBID: a.MBID, Title: a.Title, Artist: a.ArtistName, ImageURL: a.ImageURL, Tracks: a.TrackCount})
			}
			if ctx.JSONMode() {
				return writeJSON(cmd, views)
			}
			if len(views) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No albums in library")
				return nil
			}
			rows := make([][]string, 0, len(views))
			for _, v := range views {
				rows = append(rows, []string{v.Title, v.Artist, v.MBID, strconv.Itoa(v.Tracks), yesNo(v.ImageURL != "")})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Album", "Artist", "MBID", "Tracks", "Cover"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
	cmd.Flags().StringVar(&artistMBID, "artist", "", "Only albums by this artist MBID")
	return cmd
}

func newLibraryTracksCommand(ctx *commandContext) *cobra.Command {
	var albumMBID string

	cmd := &cobra.Command{
		Use:   "tracks",
		Short: "List tracks, optionally for one album",
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

			tracks, err := store.ListTracks(cmd.Context(), strings.TrimSpace(albumMBID))
			if err != nil {
				return err
			}

			views := make([]trackView, 0, len(tracks))
			for _, t := range tracks {
				views = append(views, newTrackView(t))
			}
			if ctx.JSONMode() {
				return writeJSON(cmd, views)
			}
			if len(views) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tracks in library")
				return nil
			}
			rows := make([][]string, 0, len(views))
			for _, v := range views {
				position := strconv.Itoa(v.Position)
				if v.Disc > 0 {
					position = fmt.Sprintf("%d-%d", v.Disc, v.Position)
				}
				rows = append(rows, []string{
					v.Artist,
					v.Album,
					position,
					v.Title,
					formatDuration(v.Duration),
					displayPath(cfg.Paths.MusicDir, v.FileLocation),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Artist", "Album", "#", "Title", "Length", "File"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
	cmd.Flags().StringVar(&albumMBID, "album", "", "Only tracks on this album MBID")
	return cmd
}

func newTrackView(t library.Track) trackView {
	return trackView{
		MBID:         t.MBID,
		Title:        t.Title,
		Disc:         t.DiscNumber,
		Position:     t.Position,
		Duration:     t.Duration,
		Album:        t.AlbumTitle,
		Artist:       t.ArtistName,
		FileLocation: t.FileLocation,
	}
}
