package testsupport

import (
	"context"
	"testing"

	"tracklink/internal/config"
	"tracklink/internal/library"
)

// MustOpenLibrary opens a library.Store for tests and registers cleanup.
func MustOpenLibrary(t testing.TB, cfg *config.Config) *library.Store {
	t.Helper()

	store, err := library.Open(cfg)
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// ImportTrack persists a track for tests using the provided store.
func ImportTrack(t testing.TB, store *library.Store, rec library.TrackRecord) library.ImportResult {
	t.Helper()

	result, err := store.Import(context.Background(), rec)
	if err != nil {
		t.Fatalf("store.Import: %v", err)
	}
	return result
}

// TrackRecord builds a complete record with the given identifiers.
func TrackRecord(artistMBID, albumMBID, trackMBID, path string) library.TrackRecord {
	return library.TrackRecord{
		Artist: library.ArtistRecord{MBID: artistMBID, Name: "Artist " + artistMBID},
		Album:  library.AlbumRecord{MBID: albumMBID, Title: "Album " + albumMBID},
		Track: library.TrackFields{
			MBID:         trackMBID,
			Title:        "Track " + trackMBID,
			Position:     1,
			Duration:     200,
			FileLocation: path,
		},
	}
}
