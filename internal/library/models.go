package library

import (
	"errors"
	"time"
)

// ErrTrackExists is returned when a file location is already in the library.
var ErrTrackExists = errors.New("track already imported")

// ArtistRecord describes an artist to persist.
type ArtistRecord struct {
	MBID     string
	Name     string
	ImageURL string
}

// AlbumRecord describes an album (catalog release) to persist.
type AlbumRecord struct {
	MBID     string
	Title    string
	ImageURL string
}

// TrackFields describes the track row for an imported file.
type TrackFields struct {
	MBID         string
	Title        string
	Position     int
	DiscNumber   int
	Duration     int // seconds
	FileLocation string
}

// TrackRecord is everything Import needs to persist one matched file.
type TrackRecord struct {
	Artist ArtistRecord
	Album  AlbumRecord
	Track  TrackFields
}

// ImportResult reports the row IDs written by Import and which parents
// were created by it.
type ImportResult struct {
	ArtistID  int64
	AlbumID   int64
	TrackID   int64
	NewArtist bool
	NewAlbum  bool
}

// Artist is a persisted artist row.
type Artist struct {
	ID         int64
	MBID       string
	Name       string
	ImageURL   string
	AlbumCount int
	CreatedAt  time.Time
}

// Album is a persisted album row.
type Album struct {
	ID         int64
	MBID       string
	Title      string
	ImageURL   string
	ArtistID   int64
	ArtistName string
	TrackCount int
	CreatedAt  time.Time
}

// Track is a persisted track row.
type Track struct {
	ID           int64
	MBID         string
	Title        string
	Position     int
	DiscNumber   int
	Duration     int
	FileLocation string
	AlbumID      int64
	AlbumTitle   string
	ArtistName   string
	ImportedAt   time.Time
}

// Stats counts rows per table.
type Stats struct {
	Artists int
	Albums  int
	Tracks  int
}

// DatabaseHealth captures diagnostic information about the library database.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	SchemaVersion    string
	LatestMigration  string
	MissingTables    []string
	IntegrityCheck   bool
	Error            string
}
