package library

import (
	"database/sql"
	"errors"
	"time"
)

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

type rowScanner interface{ Scan(dest ...any) error }

func scanArtist(scanner rowScanner) (Artist, error) {
	var (
		artist  Artist
		image   sql.NullString
		created sql.NullString
	)
	if err := scanner.Scan(&artist.ID, &artist.MBID, &artist.Name, &image, &created, &artist.AlbumCount); err != nil {
		return Artist{}, err
	}
	artist.ImageURL = image.String
	if t, err := parseTimeString(created.String); err == nil {
		artist.CreatedAt = t
	}
	return artist, nil
}

func scanAlbum(scanner rowScanner) (Album, error) {
	var (
		album   Album
		image   sql.NullString
		created sql.NullString
	)
	if err := scanner.Scan(&album.ID, &album.MBID, &album.Title, &image, &album.ArtistID, &album.ArtistName, &created, &album.TrackCount); err != nil {
		return Album{}, err
	}
	album.ImageURL = image.String
	if t, err := parseTimeString(created.String); err == nil {
		album.CreatedAt = t
	}
	return album, nil
}

func scanTrack(scanner rowScanner) (Track, error) {
	var (
		track    Track
		imported sql.NullString
	)
	if err := scanner.Scan(
		&track.ID,
		&track.MBID,
		&track.Title,
		&track.Position,
		&track.DiscNumber,
		&track.Duration,
		&track.FileLocation,
		&track.AlbumID,
		&track.AlbumTitle,
		&track.ArtistName,
		&imported,
	); err != nil {
		return Track{}, err
	}
	if t, err := parseTimeString(imported.String); err == nil {
		track.ImportedAt = t
	}
	return track, nil
}
