package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Import upserts the artist and album for a matched file and inserts its
// track row. All three writes share one transaction.
func (s *Store) Import(ctx context.Context, rec TrackRecord) (ImportResult, error) {
	if err := rec.validate(); err != nil {
		return ImportResult{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportResult{}, fmt.Errorf("begin import tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM track WHERE file_location = ?`, rec.Track.FileLocation).Scan(&exists); err != nil {
		return ImportResult{}, fmt.Errorf("check track: %w", err)
	}
	if exists > 0 {
		return ImportResult{}, fmt.Errorf("%w: %s", ErrTrackExists, rec.Track.FileLocation)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	var result ImportResult

	result.ArtistID, result.NewArtist, err = upsertArtist(ctx, tx, rec.Artist, now)
	if err != nil {
		return ImportResult{}, err
	}
	result.AlbumID, result.NewAlbum, err = upsertAlbum(ctx, tx, rec.Album, result.ArtistID, now)
	if err != nil {
		return ImportResult{}, err
	}

	res, err := tx.ExecContext(
		ctx,
		`INSERT INTO track (mbid, title, position, disc_number, duration, file_location, album_id, imported_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Track.MBID,
		rec.Track.Title,
		rec.Track.Position,
		rec.Track.DiscNumber,
		rec.Track.Duration,
		rec.Track.FileLocation,
		result.AlbumID,
		now,
	)
	if err != nil {
		return ImportResult{}, fmt.Errorf("insert track: %w", err)
	}
	if result.TrackID, err = res.LastInsertId(); err != nil {
		return ImportResult{}, fmt.Errorf("last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return ImportResult{}, fmt.Errorf("commit import: %w", err)
	}
	return result, nil
}

func upsertArtist(ctx context.Context, tx *sql.Tx, artist ArtistRecord, now string) (int64, bool, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM artist WHERE mbid = ?`, artist.MBID).Scan(&id)
	switch {
	case err == nil:
		if artist.ImageURL != "" {
			if _, err := tx.ExecContext(ctx, `UPDATE artist SET image_url = ? WHERE id = ? AND image_url IS NULL`, artist.ImageURL, id); err != nil {
				return 0, false, fmt.Errorf("update artist image: %w", err)
			}
		}
		return id, false, nil
	case !errors.Is(err, sql.ErrNoRows):
		return 0, false, fmt.Errorf("lookup artist: %w", err)
	}

	res, err := tx.ExecContext(
		ctx,
		`INSERT INTO artist (mbid, name, image_url, created_at) VALUES (?, ?, ?, ?)`,
		artist.MBID, artist.Name, nullableString(artist.ImageURL), now,
	)
	if err != nil {
		return 0, false, fmt.Errorf("insert artist: %w", err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("last insert id: %w", err)
	}
	return id, true, nil
}

func upsertAlbum(ctx context.Context, tx *sql.Tx, album AlbumRecord, artistID int64, now string) (int64, bool, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM album WHERE mbid = ?`, album.MBID).Scan(&id)
	switch {
	case err == nil:
		if album.ImageURL != "" {
			if _, err := tx.ExecContext(ctx, `UPDATE album SET image_url = ? WHERE id = ? AND image_url IS NULL`, album.ImageURL, id); err != nil {
				return 0, false, fmt.Errorf("update album image: %w", err)
			}
		}
		return id, false, nil
	case !errors.Is(err, sql.ErrNoRows):
		return 0, false, fmt.Errorf("lookup album: %w", err)
	}

	res, err := tx.ExecContext(
		ctx,
		`INSERT INTO album (mbid, title, image_url, artist_id, created_at) VALUES (?, ?, ?, ?, ?)`,
		album.MBID, album.Title, nullableString(album.ImageURL), artistID, now,
	)
	if err != nil {
		return 0, false, fmt.Errorf("insert album: %w", err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("last insert id: %w", err)
	}
	return id, true, nil
}

// HasFile reports whether a track with the given file location exists.
func (s *Store) HasFile(ctx context.Context, fileLocation string) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM track WHERE file_location = ?`, fileLocation).Scan(&count); err != nil {
		return false, fmt.Errorf("has file: %w", err)
	}
	return count > 0, nil
}

// ExistingArtistAlbum reports which of the given artist and album MBIDs are
// already stored and whether they already carry an image.
func (s *Store) ExistingArtistAlbum(ctx context.Context, artistMBID, albumMBID string) (Existing, error) {
	var existing Existing
	var image sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT image_url FROM artist WHERE mbid = ?`, artistMBID).Scan(&image)
	switch {
	case err == nil:
		existing.Artist = true
		existing.ArtistHasImage = image.Valid && image.String != ""
	case !errors.Is(err, sql.ErrNoRows):
		return Existing{}, fmt.Errorf("lookup artist: %w", err)
	}

	image = sql.NullString{}
	err = s.db.QueryRowContext(ctx, `SELECT image_url FROM album WHERE mbid = ?`, albumMBID).Scan(&image)
	switch {
	case err == nil:
		existing.Album = true
		existing.AlbumHasImage = image.Valid && image.String != ""
	case !errors.Is(err, sql.ErrNoRows):
		return Existing{}, fmt.Errorf("lookup album: %w", err)
	}
	return existing, nil
}

// Existing is the result of ExistingArtistAlbum.
type Existing struct {
	Artist         bool
	ArtistHasImage bool
	Album          bool
	AlbumHasImage  bool
}

func (r TrackRecord) validate() error {
	switch {
	case strings.TrimSpace(r.Artist.MBID) == "":
		return errors.New("artist mbid required")
	case strings.TrimSpace(r.Album.MBID) == "":
		return errors.New("album mbid required")
	case strings.TrimSpace(r.Track.MBID) == "":
		return errors.New("track mbid required")
	case strings.TrimSpace(r.Track.FileLocation) == "":
		return errors.New("track file location required")
	}
	return nil
}
