package library

import (
	"context"
	"fmt"
)

// ListArtists returns all artists ordered by name.
func (s *Store) ListArtists(ctx context.Context) ([]Artist, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT a.id, a.mbid, a.name, a.image_url, a.created_at,
               (SELECT COUNT(1) FROM album al WHERE al.artist_id = a.id)
        FROM artist a
        ORDER BY a.name COLLATE NOCASE, a.id`)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	defer rows.Close()

	var artists []Artist
	for rows.Next() {
		artist, err := scanArtist(rows)
		if err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		artists = append(artists, artist)
	}
	return artists, rows.Err()
}

// ListAlbums returns albums ordered by artist then title. A non-empty
// artistMBID restricts the result to that artist.
func (s *Store) ListAlbums(ctx context.Context, artistMBID string) ([]Album, error) {
	query := `
        SELECT al.id, al.mbid, al.title, al.image_url, al.artist_id, a.name, al.created_at,
               (SELECT COUNT(1) FROM track t WHERE t.album_id = al.id)
        FROM album al
        JOIN artist a ON a.id = al.artist_id`
	var args []any
	if artistMBID != "" {
		query += ` WHERE a.mbid = ?`
		args = append(args, artistMBID)
	}
	query += ` ORDER BY a.name COLLATE NOCASE, al.title COLLATE NOCASE, al.id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	defer rows.Close()

	var albums []Album
	for rows.Next() {
		album, err := scanAlbum(rows)
		if err != nil {
			return nil, fmt.Errorf("scan album: %w", err)
		}
		albums = append(albums, album)
	}
	return albums, rows.Err()
}

// ListTracks returns tracks in album order. A non-empty albumMBID restricts
// the result to that album.
func (s *Store) ListTracks(ctx context.Context, albumMBID string) ([]Track, error) {
	query := `
        SELECT t.id, t.mbid, t.title, t.position, t.disc_number, t.duration, t.file_location,
               t.album_id, al.title, a.name, t.imported_at
        FROM track t
        JOIN album al ON al.id = t.album_id
        JOIN artist a ON a.id = al.artist_id`
	var args []any
	if albumMBID != "" {
		query += ` WHERE al.mbid = ?`
		args = append(args, albumMBID)
	}
	query += ` ORDER BY a.name COLLATE NOCASE, al.title COLLATE NOCASE, t.disc_number, t.position, t.id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tracks: %w", err)
	}
	defer rows.Close()

	var tracks []Track
	for rows.Next() {
		track, err := scanTrack(rows)
		if err != nil {
			return nil, fmt.Errorf("scan track: %w", err)
		}
		tracks = append(tracks, track)
	}
	return tracks, rows.Err()
}
