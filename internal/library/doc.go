// Package library persists matched artists, albums, and tracks in SQLite.
//
// The Store owns the database connection, applies the embedded migrations in
// order, and exposes the small set of writes the importer needs: Import
// upserts the artist and album for a matched file and inserts its track row
// inside one transaction, so a failed import never leaves a half-written
// album behind. Read helpers back the CLI listings and status output.
//
// Catalog identifiers (MBIDs) are the natural keys for artists and albums.
// A track is unique by its file location; importing the same file twice is
// rejected with ErrTrackExists.
package library
