// Package musicbrainz provides the MusicBrainz and Cover Art Archive client
// used during import.
//
// It builds Lucene recording queries from local tag metadata, searches the
// ws/2 JSON API, looks up artists with their URL relations, and fetches
// release cover art. All requests share one rate limiter so concurrent import
// workers stay within the service's published request budget. Options allow
// tests to supply custom HTTP clients and limiters.
package musicbrainz
