// Package matchcache remembers files that could not be matched to the catalog.
//
// Each entry records why a file was left out of the library (no candidate,
// unreadable tags, incomplete catalog data) together with the file's size and
// modification time. An import batch consults the cache before searching the
// catalog again: while the fingerprint still matches, the file is skipped.
// Editing the tags changes the fingerprint and the file is retried.
//
// # Storage
//
// The cache is a JSON file (default: <data_dir>/match_cache.json). It is
// human-readable and safe to delete.
//
// CLI commands for inspection and management:
//
//	tracklink cache list              # List all cached outcomes
//	tracklink cache remove <number>   # Remove entry by number from list
//	tracklink cache clear             # Remove all entries
package matchcache
