// Package importer links the audio files under the music directory to the
// catalog and records the matches in the library.
//
// A batch walks the music directory for configured extensions and runs each
// file through the same pipeline: skip files already in the library or
// remembered as unmatched, read the tag block, fill a missing track count
// from sibling files, classify the origin medium, search the catalog,
// resolve the best recording and release, fetch images for entities the
// library has not seen, and persist the result.
//
// Files are processed concurrently up to the configured worker count. One
// file's failure is recorded in its Outcome and never stops the batch. An
// exclusive file lock keeps two batches from writing the library at once.
package importer
