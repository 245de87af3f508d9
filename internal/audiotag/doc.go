// Package audiotag reads the tag block of local audio files and maps it onto
// the canonical Metadata shape used for catalog matching.
//
// Two tag dialects are supported: Vorbis comments (FLAC, Ogg) and ID3v2
// frames (MP3). Each dialect has a fixed table of raw keys per field; the
// container parsing itself is delegated to github.com/dhowden/tag.
//
// The package also owns the track-count fallback: when a file carries no
// track total, CountSiblings counts the audio files next to it.
package audiotag
