// Command tracklink matches local audio files to MusicBrainz recordings and
// keeps the matches in a local library database.
//
//	tracklink import [dir]            # match and store every audio file
//	tracklink match <file>            # show how one file would be matched
//	tracklink tags <file>             # show the tags read from one file
//	tracklink library artists|albums|tracks
//	tracklink cache list|remove|clear # files remembered as unmatched
//	tracklink config init|validate
//	tracklink status
package main
