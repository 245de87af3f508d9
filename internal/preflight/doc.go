// Package preflight provides readiness checks for the catalog services and
// filesystem paths tracklink depends on.
//
// The CLI "tracklink status" command runs RunAll to display health. The
// import command only checks that the music directory is readable before it
// starts a batch; catalog failures surface per file.
//
// The Spotify check is skipped unless credentials are configured.
package preflight
