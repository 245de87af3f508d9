package matching

import "errors"

var (
	// ErrNoCandidate means the candidate list was empty. The caller should
	// skip the track and continue.
	ErrNoCandidate = errors.New("no candidate")
	// ErrIncompleteMatch means a recording was selected but no release or
	// artist credit could be taken from it.
	ErrIncompleteMatch = errors.New("incomplete match")
)
