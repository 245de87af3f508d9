package importer

import (
	"context"
	"errors"
	"time"

	"tracklink/internal/audiotag"
	"tracklink/internal/library"
	"tracklink/internal/matching"
)

// Status classifies how a file left the pipeline.
type Status string

const (
	StatusMatched Status = "matched"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Skip and failure reasons recorded on outcomes and in the match cache.
const (
	ReasonImported      = "already_imported"
	ReasonCached        = "cached"
	ReasonNoCandidate   = "no_candidate"
	ReasonParseError    = "parse_error"
	ReasonUnsupported   = "unsupported_format"
	ReasonIncomplete    = "incomplete_match"
	ReasonCatalog       = "catalog_error"
	ReasonStore         = "store_error"
	ReasonUnreadable    = "unreadable"
	ReasonCancelled     = "cancelled"
	ReasonError         = "error"
	ReasonTrackRejected = "track_exists"
)

// Outcome is the result of processing one file.
type Outcome struct {
	Path        string
	Status      Status
	Reason      string
	Detail      string
	RecordingID string
	ReleaseID   string
	ArtistID    string
	Title       string
	Artist      string
	Album       string
	Score       int
	NewArtist   bool
	NewAlbum    bool
	Err         error
}

// Summary counts outcomes for a batch.
type Summary struct {
	RunID    string
	Total    int
	Matched  int
	Skipped  int
	Failed   int
	Duration time.Duration
	// Reasons counts skipped and failed outcomes by reason.
	Reasons map[string]int
}

// Summarize counts outcomes by status and reason.
func Summarize(runID string, outcomes []Outcome, elapsed time.Duration) Summary {
	s := Summary{RunID: runID, Total: len(outcomes), Duration: elapsed, Reasons: make(map[string]int)}
	for _, o := range outcomes {
		switch o.Status {
		case StatusMatched:
			s.Matched++
			continue
		case StatusSkipped:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		}
		s.Reasons[o.Reason]++
	}
	return s
}

// classify maps a pipeline error to an outcome status and reason.
func classify(err error) (Status, string) {
	var parseErr *audiotag.ParseError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return StatusFailed, ReasonCancelled
	case errors.As(err, &parseErr):
		return StatusSkipped, ReasonParseError
	case errors.Is(err, audiotag.ErrUnsupportedDialect):
		return StatusSkipped, ReasonUnsupported
	case errors.Is(err, matching.ErrNoCandidate):
		return StatusSkipped, ReasonNoCandidate
	case errors.Is(err, library.ErrTrackExists):
		return StatusSkipped, ReasonTrackRejected
	case errors.Is(err, matching.ErrIncompleteMatch):
		return StatusFailed, ReasonIncomplete
	case errors.Is(err, errCatalog):
		return StatusFailed, ReasonCatalog
	case errors.Is(err, errStore):
		return StatusFailed, ReasonStore
	case errors.Is(err, errUnreadable):
		return StatusSkipped, ReasonUnreadable
	}
	return StatusFailed, ReasonError
}

// cacheable reports whether a skip reason should be remembered until the
// file changes.
func cacheable(reason string) bool {
	return reason == ReasonNoCandidate || reason == ReasonParseError || reason == ReasonUnsupported
}

var (
	errCatalog    = errors.New("catalog request failed")
	errStore      = errors.New("library write failed")
	errUnreadable = errors.New("file unreadable")
)
