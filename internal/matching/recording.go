package matching

import (
	"fmt"
	"regexp"

	"tracklink/internal/audiotag"
	"tracklink/internal/logging"
	"tracklink/internal/musicbrainz"
	"tracklink/internal/textutil"
)

// featuredTitlePattern captures the base of a title like "Song (feat. X)".
var featuredTitlePattern = regexp.MustCompile(`(?i)^(.+?)\s*\(feat\.\s+.*\)\s*$`)

// Match is a fully resolved track.
type Match struct {
	Recording musicbrainz.Recording
	Release   musicbrainz.Release
	// Artist is the first artist credit of Release.
	Artist musicbrainz.ArtistCredit
	// ReleaseScore is the top-level score of the chosen release.
	ReleaseScore Scored[musicbrainz.Release]
}

// StripFeaturing removes a trailing "(feat. ...)" annotation from title.
func StripFeaturing(title string) string {
	if m := featuredTitlePattern.FindStringSubmatch(title); m != nil {
		return m[1]
	}
	return title
}

// ScoreRecording computes the penalty breakdown of one recording against
// local tags. The nested release term is the lowest NestedProfile score
// among the recording's releases.
func ScoreRecording(rec musicbrainz.Recording, local audiotag.Metadata, hint FormatHint) Breakdown {
	var b Breakdown
	if rec.Title != "" && local.Title != "" {
		b.add(PenaltyTrackTitle, textutil.NormalizedDistance(rec.Title, StripFeaturing(local.Title)))
	}
	b.add(PenaltyArtist, artistDistance(rec.ArtistCredit, local.Artist))
	if best := bestNestedRelease(rec.Releases, local, hint); best != nil {
		b.add(PenaltyBestRelease, best.Score)
	}
	return b
}

// ScoreRecordings scores every recording, in input order.
func ScoreRecordings(recordings []musicbrainz.Recording, local audiotag.Metadata, hint FormatHint) []Scored[musicbrainz.Recording] {
	out := make([]Scored[musicbrainz.Recording], len(recordings))
	for i, rec := range recordings {
		b := ScoreRecording(rec, local, hint)
		out[i] = Scored[musicbrainz.Recording]{Candidate: rec, Score: b.Total(), Breakdown: b, Index: i}
	}
	return out
}

// ResolveRecording picks the recording that best matches local, then picks
// its release and takes that release's first artist credit. A single
// recording is selected without scoring.
//
// ErrNoCandidate is returned for an empty list. ErrIncompleteMatch is
// returned when the chosen recording has no releases or its release has no
// artist credit.
func (r *Resolver) ResolveRecording(recordings []musicbrainz.Recording, local audiotag.Metadata, hint FormatHint) (Scored[Match], error) {
	if len(recordings) == 0 {
		return Scored[Match]{}, fmt.Errorf("resolve recording: %w", ErrNoCandidate)
	}

	r.logger.Debug("recording scoring analysis",
		logging.String("title", local.Title),
		logging.String("title_compared", StripFeaturing(local.Title)),
		logging.String("artist", local.Artist),
		logging.String("album", local.Album),
		logging.String("format_hint", hint.String()),
		logging.Int("total_candidates", len(recordings)))

	var chosen Scored[musicbrainz.Recording]
	if len(recordings) == 1 {
		chosen = Scored[musicbrainz.Recording]{Candidate: recordings[0]}
		r.logger.Debug("single recording candidate selected",
			logging.String("recording_id", recordings[0].ID))
	} else {
		scored := ScoreRecordings(recordings, local, hint)
		breakdowns := make([]Breakdown, len(scored))
		for i, s := range scored {
			breakdowns[i] = s.Breakdown
			r.logger.Debug("recording candidate scored",
				logging.Int("candidate_index", i),
				logging.String("recording_id", s.Candidate.ID),
				logging.String("recording_title", s.Candidate.Title),
				logging.Int("release_count", len(s.Candidate.Releases)),
				logging.Int("score", s.Score),
				logging.String("breakdown", s.Breakdown.String()))
		}
		chosen = scored[pickBest(breakdowns)]
	}

	rec := chosen.Candidate
	release, err := r.ResolveRelease(rec.Releases, local, hint)
	if err != nil {
		return Scored[Match]{}, fmt.Errorf("%w: recording %s has no releases", ErrIncompleteMatch, rec.ID)
	}
	if len(release.Candidate.ArtistCredit) == 0 {
		return Scored[Match]{}, fmt.Errorf("%w: release %s has no artist credit", ErrIncompleteMatch, release.Candidate.ID)
	}

	match := Match{
		Recording:    rec,
		Release:      release.Candidate,
		Artist:       release.Candidate.ArtistCredit[0],
		ReleaseScore: release,
	}
	r.logger.Info("recording selected",
		logging.Args(append(logging.DecisionAttrs("recording_match", "selected", selectionReason(len(recordings))),
			logging.String("recording_id", rec.ID),
			logging.String("recording_title", rec.Title),
			logging.String("release_id", match.Release.ID),
			logging.String("artist_id", match.Artist.Artist.ID),
			logging.String("artist", match.Artist.DisplayName()),
			logging.Int("score", chosen.Score),
			logging.String("breakdown", chosen.Breakdown.String()))...)...)

	return Scored[Match]{
		Candidate: match,
		Score:     chosen.Score,
		Breakdown: chosen.Breakdown,
		Index:     chosen.Index,
	}, nil
}

func selectionReason(candidates int) string {
	if candidates == 1 {
		return "only candidate"
	}
	return "lowest score"
}
