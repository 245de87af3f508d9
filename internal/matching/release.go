package matching

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"tracklink/internal/audiotag"
	"tracklink/internal/logging"
	"tracklink/internal/musicbrainz"
	"tracklink/internal/textutil"
)

// Penalty term names.
const (
	PenaltyClean            = "clean_disambiguation"
	PenaltyAlbumTitle       = "album_title"
	PenaltyArtist           = "artist"
	PenaltyFormat           = "format_mismatch"
	PenaltyReleaseTracks    = "release_track_count"
	PenaltyMediumTracks     = "medium_track_count"
	PenaltyTrackNumber      = "track_number"
	PenaltyCountry          = "country"
	PenaltyTrackTitle       = "track_title"
	PenaltyBestRelease      = "best_release"
	cleanPenalty            = 3
	trackCountPenalty       = 5
	trackNumberPenalty      = 5
	preferredReleaseCountry = "US"
)

// Profile holds the release penalties that differ between scoring a release
// list directly and scoring releases nested under a recording candidate.
type Profile struct {
	Name           string
	FormatMismatch int
	ForeignCountry int
}

var (
	// ReleaseProfile applies when choosing among a selected recording's
	// releases. Format is enforced by filtering, not by penalty.
	ReleaseProfile = Profile{Name: "release", FormatMismatch: 0, ForeignCountry: 1}
	// NestedProfile applies when a release score refines a recording score.
	NestedProfile = Profile{Name: "nested", FormatMismatch: 6, ForeignCountry: 2}
)

// ScoreRelease computes the penalty breakdown of one release against local
// tags.
func ScoreRelease(release musicbrainz.Release, local audiotag.Metadata, hint FormatHint, profile Profile) Breakdown {
	var b Breakdown

	if release.Disambiguation != "" && strings.Contains(cases.Fold().String(release.Disambiguation), "clean") {
		b.add(PenaltyClean, cleanPenalty)
	}
	if release.Title != "" && local.Album != "" {
		b.add(PenaltyAlbumTitle, textutil.NormalizedDistance(release.Title, local.Album))
	}
	b.add(PenaltyArtist, artistDistance(release.ArtistCredit, local.Artist))
	if hint != FormatUnknown && !hasMediumFormat(release, hint) {
		b.add(PenaltyFormat, profile.FormatMismatch)
	}
	if local.TrackCount > 0 {
		if release.TrackCount != nil && *release.TrackCount != local.TrackCount {
			b.add(PenaltyReleaseTracks, trackCountPenalty)
		}
		if !anyMediumTrackCount(release.Media, local.TrackCount) {
			b.add(PenaltyMediumTracks, trackCountPenalty)
		}
	}
	if local.TrackNumber > 0 && !anyMediumOffset(release.Media, local.TrackNumber) {
		b.add(PenaltyTrackNumber, trackNumberPenalty)
	}
	if release.Country != "" && release.Country != preferredReleaseCountry {
		b.add(PenaltyCountry, profile.ForeignCountry)
	}
	return b
}

// ScoreReleases scores every release with profile, in input order.
func ScoreReleases(releases []musicbrainz.Release, local audiotag.Metadata, hint FormatHint, profile Profile) []Scored[musicbrainz.Release] {
	out := make([]Scored[musicbrainz.Release], len(releases))
	for i, rel := range releases {
		b := ScoreRelease(rel, local, hint, profile)
		out[i] = Scored[musicbrainz.Release]{Candidate: rel, Score: b.Total(), Breakdown: b, Index: i}
	}
	return out
}

// FilterByFormat keeps releases with at least one medium in the hinted
// format. When nothing would remain, or the hint is unknown, releases is
// returned unchanged.
func FilterByFormat(releases []musicbrainz.Release, hint FormatHint) []musicbrainz.Release {
	idx, _ := filterByFormat(releases, hint)
	if len(idx) == len(releases) {
		return releases
	}
	kept := make([]musicbrainz.Release, len(idx))
	for i, j := range idx {
		kept[i] = releases[j]
	}
	return kept
}

// filterByFormat returns the indexes of the releases that survive the format
// filter and whether the filter fell back to the full list.
func filterByFormat(releases []musicbrainz.Release, hint FormatHint) ([]int, bool) {
	all := make([]int, len(releases))
	for i := range releases {
		all[i] = i
	}
	if hint == FormatUnknown {
		return all, false
	}
	kept := make([]int, 0, len(releases))
	for i, rel := range releases {
		if hasMediumFormat(rel, hint) {
			kept = append(kept, i)
		}
	}
	if len(kept) == 0 {
		return all, true
	}
	return kept, false
}

// ResolveRelease picks the best release for local. A single release is
// returned with score 0 without being scored.
func (r *Resolver) ResolveRelease(releases []musicbrainz.Release, local audiotag.Metadata, hint FormatHint) (Scored[musicbrainz.Release], error) {
	switch len(releases) {
	case 0:
		return Scored[musicbrainz.Release]{}, fmt.Errorf("resolve release: %w", ErrNoCandidate)
	case 1:
		r.logger.Debug("single release candidate selected",
			logging.Args(append(logging.DecisionAttrs("release_match", "selected", "only candidate"),
				logging.String("release_id", releases[0].ID),
				logging.String("release_title", releases[0].Title))...)...)
		return Scored[musicbrainz.Release]{Candidate: releases[0]}, nil
	}

	idx, fellBack := filterByFormat(releases, hint)
	if fellBack {
		r.logger.Debug("no release matches format hint; scoring all releases",
			logging.String("format_hint", hint.String()),
			logging.Int("release_count", len(releases)))
	}

	breakdowns := make([]Breakdown, len(idx))
	for i, j := range idx {
		rel := releases[j]
		breakdowns[i] = ScoreRelease(rel, local, hint, ReleaseProfile)
		r.logger.Debug("release candidate scored",
			logging.Int("candidate_index", j),
			logging.String("release_id", rel.ID),
			logging.String("release_title", rel.Title),
			logging.String("country", rel.Country),
			logging.Int("score", breakdowns[i].Total()),
			logging.String("breakdown", breakdowns[i].String()),
			logging.String("profile", ReleaseProfile.Name))
	}

	winner := pickBest(breakdowns)
	best := Scored[musicbrainz.Release]{
		Candidate: releases[idx[winner]],
		Score:     breakdowns[winner].Total(),
		Breakdown: breakdowns[winner],
		Index:     idx[winner],
	}
	r.logger.Info("release selected",
		logging.Args(append(logging.DecisionAttrs("release_match", "selected", "lowest score"),
			logging.String("release_id", best.Candidate.ID),
			logging.String("release_title", best.Candidate.Title),
			logging.Int("score", best.Score),
			logging.String("breakdown", best.Breakdown.String()),
			logging.Int("candidates", len(releases)),
			logging.Int("after_format_filter", len(idx)))...)...)
	return best, nil
}

// bestNestedRelease returns the lowest release score under NestedProfile, or
// nil when there are no releases.
func bestNestedRelease(releases []musicbrainz.Release, local audiotag.Metadata, hint FormatHint) *Scored[musicbrainz.Release] {
	if len(releases) == 0 {
		return nil
	}
	scored := ScoreReleases(releases, local, hint, NestedProfile)
	breakdowns := make([]Breakdown, len(scored))
	for i, s := range scored {
		breakdowns[i] = s.Breakdown
	}
	best := scored[pickBest(breakdowns)]
	return &best
}

func artistDistance(credits []musicbrainz.ArtistCredit, localArtist string) int {
	if localArtist == "" || len(credits) == 0 {
		return 0
	}
	best := -1
	for _, credit := range credits {
		d := textutil.NormalizedDistance(credit.DisplayName(), localArtist)
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}

func hasMediumFormat(release musicbrainz.Release, hint FormatHint) bool {
	want := hint.MediumFormat()
	if want == "" {
		return false
	}
	for _, m := range release.Media {
		if m.Format == want {
			return true
		}
	}
	return false
}

func anyMediumTrackCount(media []musicbrainz.Medium, count int) bool {
	for _, m := range media {
		if m.TrackCount != nil && *m.TrackCount == count {
			return true
		}
	}
	return false
}

func anyMediumOffset(media []musicbrainz.Medium, trackNumber int) bool {
	for _, m := range media {
		if m.TrackOffset != nil && *m.TrackOffset+1 == trackNumber {
			return true
		}
	}
	return false
}
