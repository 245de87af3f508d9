package importer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"tracklink/internal/audiotag"
	"tracklink/internal/library"
	"tracklink/internal/matching"
	"tracklink/internal/musicbrainz"
)

func intPtr(v int) *int { return &v }

func TestTrackPosition(t *testing.T) {
	local := audiotag.Metadata{TrackNumber: 7, DiscNumber: 2}
	tests := []struct {
		name     string
		media    []musicbrainz.Medium
		wantDisc int
		wantPos  int
	}{
		{"numbered track", []musicbrainz.Medium{{Position: 1, Tracks: []musicbrainz.Track{{Number: "3"}}}}, 1, 3},
		{"vinyl side label uses offset", []musicbrainz.Medium{{Position: 1, TrackOffset: intPtr(4), Tracks: []musicbrainz.Track{{Number: "B1"}}}}, 1, 5},
		{"label without offset keeps local", []musicbrainz.Medium{{Position: 3, Tracks: []musicbrainz.Track{{Number: "A"}}}}, 3, 7},
		{"no listing keeps local", []musicbrainz.Medium{{Position: 1}}, 2, 7},
		{"no media", nil, 2, 7},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := matching.Match{Release: musicbrainz.Release{Media: tc.media}}
			disc, pos := trackPosition(m, local)
			if disc != tc.wantDisc || pos != tc.wantPos {
				t.Fatalf("trackPosition = (%d, %d), want (%d, %d)", disc, pos, tc.wantDisc, tc.wantPos)
			}
		})
	}
}

func TestTrackDuration(t *testing.T) {
	local := audiotag.Metadata{Length: 99}
	withTrack := musicbrainz.Release{Media: []musicbrainz.Medium{{Tracks: []musicbrainz.Track{{Length: intPtr(120499)}}}}}

	tests := []struct {
		name string
		m    matching.Match
		want int
	}{
		{"recording length rounds", matching.Match{Recording: musicbrainz.Recording{Length: intPtr(181500)}}, 182},
		{"track length", matching.Match{Release: withTrack}, 120},
		{"local fallback", matching.Match{}, 99},
		{"zero length ignored", matching.Match{Recording: musicbrainz.Recording{Length: intPtr(0)}}, 99},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := trackDuration(tc.m, local); got != tc.want {
				t.Fatalf("trackDuration = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err    error
		status Status
		reason string
	}{
		{fmt.Errorf("x: %w", &audiotag.ParseError{Field: audiotag.FieldTrackNumber, Value: "abc"}), StatusSkipped, ReasonParseError},
		{fmt.Errorf("x: %w", audiotag.ErrUnsupportedDialect), StatusSkipped, ReasonUnsupported},
		{fmt.Errorf("x: %w", matching.ErrNoCandidate), StatusSkipped, ReasonNoCandidate},
		{fmt.Errorf("x: %w", library.ErrTrackExists), StatusSkipped, ReasonTrackRejected},
		{fmt.Errorf("x: %w", matching.ErrIncompleteMatch), StatusFailed, ReasonIncomplete},
		{fmt.Errorf("%w: boom", errCatalog), StatusFailed, ReasonCatalog},
		{fmt.Errorf("%w: boom", errStore), StatusFailed, ReasonStore},
		{fmt.Errorf("%w: boom", errUnreadable), StatusSkipped, ReasonUnreadable},
		{context.Canceled, StatusFailed, ReasonCancelled},
		{errors.New("mystery"), StatusFailed, ReasonError},
	}
	for _, tc := range tests {
		status, reason := classify(tc.err)
		if status != tc.status || reason != tc.reason {
			t.Errorf("classify(%v) = %s/%s, want %s/%s", tc.err, status, reason, tc.status, tc.reason)
		}
	}
}

func TestSummarize(t *testing.T) {
	outcomes := []Outcome{
		{Status: StatusMatched},
		{Status: StatusMatched},
		{Status: StatusSkipped, Reason: ReasonNoCandidate},
		{Status: StatusSkipped, Reason: ReasonNoCandidate},
		{Status: StatusFailed, Reason: ReasonCatalog},
	}
	s := Summarize("run", outcomes, 0)
	if s.Total != 5 || s.Matched != 2 || s.Skipped != 2 || s.Failed != 1 {
		t.Fatalf("unexpected counts: %#v", s)
	}
	if s.Reasons[ReasonNoCandidate] != 2 || s.Reasons[ReasonCatalog] != 1 || len(s.Reasons) != 2 {
		t.Fatalf("unexpected reasons: %#v", s.Reasons)
	}
}
