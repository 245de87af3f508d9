package importer

import (
	"strconv"

	"tracklink/internal/audiotag"
	"tracklink/internal/matching"
)

// trackPosition returns the disc and track position of the matched
// recording on its release. The catalog's track listing wins; local tags
// fill whatever the listing leaves out.
func trackPosition(m matching.Match, md audiotag.Metadata) (disc, position int) {
	disc, position = md.DiscNumber, md.TrackNumber
	for _, medium := range m.Release.Media {
		if len(medium.Tracks) == 0 {
			continue
		}
		if medium.Position > 0 {
			disc = medium.Position
		}
		if n, err := strconv.Atoi(medium.Tracks[0].Number); err == nil && n > 0 {
			return disc, n
		}
		if medium.TrackOffset != nil {
			return disc, *medium.TrackOffset + 1
		}
		return disc, position
	}
	return disc, position
}

// trackDuration returns the length in whole seconds, preferring the
// recording's catalog length.
func trackDuration(m matching.Match, md audiotag.Metadata) int {
	if m.Recording.Length != nil && *m.Recording.Length > 0 {
		return (*m.Recording.Length + 500) / 1000
	}
	for _, medium := range m.Release.Media {
		for _, track := range medium.Tracks {
			if track.Length != nil && *track.Length > 0 {
				return (*track.Length + 500) / 1000
			}
		}
	}
	return md.Length
}
