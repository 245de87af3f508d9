package importer

import (
	"context"
	"fmt"

	"tracklink/internal/audiotag"
	"tracklink/internal/logging"
	"tracklink/internal/matching"
	"tracklink/internal/musicbrainz"
)

// Preview is the outcome of resolving one file without persisting it.
type Preview struct {
	File       audiotag.File
	Enriched   bool
	Hint       matching.FormatHint
	Query      string
	Candidates []matching.Scored[musicbrainz.Recording]
	Match      matching.Scored[matching.Match]
}

// Resolve reads path, searches the catalog, and picks the best recording
// and release. The returned Preview is populated as far as the pipeline got
// even when an error is returned.
func (imp *Importer) Resolve(ctx context.Context, path string) (Preview, error) {
	var preview Preview
	logger := logging.WithContext(ctx, imp.logger)

	file, err := audiotag.Read(path)
	if err != nil {
		return preview, readError(err)
	}
	preview.File = file
	preview.Enriched = audiotag.Enrich(path, &preview.File.Metadata, imp.extensions)
	if preview.Enriched {
		logger.Debug("track count filled from sibling files",
			logging.Int("track_count", preview.File.Metadata.TrackCount))
	}
	md := preview.File.Metadata
	preview.Hint = matching.ClassifyFormat(path, md)
	preview.Query = musicbrainz.BuildQuery(md)

	resp, err := imp.catalog.SearchRecordings(ctx, md)
	if err != nil {
		return preview, fmt.Errorf("%w: search recordings: %w", errCatalog, err)
	}
	var recordings []musicbrainz.Recording
	if resp != nil {
		recordings = resp.Recordings
	}
	logger.Debug("catalog search complete",
		logging.String("query", preview.Query),
		logging.Int("result_count", len(recordings)))

	if len(recordings) > 1 {
		preview.Candidates = matching.ScoreRecordings(recordings, md, preview.Hint)
	}
	preview.Match, err = imp.resolver.ResolveRecording(recordings, md, preview.Hint)
	if err != nil {
		return preview, err
	}
	return preview, nil
}

func readError(err error) error {
	if _, reason := classify(err); reason != ReasonError {
		return err
	}
	return fmt.Errorf("%w: %w", errUnreadable, err)
}
