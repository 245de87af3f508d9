package importer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"tracklink/internal/audiotag"
	"tracklink/internal/config"
	"tracklink/internal/library"
	"tracklink/internal/logging"
	"tracklink/internal/matchcache"
	"tracklink/internal/matching"
	"tracklink/internal/musicbrainz"
)

// ErrBatchRunning is returned when another process holds the import lock.
var ErrBatchRunning = errors.New("another import batch is running")

// Library is the persistence the importer writes to.
type Library interface {
	Import(ctx context.Context, rec library.TrackRecord) (library.ImportResult, error)
	HasFile(ctx context.Context, fileLocation string) (bool, error)
	ExistingArtistAlbum(ctx context.Context, artistMBID, albumMBID string) (library.Existing, error)
}

// ImageProvider resolves an artist image from the artist's URL relations.
type ImageProvider interface {
	ArtistImage(ctx context.Context, resources []string) (string, error)
}

// Importer runs files through the match pipeline.
type Importer struct {
	musicDir          string
	lockPath          string
	workers           int
	extensions        []string
	rememberUnmatched bool

	catalog  musicbrainz.Searcher
	store    Library
	cache    *matchcache.Cache
	images   ImageProvider
	resolver *matching.Resolver
	logger   *slog.Logger
}

// Option configures an Importer.
type Option func(*Importer)

// WithImageProvider enables artist image lookups for new artists.
func WithImageProvider(images ImageProvider) Option {
	return func(imp *Importer) { imp.images = images }
}

// WithMatchCache sets the cache consulted before searching the catalog.
func WithMatchCache(cache *matchcache.Cache) Option {
	return func(imp *Importer) {
		if cache != nil {
			imp.cache = cache
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(imp *Importer) { imp.logger = logger }
}

// New builds an importer. store may be nil when only Resolve is used.
func New(cfg *config.Config, catalog musicbrainz.Searcher, store Library, opts ...Option) *Importer {
	imp := &Importer{
		musicDir:          cfg.Paths.MusicDir,
		lockPath:          cfg.LockPath(),
		workers:           max(cfg.Import.Workers, 1),
		extensions:        cfg.Import.Extensions,
		rememberUnmatched: cfg.Import.RememberUnmatched,
		catalog:           catalog,
		store:             store,
	}
	for _, opt := range opts {
		opt(imp)
	}
	if imp.cache == nil {
		imp.cache = matchcache.NewCache("", nil)
	}
	imp.resolver = matching.NewResolver(imp.logger)
	imp.logger = logging.NewComponentLogger(imp.logger, "importer")
	return imp
}

// Discover lists the audio files under dir in lexical order. Hidden
// directories are not entered.
func (imp *Importer) Discover(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			logging.WarnWithContext(imp.logger, "skipping unreadable path", "discover_path_unreadable",
				logging.String(logging.FieldTrackPath, path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check file permissions"),
				logging.String(logging.FieldImpact, "files below this path are not imported"))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if audiotag.IsAudioFile(path, imp.extensions) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return files, nil
}

// Run imports every audio file under dir, or under the music directory when
// dir is empty. Per-file failures are reported in the outcomes; the returned
// error is reserved for problems that prevent the batch from running.
func (imp *Importer) Run(ctx context.Context, dir string) (Summary, []Outcome, error) {
	if imp.store == nil {
		return Summary{}, nil, errors.New("importer has no library store")
	}
	if strings.TrimSpace(dir) == "" {
		dir = imp.musicDir
	}

	lock := flock.New(imp.lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return Summary{}, nil, fmt.Errorf("acquire import lock: %w", err)
	}
	if !ok {
		return Summary{}, nil, fmt.Errorf("%w (lock %s)", ErrBatchRunning, imp.lockPath)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			imp.logger.Warn("failed to release import lock", logging.Error(err))
		}
	}()

	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, imp.logger)
	start := time.Now()

	files, err := imp.Discover(dir)
	if err != nil {
		return Summary{RunID: runID}, nil, err
	}
	logger.Info("import batch started",
		logging.String("music_dir", dir),
		logging.Int("file_count", len(files)),
		logging.Int("workers", imp.workers))

	outcomes := make([]Outcome, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(imp.workers)
	for i, path := range files {
		g.Go(func() error {
			outcomes[i] = imp.ProcessFile(gctx, path)
			return nil // one file never stops the batch
		})
	}
	_ = g.Wait()

	summary := Summarize(runID, outcomes, time.Since(start))
	logger.Info("import batch complete",
		logging.Int("total", summary.Total),
		logging.Int("matched", summary.Matched),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Duration("elapsed", summary.Duration))
	return summary, outcomes, nil
}

// ProcessFile runs one file through the pipeline and persists a match.
func (imp *Importer) ProcessFile(ctx context.Context, path string) Outcome {
	ctx = logging.WithTrackPath(ctx, path)
	logger := logging.WithContext(ctx, imp.logger)
	out := Outcome{Path: path}

	if err := ctx.Err(); err != nil {
		return imp.finish(logger, out, err)
	}

	has, err := imp.store.HasFile(ctx, path)
	if err != nil {
		return imp.finish(logger, out, fmt.Errorf("%w: %w", errStore, err))
	}
	if has {
		out.Status, out.Reason = StatusSkipped, ReasonImported
		logger.Debug("file already in library")
		return out
	}

	info, err := os.Stat(path)
	if err != nil {
		return imp.finish(logger, out, fmt.Errorf("%w: %w", errUnreadable, err))
	}
	if entry, ok := imp.cache.Fresh(path, info); ok {
		out.Status, out.Reason, out.Detail = StatusSkipped, ReasonCached, entry.Status
		logger.Debug("file unchanged since last unmatched attempt", logging.String("cached_status", entry.Status))
		return out
	}

	preview, err := imp.Resolve(ctx, path)
	if err != nil {
		return imp.finish(logger, out, err)
	}

	match := preview.Match.Candidate
	out.RecordingID = match.Recording.ID
	out.ReleaseID = match.Release.ID
	out.ArtistID = match.Artist.Artist.ID
	out.Title = match.Recording.Title
	out.Album = match.Release.Title
	out.Artist = match.Artist.DisplayName()
	out.Score = preview.Match.Score

	artistImage, albumImage := imp.fetchImages(ctx, logger, match)
	md := preview.File.Metadata
	disc, position := trackPosition(match, md)
	rec := library.TrackRecord{
		Artist: library.ArtistRecord{
			MBID:     match.Artist.Artist.ID,
			Name:     firstNonEmpty(match.Artist.Artist.Name, match.Artist.DisplayName()),
			ImageURL: artistImage,
		},
		Album: library.AlbumRecord{
			MBID:     match.Release.ID,
			Title:    match.Release.Title,
			ImageURL: albumImage,
		},
		Track: library.TrackFields{
			MBID:         match.Recording.ID,
			Title:        firstNonEmpty(match.Recording.Title, md.Title),
			Position:     position,
			DiscNumber:   disc,
			Duration:     trackDuration(match, md),
			FileLocation: path,
		},
	}

	result, err := imp.store.Import(ctx, rec)
	if err != nil {
		if !errors.Is(err, library.ErrTrackExists) {
			err = fmt.Errorf("%w: %w", errStore, err)
		}
		return imp.finish(logger, out, err)
	}

	out.Status = StatusMatched
	out.NewArtist, out.NewAlbum = result.NewArtist, result.NewAlbum
	logger.Info("track imported",
		logging.String("recording_id", out.RecordingID),
		logging.String("release_id", out.ReleaseID),
		logging.String("artist", out.Artist),
		logging.String("album", out.Album),
		logging.Int("score", out.Score),
		logging.Bool("new_artist", out.NewArtist),
		logging.Bool("new_album", out.NewAlbum))
	return out
}

// fetchImages looks up images for an artist or album the library has not
// stored yet. Lookup failures are logged and leave the image empty.
func (imp *Importer) fetchImages(ctx context.Context, logger *slog.Logger, match matching.Match) (artistImage, albumImage string) {
	existing, err := imp.store.ExistingArtistAlbum(ctx, match.Artist.Artist.ID, match.Release.ID)
	if err != nil {
		logger.Debug("existing entity lookup failed", logging.Error(err))
	}

	if !existing.Artist && imp.images != nil {
		artist, err := imp.catalog.GetArtist(ctx, match.Artist.Artist.ID)
		if err != nil {
			imp.warnImage(logger, "artist", err)
		} else if artistImage, err = imp.images.ArtistImage(ctx, artist.URLRelations("spotify.com")); err != nil {
			imp.warnImage(logger, "artist", err)
		}
	}

	if !existing.Album {
		art, err := imp.catalog.GetCoverArt(ctx, match.Release.ID)
		if err != nil {
			imp.warnImage(logger, "album", err)
		} else {
			albumImage = art.FrontImage()
		}
	}
	return artistImage, albumImage
}

func (imp *Importer) warnImage(logger *slog.Logger, entity string, err error) {
	logging.WarnWithContext(logger, "image lookup failed", "image_lookup_failed",
		logging.String("entity", entity),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "rerun the import later to retry"),
		logging.String(logging.FieldImpact, "entity stored without an image"))
}

// finish records a skipped or failed outcome and remembers cacheable skips.
func (imp *Importer) finish(logger *slog.Logger, out Outcome, err error) Outcome {
	out.Status, out.Reason = classify(err)
	out.Err = err
	out.Detail = err.Error()

	if out.Status == StatusSkipped {
		logger.Info("track skipped",
			logging.Args(append(logging.DecisionAttrs("track_import", "skipped", out.Reason),
				logging.String("detail", out.Detail))...)...)
		if imp.rememberUnmatched && cacheable(out.Reason) {
			imp.remember(logger, out)
		}
		return out
	}

	logging.WarnWithContext(logger, "track import failed", "track_import_failed",
		logging.String("reason", out.Reason),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, failureHint(out.Reason)),
		logging.String(logging.FieldImpact, "file left out of the library"))
	return out
}

func (imp *Importer) remember(logger *slog.Logger, out Outcome) {
	entry, err := matchcache.NewEntry(out.Path, out.Reason, out.Detail)
	if err == nil {
		err = imp.cache.Store(entry)
	}
	if err != nil {
		logger.Debug("failed to remember unmatched file", logging.Error(err))
	}
}

func failureHint(reason string) string {
	switch reason {
	case ReasonCatalog:
		return "check network access and the musicbrainz base_url"
	case ReasonStore:
		return "run tracklink status to check the library database"
	case ReasonIncomplete:
		return "the catalog entry lacks releases or credits; retag or retry later"
	case ReasonCancelled:
		return "rerun the import to process remaining files"
	}
	return "check logs for details"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
