package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tracklink/internal/config"
	"tracklink/internal/musicbrainz"
	"tracklink/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	albumDir   string
	server     *httptest.Server
}

func intPtr(v int) *int { return &v }

// catalogRecording is the only recording the fake catalog knows about. It
// matches a file tagged Band / Album / Song, track 1.
func catalogRecording() musicbrainz.Recording {
	credit := []musicbrainz.ArtistCredit{{Artist: musicbrainz.Artist{ID: "art-1", Name: "Band"}}}
	return musicbrainz.Recording{
		ID:           "rec-1",
		Title:        "Song",
		Length:       intPtr(200000),
		ArtistCredit: credit,
		Releases: []musicbrainz.Release{{
			ID:           "rel-1",
			Title:        "Album",
			Country:      "US",
			ArtistCredit: credit,
			TrackCount:   intPtr(1),
			Media: []musicbrainz.Medium{{
				Position:    1,
				Format:      "CD",
				TrackCount:  intPtr(1),
				TrackOffset: intPtr(0),
				Tracks:      []musicbrainz.Track{{ID: "trk-1", Number: "1", Title: "Song"}},
			}},
		}},
	}
}

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/recording", func(w http.ResponseWriter, r *http.Request) {
		resp := musicbrainz.SearchResponse{Recordings: []musicbrainz.Recording{}}
		if strings.Contains(r.URL.Query().Get("query"), "recording:Song") {
			resp.Recordings = append(resp.Recordings, catalogRecording())
		}
		resp.Count = len(resp.Recordings)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})
	mux.HandleFunc("/artist/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/artist/")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(musicbrainz.Artist{ID: id, Name: "Band"})
	})
	mux.HandleFunc("/release/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	srv := newCatalogServer(t)
	cfg := testsupport.NewConfig(t, testsupport.WithMusicBrainzURL(srv.URL))
	base := testsupport.BaseDir(cfg)
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("MUSIC_DIR_ROOT", "")
	t.Setenv("SPOTIFY_ID", "")
	t.Setenv("SPOTIFY_SECRET", "")
	if err := os.MkdirAll(cfg.Paths.MusicDir, 0o755); err != nil {
		t.Fatalf("mkdir music: %v", err)
	}

	configPath := filepath.Join(homeDir, ".config", "tracklink", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		albumDir:   filepath.Join(cfg.Paths.MusicDir, "Band", "Album [CD FLAC]"),
		server:     srv,
	}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
music_dir = %q
data_dir = %q
log_dir = %q

[musicbrainz]
base_url = %q
cover_art_url = %q
requests_per_second = %v
timeout_seconds = %d

[import]
workers = 1
remember_unmatched = true

[match_cache]
enabled = true
path = %q

[logging]
level = "error"
`,
		cfg.Paths.MusicDir,
		cfg.Paths.DataDir,
		cfg.Paths.LogDir,
		cfg.MusicBrainz.BaseURL,
		cfg.MusicBrainz.CoverArtURL,
		cfg.MusicBrainz.RequestsPerSecond,
		cfg.MusicBrainz.TimeoutSeconds,
		cfg.MatchCache.Path,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// writeSong writes a FLAC file the fake catalog resolves to rec-1.
func (e *cliTestEnv) writeSong(t *testing.T) string {
	t.Helper()
	path := filepath.Join(e.albumDir, "01 Song.flac")
	testsupport.WriteFLAC(t, path, map[string]string{
		"TITLE":       "Song",
		"ARTIST":      "Band",
		"ALBUM":       "Album",
		"TRACKNUMBER": "1",
	})
	return path
}

// writeUnknown writes a FLAC file the fake catalog has no candidates for.
func (e *cliTestEnv) writeUnknown(t *testing.T) string {
	t.Helper()
	path := filepath.Join(e.albumDir, "02 Missing.flac")
	testsupport.WriteFLAC(t, path, map[string]string{
		"TITLE":       "Missing",
		"ARTIST":      "Band",
		"ALBUM":       "Album",
		"TRACKNUMBER": "2",
	})
	return path
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(output, want) {
			t.Fatalf("expected output to contain %q\n%s", want, output)
		}
	}
}
