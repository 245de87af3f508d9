package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tracklink/internal/config"
	"tracklink/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	for _, access := range []Access{AccessRead, AccessReadWrite} {
		result := CheckDirectoryAccess("test", dir, access)
		if !result.Passed {
			t.Fatalf("expected pass for temp dir with %s, got: %s", access, result.Detail)
		}
		if !strings.Contains(result.Detail, access.String()+" ok") {
			t.Fatalf("unexpected detail %q", result.Detail)
		}
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"), AccessRead)
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f, AccessRead)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckMusicBrainz(t *testing.T) {
	tests := []struct {
		name   string
		status int
		passed bool
		detail string
	}{
		{"ok", http.StatusOK, true, "Reachable"},
		{"rate limited", http.StatusServiceUnavailable, false, "rate limited"},
		{"forbidden", http.StatusForbidden, false, "user_agent"},
		{"other", http.StatusInternalServerError, false, "500"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/ws/2/recording" || r.Header.Get("User-Agent") != "tracklink-test/1.0" {
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			result := CheckMusicBrainz(context.Background(), srv.URL+"/ws/2/", "tracklink-test/1.0")
			if result.Passed != tc.passed || !strings.Contains(result.Detail, tc.detail) {
				t.Fatalf("unexpected result: %#v", result)
			}
		})
	}
}

func TestCheckMusicBrainz_MissingURL(t *testing.T) {
	if result := CheckMusicBrainz(context.Background(), " ", "ua"); result.Passed {
		t.Fatal("expected failure without base url")
	}
}

func TestCheckSpotify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, secret, ok := r.BasicAuth()
		if r.FormValue("client_id") != "" {
			id, secret, ok = r.FormValue("client_id"), r.FormValue("client_secret"), true
		}
		if !ok || id != "id" || secret != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"bearer","expires_in":3600}`))
	}))
	defer srv.Close()

	if result := CheckSpotify(context.Background(), "id", "secret", srv.URL); !result.Passed {
		t.Fatalf("expected pass, got %#v", result)
	}
	if result := CheckSpotify(context.Background(), "id", "wrong", srv.URL); result.Passed {
		t.Fatal("expected failure for bad secret")
	}
	if result := CheckSpotify(context.Background(), "", "secret", srv.URL); result.Passed {
		t.Fatal("expected failure without client id")
	}
}

func TestCheckSpotifyFromConfigDisabled(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	result := CheckSpotifyFromConfig(context.Background(), cfg)
	if !result.Passed || result.Detail != "Disabled" {
		t.Fatalf("expected disabled pass, got %#v", result)
	}
	if result := CheckSpotifyFromConfig(context.Background(), nil); result.Passed {
		t.Fatal("expected nil config to fail")
	}
}

func TestRunAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testsupport.NewConfig(t, testsupport.WithMusicBrainzURL(srv.URL))
	if err := os.MkdirAll(cfg.Paths.MusicDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}

	results := RunAll(context.Background(), cfg)
	if len(results) != 3 {
		t.Fatalf("expected 3 checks without spotify, got %d", len(results))
	}
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("unexpected failures: %#v", failed)
	}

	cfg.Paths.MusicDir = filepath.Join(t.TempDir(), "missing")
	failed := Failed(RunAll(context.Background(), cfg))
	if len(failed) != 1 || failed[0].Name != "Music directory" {
		t.Fatalf("expected music directory failure, got %#v", failed)
	}

	if RunAll(context.Background(), (*config.Config)(nil)) != nil {
		t.Fatal("expected nil results for nil config")
	}
}
