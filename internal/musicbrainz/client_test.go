package musicbrainz_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/time/rate"

	"tracklink/internal/audiotag"
	"tracklink/internal/musicbrainz"
	"tracklink/internal/testsupport"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *musicbrainz.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := musicbrainz.New(server.URL, server.URL, "tracklink-test/1.0 ( test@example.com )",
		musicbrainz.WithLimiter(rate.NewLimiter(rate.Inf, 1)))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return client
}

func TestNewRequiresUserAgent(t *testing.T) {
	if _, err := musicbrainz.New("https://example.com", "", " "); err == nil {
		t.Fatal("expected error when user agent missing")
	}
	if _, err := musicbrainz.New("", "", "ua"); err == nil {
		t.Fatal("expected error when base url missing")
	}
}

func TestSearchRecordingsSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recording" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("User-Agent"); !strings.HasPrefix(got, "tracklink-test") {
			t.Errorf("unexpected user agent %q", got)
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("expected json accept header")
		}
		q := r.URL.Query()
		if q.Get("fmt") != "json" || q.Get("limit") != "25" {
			t.Errorf("unexpected query params %q", r.URL.RawQuery)
		}
		if !strings.Contains(q.Get("query"), "recording:Song") {
			t.Errorf("unexpected lucene query %q", q.Get("query"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"created": "2024-01-01T00:00:00.000Z",
			"count": 1,
			"offset": 0,
			"recordings": [{
				"id": "rec-1",
				"score": 100,
				"title": "Song",
				"length": 215000,
				"artist-credit": [{"name": "Band", "artist": {"id": "art-1", "name": "The Band", "sort-name": "Band, The"}}],
				"releases": [{
					"id": "rel-1",
					"title": "Album",
					"country": "US",
					"track-count": 10,
					"artist-credit": [{"artist": {"id": "art-1", "name": "The Band"}}],
					"media": [{"position": 1, "format": "CD", "track-count": 10, "track-offset": 2,
						"track": [{"id": "trk-1", "number": "3", "title": "Song", "length": 215000}]}]
				}]
			}]
		}`))
	})

	resp, err := client.SearchRecordings(context.Background(), audiotag.Metadata{Title: "Song", Artist: "Band"})
	if err != nil {
		t.Fatalf("SearchRecordings returned error: %v", err)
	}
	if len(resp.Recordings) != 1 {
		t.Fatalf("unexpected response: %#v", resp)
	}
	rec := resp.Recordings[0]
	if rec.ArtistCredit[0].DisplayName() != "Band" || rec.Length == nil || *rec.Length != 215000 {
		t.Fatalf("unexpected recording: %#v", rec)
	}
	rel := rec.Releases[0]
	if rel.TrackCount == nil || *rel.TrackCount != 10 || rel.ArtistCredit[0].DisplayName() != "The Band" {
		t.Fatalf("unexpected release: %#v", rel)
	}
	medium := rel.Media[0]
	if medium.Format != "CD" || medium.TrackOffset == nil || *medium.TrackOffset != 2 || medium.Tracks[0].Number != "3" {
		t.Fatalf("unexpected medium: %#v", medium)
	}
}

func TestSearchRecordingsEmptyQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	if _, err := client.SearchRecordings(context.Background(), audiotag.Metadata{Title: "!!"}); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestSearchRecordingsHTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	_, err := client.SearchRecordings(context.Background(), audiotag.Metadata{Title: "Song"})
	var statusErr *musicbrainz.StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 status error, got %v", err)
	}
}

func TestGetArtistRequestsURLRelations(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/artist/art-1" || r.URL.Query().Get("inc") != "url-rels" {
			t.Errorf("unexpected request %s?%s", r.URL.Path, r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"id":"art-1","name":"The Band","sort-name":"Band, The","relations":[
			{"type":"free streaming","target-type":"url","url":{"id":"u1","resource":"https://open.spotify.com/artist/xyz"}}]}`))
	})

	artist, err := client.GetArtist(context.Background(), "art-1")
	if err != nil {
		t.Fatalf("GetArtist returned error: %v", err)
	}
	if artist.Name != "The Band" || len(artist.URLRelations("spotify.com")) != 1 {
		t.Fatalf("unexpected artist: %#v", artist)
	}
}

func TestGetCoverArt(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/release/rel-1":
			_, _ = w.Write([]byte(`{"release":"https://musicbrainz.org/release/rel-1","images":[{"image":"https://caa.example/front.jpg","front":true,"approved":true}]}`))
		default:
			http.NotFound(w, r)
		}
	})

	art, err := client.GetCoverArt(context.Background(), "rel-1")
	if err != nil {
		t.Fatalf("GetCoverArt returned error: %v", err)
	}
	if art.FrontImage() != "https://caa.example/front.jpg" {
		t.Fatalf("unexpected cover art: %#v", art)
	}

	missing, err := client.GetCoverArt(context.Background(), "rel-2")
	if err != nil || missing != nil {
		t.Fatalf("expected nil cover art for 404, got %#v, %v", missing, err)
	}
}

func TestNewFromConfig(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "5" {
			t.Errorf("expected configured search limit, got %q", r.URL.Query().Get("limit"))
		}
		_, _ = w.Write([]byte(`{"recordings":[]}`))
	}))
	t.Cleanup(server.Close)

	cfg := testsupport.NewConfig(t, testsupport.WithMusicBrainzURL(server.URL))
	cfg.MusicBrainz.SearchLimit = 5
	client, err := musicbrainz.NewFromConfig(cfg, nil)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	resp, err := client.SearchRecordings(context.Background(), audiotag.Metadata{Title: "Song"})
	if err != nil || len(resp.Recordings) != 0 {
		t.Fatalf("unexpected result %#v, %v", resp, err)
	}
}

func TestSearchRecordingsHonoursContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"recordings":[]}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.SearchRecordings(ctx, audiotag.Metadata{Title: "Song"}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
