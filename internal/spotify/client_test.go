package spotify_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"tracklink/internal/spotify"
	"tracklink/internal/testsupport"
)

func newFakeSpotify(t *testing.T, artistJSON string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var tokenRequests atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		tokenRequests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/v1/artists/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if !strings.HasSuffix(r.URL.Path, "/abc123") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(artistJSON))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &tokenRequests
}

func TestArtistImage(t *testing.T) {
	server, tokens := newFakeSpotify(t, `{"id":"abc123","name":"Band","images":[
		{"url":"https://i.scdn.co/image/large","height":640,"width":640},
		{"url":"https://i.scdn.co/image/small","height":64,"width":64}]}`)

	client, err := spotify.New(context.Background(), "id", "secret",
		spotify.WithTokenURL(server.URL+"/token"),
		spotify.WithAPIBaseURL(server.URL+"/v1/"))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	got, err := client.ArtistImage(context.Background(), []string{
		"https://band.example.com",
		"https://open.spotify.com/artist/abc123",
	})
	if err != nil {
		t.Fatalf("ArtistImage returned error: %v", err)
	}
	if got != "https://i.scdn.co/image/large" {
		t.Fatalf("unexpected image %q", got)
	}
	if tokens.Load() != 1 {
		t.Fatalf("expected one token request, got %d", tokens.Load())
	}
}

func TestArtistImageWithoutSpotifyLink(t *testing.T) {
	server, tokens := newFakeSpotify(t, `{}`)
	client, err := spotify.New(context.Background(), "id", "secret",
		spotify.WithTokenURL(server.URL+"/token"),
		spotify.WithAPIBaseURL(server.URL+"/v1/"))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	got, err := client.ArtistImage(context.Background(), []string{"https://www.discogs.com/artist/1"})
	if err != nil || got != "" {
		t.Fatalf("expected no image, got %q, %v", got, err)
	}
	if tokens.Load() != 0 {
		t.Fatal("expected no token request when nothing is looked up")
	}
}

func TestArtistImageNilClient(t *testing.T) {
	var client *spotify.Client
	got, err := client.ArtistImage(context.Background(), []string{"https://open.spotify.com/artist/abc123"})
	if err != nil || got != "" {
		t.Fatalf("expected nil client to be a no-op, got %q, %v", got, err)
	}
}

func TestArtistIDFromURL(t *testing.T) {
	tests := map[string]string{
		"https://open.spotify.com/artist/abc123":          "abc123",
		"https://open.spotify.com/artist/abc123?si=x":     "abc123",
		"https://open.spotify.com/intl-de/artist/abc123/": "abc123",
		"https://open.spotify.com/album/abc123":           "",
		"https://example.com/artist/abc123":               "",
		"not a url":                                       "",
	}
	for in, want := range tests {
		id, ok := spotify.ArtistIDFromURL(in)
		if string(id) != want || ok != (want != "") {
			t.Errorf("ArtistIDFromURL(%q) = %q, %v; want %q", in, id, ok, want)
		}
	}
}

func TestNewFromConfigDisabled(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	client, err := spotify.NewFromConfig(context.Background(), cfg, nil)
	if err != nil || client != nil {
		t.Fatalf("expected nil client without credentials, got %v, %v", client, err)
	}

	cfg = testsupport.NewConfig(t, testsupport.WithSpotify("id", "secret"))
	client, err = spotify.NewFromConfig(context.Background(), cfg, nil)
	if err != nil || client == nil {
		t.Fatalf("expected client with credentials, got %v, %v", client, err)
	}
}
