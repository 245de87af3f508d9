package musicbrainz

import (
	"testing"

	"tracklink/internal/audiotag"
)

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name string
		md   audiotag.Metadata
		want string
	}{
		{
			name: "all fields",
			md: audiotag.Metadata{
				Album:       "Abbey Road",
				Artist:      "The Beatles",
				Title:       "Come Together",
				TrackNumber: 1,
				TrackCount:  17,
				Length:      259,
			},
			want: "release:Abbey Road AND (artist:The Beatles OR artistname:The Beatles OR creditname:The Beatles) AND (recording:Come Together OR recordingaccent:Come Together) AND tnum:1 AND (tracks:17 OR tracksrelease:17) AND dur:259000",
		},
		{
			name: "deluxe edition stripped",
			md:   audiotag.Metadata{Album: "Album [Deluxe Edition]"},
			want: "release:Album",
		},
		{
			name: "deluxe edition parenthesised",
			md:   audiotag.Metadata{Album: "Album (deluxe  edition)"},
			want: "release:Album",
		},
		{
			name: "featured artist stripped",
			md:   audiotag.Metadata{Artist: "Band (feat. Singer)"},
			want: "(artist:Band OR artistname:Band OR creditname:Band)",
		},
		{
			name: "punctuation escaped",
			md:   audiotag.Metadata{Artist: "AC/DC", Title: "Björk's Song!"},
			want: "(artist:AC DC OR artistname:AC DC OR creditname:AC DC) AND (recording:Björk s Song OR recordingaccent:Björk s Song)",
		},
		{
			name: "blank title dropped",
			md:   audiotag.Metadata{Title: "???", TrackNumber: 4},
			want: "tnum:4",
		},
		{
			name: "empty",
			md:   audiotag.Metadata{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildQuery(tt.md); got != tt.want {
				t.Fatalf("BuildQuery() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestArtistURLRelations(t *testing.T) {
	artist := Artist{Relations: []Relation{
		{Type: "official homepage", TargetType: "url", URL: &RelationURL{Resource: "https://band.example.com"}},
		{Type: "free streaming", TargetType: "url", URL: &RelationURL{Resource: "https://open.spotify.com/artist/abc123"}},
		{Type: "member of band", TargetType: "artist"},
	}}

	got := artist.URLRelations("spotify.com")
	if len(got) != 1 || got[0] != "https://open.spotify.com/artist/abc123" {
		t.Fatalf("unexpected relations: %v", got)
	}
	if all := artist.URLRelations(""); len(all) != 2 {
		t.Fatalf("expected two url relations, got %v", all)
	}
}

func TestCoverArtFrontImage(t *testing.T) {
	var missing *CoverArt
	if missing.FrontImage() != "" {
		t.Fatal("expected empty front image for nil cover art")
	}
	art := &CoverArt{Images: []CoverArtImage{
		{Image: "https://caa.example/back.jpg", Back: true},
		{Image: "https://caa.example/front.jpg", Front: true},
	}}
	if art.FrontImage() != "https://caa.example/front.jpg" {
		t.Fatalf("unexpected front image %q", art.FrontImage())
	}
}
