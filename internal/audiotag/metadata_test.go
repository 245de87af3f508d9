package audiotag

import (
	"errors"
	"testing"

	"github.com/dhowden/tag"
)

func TestFromRawVorbis(t *testing.T) {
	raw := map[string]any{
		"vendor":      "reference libFLAC",
		"album":       "Abbey Road",
		"artist":      " The Beatles ",
		"title":       "Come Together",
		"tracknumber": "1",
		"tracktotal":  "17",
		"discnumber":  "1",
		"totaldiscs":  "1",
	}

	md, err := FromRaw(DialectVorbis, raw)
	if err != nil {
		t.Fatalf("FromRaw returned error: %v", err)
	}
	want := Metadata{
		Album:       "Abbey Road",
		Artist:      "The Beatles",
		Title:       "Come Together",
		TrackNumber: 1,
		TrackCount:  17,
		DiscNumber:  1,
		DiscCount:   1,
	}
	if md != want {
		t.Fatalf("unexpected metadata: %+v", md)
	}
	if !md.HasDiscInfo() {
		t.Fatal("expected disc info")
	}
}

func TestFromRawVorbisMatchesUppercaseKeys(t *testing.T) {
	md, err := FromRaw(DialectVorbis, map[string]any{"ARTIST": "Björk", "TOTALTRACKS": "11"})
	if err != nil {
		t.Fatalf("FromRaw returned error: %v", err)
	}
	if md.Artist != "Björk" || md.TrackCount != 11 {
		t.Fatalf("unexpected metadata: %+v", md)
	}
}

func TestFromRawID3(t *testing.T) {
	raw := map[string]any{
		"TALB": "OK Computer",
		"TPE1": "Radiohead",
		"TIT2": "Airbag",
		"TRCK": "1/12",
		"TPOS": "1/1",
		"TLEN": "284000",
	}

	md, err := FromRaw(DialectID3, raw)
	if err != nil {
		t.Fatalf("FromRaw returned error: %v", err)
	}
	want := Metadata{
		Album:       "OK Computer",
		Artist:      "Radiohead",
		Title:       "Airbag",
		TrackNumber: 1,
		TrackCount:  12,
		DiscNumber:  1,
		DiscCount:   1,
		Length:      284,
	}
	if md != want {
		t.Fatalf("unexpected metadata: %+v", md)
	}
}

func TestFromRawID3v22Keys(t *testing.T) {
	md, err := FromRaw(DialectID3, map[string]any{"TT2": "Title", "TP1": "Artist", "TRK": "7"})
	if err != nil {
		t.Fatalf("FromRaw returned error: %v", err)
	}
	if md.Title != "Title" || md.Artist != "Artist" || md.TrackNumber != 7 {
		t.Fatalf("unexpected metadata: %+v", md)
	}
	if md.HasDiscInfo() {
		t.Fatal("expected no disc info")
	}
}

func TestFromRawNumericParsing(t *testing.T) {
	tests := []struct {
		name       string
		raw        map[string]any
		wantNumber int
		wantCount  int
		wantErr    bool
	}{
		{name: "plain", raw: map[string]any{"tracknumber": "4"}, wantNumber: 4},
		{name: "leading zero", raw: map[string]any{"tracknumber": "04"}, wantNumber: 4},
		{name: "slash total", raw: map[string]any{"tracknumber": "4/10"}, wantNumber: 4, wantCount: 10},
		{name: "explicit total wins", raw: map[string]any{"tracknumber": "4/10", "tracktotal": "11"}, wantNumber: 4, wantCount: 11},
		{name: "blank total keeps slash total", raw: map[string]any{"tracknumber": "4/10", "tracktotal": " "}, wantNumber: 4, wantCount: 10},
		{name: "non digits stripped", raw: map[string]any{"tracknumber": "Track 4."}, wantNumber: 4},
		{name: "vinyl side", raw: map[string]any{"tracknumber": "A2"}, wantNumber: 2},
		{name: "blank is absent", raw: map[string]any{"tracknumber": "  "}},
		{name: "no digits", raw: map[string]any{"tracknumber": "four"}, wantErr: true},
		{name: "bad total", raw: map[string]any{"tracknumber": "4/x"}, wantErr: true},
		{name: "integer value", raw: map[string]any{"tracknumber": 9}, wantNumber: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md, err := FromRaw(DialectVorbis, tt.raw)
			if tt.wantErr {
				var parseErr *ParseError
				if !errors.As(err, &parseErr) {
					t.Fatalf("expected ParseError, got %v", err)
				}
				if parseErr.Field != FieldTrackNumber {
					t.Fatalf("unexpected field: %s", parseErr.Field)
				}
				if parseErr.ErrorKind() != "metadata" {
					t.Fatalf("unexpected kind: %s", parseErr.ErrorKind())
				}
				return
			}
			if err != nil {
				t.Fatalf("FromRaw returned error: %v", err)
			}
			if md.TrackNumber != tt.wantNumber || md.TrackCount != tt.wantCount {
				t.Fatalf("got number=%d count=%d, want %d/%d", md.TrackNumber, md.TrackCount, tt.wantNumber, tt.wantCount)
			}
		})
	}
}

func TestFromRawIgnoresNonTextValues(t *testing.T) {
	md, err := FromRaw(DialectID3, map[string]any{"TIT2": []byte("x"), "TPE1": "Artist"})
	if err != nil {
		t.Fatalf("FromRaw returned error: %v", err)
	}
	if md.Title != "" || md.Artist != "Artist" {
		t.Fatalf("unexpected metadata: %+v", md)
	}
}

func TestDialectFor(t *testing.T) {
	tests := []struct {
		format  tag.Format
		want    Dialect
		wantErr bool
	}{
		{tag.VORBIS, DialectVorbis, false},
		{tag.ID3v2_2, DialectID3, false},
		{tag.ID3v2_3, DialectID3, false},
		{tag.ID3v2_4, DialectID3, false},
		{tag.ID3v1, 0, true},
		{tag.MP4, 0, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			got, err := dialectFor(tt.format)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedDialect) {
					t.Fatalf("expected ErrUnsupportedDialect, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("dialectFor(%s) = %v, %v", tt.format, got, err)
			}
		})
	}
}
