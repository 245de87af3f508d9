package audiotag

import (
	"errors"
	"fmt"

	"github.com/dhowden/tag"
)

// ErrUnsupportedDialect is returned for tag formats other than Vorbis comments
// and ID3v2.
var ErrUnsupportedDialect = errors.New("unsupported tag dialect")

// Dialect identifies how raw tag keys are named inside a file.
type Dialect int

const (
	DialectVorbis Dialect = iota + 1
	DialectID3
)

func (d Dialect) String() string {
	switch d {
	case DialectVorbis:
		return "vorbis"
	case DialectID3:
		return "id3v2"
	default:
		return "unknown"
	}
}

// Field names one slot of Metadata.
type Field string

const (
	FieldAlbum       Field = "album"
	FieldArtist      Field = "artist"
	FieldTitle       Field = "title"
	FieldTrackNumber Field = "track_number"
	FieldTrackCount  Field = "track_count"
	FieldDiscNumber  Field = "disc_number"
	FieldDiscCount   Field = "disc_count"
	FieldLength      Field = "length"
)

// fieldKeys lists, per dialect, the raw keys consulted for each field in
// priority order. Vorbis keys are matched case-insensitively.
var fieldKeys = map[Dialect]map[Field][]string{
	DialectVorbis: {
		FieldAlbum:       {"album"},
		FieldArtist:      {"artist"},
		FieldTitle:       {"title"},
		FieldTrackNumber: {"tracknumber", "track"},
		FieldTrackCount:  {"tracktotal", "totaltracks"},
		FieldDiscNumber:  {"discnumber", "disc"},
		FieldDiscCount:   {"disctotal", "totaldiscs"},
	},
	DialectID3: {
		FieldAlbum:       {"TALB", "TAL"},
		FieldArtist:      {"TPE1", "TP1"},
		FieldTitle:       {"TIT2", "TT2"},
		FieldTrackNumber: {"TRCK", "TRK"},
		FieldDiscNumber:  {"TPOS", "TPA"},
		FieldLength:      {"TLEN", "TLE"},
	},
}

func dialectFor(format tag.Format) (Dialect, error) {
	switch format {
	case tag.VORBIS:
		return DialectVorbis, nil
	case tag.ID3v2_2, tag.ID3v2_3, tag.ID3v2_4:
		return DialectID3, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedDialect, string(format))
	}
}
