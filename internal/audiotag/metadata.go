package audiotag

import (
	"fmt"
	"strconv"
	"strings"
)

// Metadata is the canonical view of a track's tags. Empty strings and zero
// numbers mean the tag was absent.
type Metadata struct {
	Album       string
	Artist      string
	Title       string
	TrackNumber int
	TrackCount  int
	DiscNumber  int
	DiscCount   int
	// Length is the track length in whole seconds.
	Length int
}

// HasDiscInfo reports whether a disc number or disc count tag was present.
func (m Metadata) HasDiscInfo() bool {
	return m.DiscNumber > 0 || m.DiscCount > 0
}

// ParseError reports a numeric tag that holds no digits.
type ParseError struct {
	Field Field
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s tag %q: no numeric value", e.Field, e.Value)
}

// ErrorKind classifies the error for outcome reporting.
func (e *ParseError) ErrorKind() string {
	return "metadata"
}

// FromRaw maps a raw key/value tag map onto Metadata using the dialect's key
// table. Values that are not strings or integers are ignored.
func FromRaw(dialect Dialect, raw map[string]any) (Metadata, error) {
	keys, ok := fieldKeys[dialect]
	if !ok {
		return Metadata{}, fmt.Errorf("%w: %s", ErrUnsupportedDialect, dialect)
	}
	lookup := func(field Field) (string, bool) {
		for _, key := range keys[field] {
			if value, ok := rawString(raw, key, dialect == DialectVorbis); ok {
				return value, true
			}
		}
		return "", false
	}

	var md Metadata
	md.Album, _ = lookup(FieldAlbum)
	md.Artist, _ = lookup(FieldArtist)
	md.Title, _ = lookup(FieldTitle)
	md.Album = strings.TrimSpace(md.Album)
	md.Artist = strings.TrimSpace(md.Artist)
	md.Title = strings.TrimSpace(md.Title)

	var err error
	if value, ok := lookup(FieldTrackNumber); ok {
		if md.TrackNumber, md.TrackCount, err = parsePair(FieldTrackNumber, value); err != nil {
			return Metadata{}, err
		}
	}
	if value, ok := lookup(FieldTrackCount); ok {
		n, err := parseNumber(FieldTrackCount, value)
		if err != nil {
			return Metadata{}, err
		}
		if n > 0 {
			md.TrackCount = n
		}
	}
	if value, ok := lookup(FieldDiscNumber); ok {
		if md.DiscNumber, md.DiscCount, err = parsePair(FieldDiscNumber, value); err != nil {
			return Metadata{}, err
		}
	}
	if value, ok := lookup(FieldDiscCount); ok {
		n, err := parseNumber(FieldDiscCount, value)
		if err != nil {
			return Metadata{}, err
		}
		if n > 0 {
			md.DiscCount = n
		}
	}
	if value, ok := lookup(FieldLength); ok {
		millis, err := parseNumber(FieldLength, value)
		if err != nil {
			return Metadata{}, err
		}
		md.Length = millis / 1000
	}
	return md, nil
}

func rawString(raw map[string]any, key string, foldCase bool) (string, bool) {
	value, ok := raw[key]
	if !ok && foldCase {
		for k, v := range raw {
			if strings.EqualFold(k, key) {
				value, ok = v, true
				break
			}
		}
	}
	if !ok {
		return "", false
	}
	switch v := value.(type) {
	case string:
		return v, true
	case int:
		return strconv.Itoa(v), true
	default:
		return "", false
	}
}

// parsePair parses values of the form "n" or "n/total". A blank total is
// ignored.
func parsePair(field Field, value string) (int, int, error) {
	head, tail, found := strings.Cut(value, "/")
	n, err := parseNumber(field, head)
	if err != nil {
		return 0, 0, err
	}
	if !found || strings.TrimSpace(tail) == "" {
		return n, 0, nil
	}
	total, err := parseNumber(field, tail)
	if err != nil {
		return 0, 0, err
	}
	return n, total, nil
}

// parseNumber keeps only the ASCII digits of value. A blank value counts as
// absent and yields 0.
func parseNumber(field Field, value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, trimmed)
	if digits == "" {
		return 0, &ParseError{Field: field, Value: value}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, &ParseError{Field: field, Value: value}
	}
	return n, nil
}
