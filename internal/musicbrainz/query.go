package musicbrainz

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"tracklink/internal/audiotag"
)

var (
	deluxeEditionPattern = regexp.MustCompile(`(?i)(?:\[Deluxe\s+Edition\]|\(Deluxe\s+Edition\))`)
	featuringPattern     = regexp.MustCompile(`(?i)\(feat\.?\s+.+?\)`)
	queryUnsafePattern   = regexp.MustCompile(`[^\p{L}\p{Nd} ]`)
)

// BuildQuery renders the Lucene recording query for md. Clauses are joined
// with AND and absent fields are left out.
func BuildQuery(md audiotag.Metadata) string {
	clauses := make([]string, 0, 6)
	if album := escapeQuery(deluxeEditionPattern.ReplaceAllString(md.Album, "")); album != "" {
		clauses = append(clauses, "release:"+album)
	}
	if artist := escapeQuery(featuringPattern.ReplaceAllString(md.Artist, "")); artist != "" {
		clauses = append(clauses, "(artist:"+artist+" OR artistname:"+artist+" OR creditname:"+artist+")")
	}
	if title := escapeQuery(md.Title); title != "" {
		clauses = append(clauses, "(recording:"+title+" OR recordingaccent:"+title+")")
	}
	if md.TrackNumber > 0 {
		clauses = append(clauses, "tnum:"+strconv.Itoa(md.TrackNumber))
	}
	if md.TrackCount > 0 {
		count := strconv.Itoa(md.TrackCount)
		clauses = append(clauses, "(tracks:"+count+" OR tracksrelease:"+count+")")
	}
	if md.Length > 0 {
		clauses = append(clauses, "dur:"+strconv.Itoa(md.Length*1000))
	}
	return strings.Join(clauses, " AND ")
}

// escapeQuery replaces everything except letters, digits and spaces with a
// space. The result is trimmed.
func escapeQuery(value string) string {
	return strings.TrimSpace(queryUnsafePattern.ReplaceAllString(value, " "))
}

func containsHost(resource, host string) bool {
	parsed, err := url.Parse(resource)
	if err != nil {
		return false
	}
	h := strings.ToLower(parsed.Hostname())
	host = strings.ToLower(host)
	return h == host || strings.HasSuffix(h, "."+host)
}
