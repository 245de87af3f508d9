package musicbrainz

// Artist is a MusicBrainz artist. Relations are only populated by GetArtist.
type Artist struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	SortName       string     `json:"sort-name"`
	Disambiguation string     `json:"disambiguation,omitempty"`
	Aliases        []Alias    `json:"aliases,omitempty"`
	Relations      []Relation `json:"relations,omitempty"`
}

// Alias is an alternative artist name.
type Alias struct {
	Name     string `json:"name"`
	SortName string `json:"sort-name"`
	Locale   string `json:"locale,omitempty"`
	Type     string `json:"type,omitempty"`
}

// ArtistCredit attributes a recording or release to an artist. Name, when
// set, overrides the artist's canonical name for this credit.
type ArtistCredit struct {
	Name       string `json:"name,omitempty"`
	JoinPhrase string `json:"joinphrase,omitempty"`
	Artist     Artist `json:"artist"`
}

// DisplayName returns the credited name, falling back to the artist name.
func (c ArtistCredit) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Artist.Name
}

// Recording is a search result from the recording endpoint.
type Recording struct {
	ID             string         `json:"id"`
	Score          int            `json:"score,omitempty"`
	Title          string         `json:"title,omitempty"`
	Disambiguation string         `json:"disambiguation,omitempty"`
	Length         *int           `json:"length,omitempty"` // milliseconds
	ArtistCredit   []ArtistCredit `json:"artist-credit"`
	Releases       []Release      `json:"releases,omitempty"`
}

// Release is one publication a recording appears on.
type Release struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Disambiguation string         `json:"disambiguation,omitempty"`
	Status         string         `json:"status,omitempty"`
	Date           string         `json:"date,omitempty"`
	Country        string         `json:"country,omitempty"`
	ArtistCredit   []ArtistCredit `json:"artist-credit,omitempty"`
	TrackCount     *int           `json:"track-count,omitempty"`
	Media          []Medium       `json:"media"`
}

// Medium is one disc or volume of a release. TrackOffset is the zero-based
// index of the medium's first track within the release.
type Medium struct {
	Position    int     `json:"position"`
	Format      string  `json:"format,omitempty"`
	TrackCount  *int    `json:"track-count,omitempty"`
	TrackOffset *int    `json:"track-offset,omitempty"`
	Tracks      []Track `json:"track,omitempty"`
}

// Track is a track listing entry on a medium. Number is the printed position
// label ("1", "A2").
type Track struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Title  string `json:"title"`
	Length *int   `json:"length,omitempty"`
}

// Relation is an artist relationship; only URL relations are requested.
type Relation struct {
	Type       string       `json:"type"`
	TargetType string       `json:"target-type"`
	URL        *RelationURL `json:"url,omitempty"`
}

// RelationURL is the target of a URL relation.
type RelationURL struct {
	ID       string `json:"id"`
	Resource string `json:"resource"`
}

// SearchResponse is the recording search payload.
type SearchResponse struct {
	Created    string      `json:"created"`
	Count      int         `json:"count"`
	Offset     int         `json:"offset"`
	Recordings []Recording `json:"recordings"`
}

// CoverArt lists the images the Cover Art Archive holds for a release.
type CoverArt struct {
	Release string          `json:"release"`
	Images  []CoverArtImage `json:"images"`
}

// CoverArtImage is one archived image.
type CoverArtImage struct {
	Image      string            `json:"image"`
	Thumbnails map[string]string `json:"thumbnails"`
	Types      []string          `json:"types"`
	Front      bool              `json:"front"`
	Back       bool              `json:"back"`
	Comment    string            `json:"comment"`
	Approved   bool              `json:"approved"`
}

// FrontImage returns the URL of the front cover, or "" when none is archived.
func (c *CoverArt) FrontImage() string {
	if c == nil {
		return ""
	}
	for _, img := range c.Images {
		if img.Front {
			return img.Image
		}
	}
	return ""
}

// URLRelations returns the resources of the artist's URL relations whose host
// contains host, in payload order.
func (a Artist) URLRelations(host string) []string {
	var out []string
	for _, rel := range a.Relations {
		if rel.URL == nil || rel.URL.Resource == "" {
			continue
		}
		if host == "" || containsHost(rel.URL.Resource, host) {
			out = append(out, rel.URL.Resource)
		}
	}
	return out
}
