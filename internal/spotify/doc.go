// Package spotify looks up artist images through the Spotify Web API.
//
// MusicBrainz artists frequently carry a URL relation pointing at the
// artist's Spotify page. The Client resolves that relation to a Spotify ID
// and returns the widest image Spotify holds for the artist. Credentials use
// the client-credentials OAuth2 flow; no user authorization is involved.
package spotify
