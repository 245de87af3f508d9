package spotify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"tracklink/internal/config"
	"tracklink/internal/logging"
)

// Client fetches artist images.
type Client struct {
	api    *spotify.Client
	logger *slog.Logger
}

type options struct {
	tokenURL   string
	apiBaseURL string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*options)

// WithTokenURL overrides the OAuth2 token endpoint.
func WithTokenURL(tokenURL string) Option {
	return func(o *options) { o.tokenURL = tokenURL }
}

// WithAPIBaseURL overrides the Web API base URL. It must end in a slash.
func WithAPIBaseURL(baseURL string) Option {
	return func(o *options) { o.apiBaseURL = baseURL }
}

// WithHTTPClient sets the transport used for token and API requests.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.httpClient = client }
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New creates a client authenticated with client credentials. Tokens are
// fetched lazily on the first request and refreshed automatically.
func New(ctx context.Context, clientID, clientSecret string, opts ...Option) (*Client, error) {
	clientID = strings.TrimSpace(clientID)
	clientSecret = strings.TrimSpace(clientSecret)
	if clientID == "" || clientSecret == "" {
		return nil, errors.New("spotify client id and secret required")
	}
	o := options{tokenURL: spotifyauth.TokenURL}
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, o.httpClient)
	}

	creds := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     o.tokenURL,
	}
	var clientOpts []spotify.ClientOption
	if o.apiBaseURL != "" {
		clientOpts = append(clientOpts, spotify.WithBaseURL(o.apiBaseURL))
	}
	return &Client{
		api:    spotify.New(creds.Client(ctx), clientOpts...),
		logger: logging.NewComponentLogger(o.logger, "spotify"),
	}, nil
}

// NewFromConfig returns nil and no error when Spotify is not configured.
func NewFromConfig(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*Client, error) {
	if cfg == nil || !cfg.SpotifyEnabled() {
		return nil, nil
	}
	return New(ctx, cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, append([]Option{WithLogger(logger)}, opts...)...)
}

// ArtistImage returns the widest image of the first Spotify artist among
// resources, or "" when none of them is a Spotify artist link.
func (c *Client) ArtistImage(ctx context.Context, resources []string) (string, error) {
	if c == nil {
		return "", nil
	}
	for _, resource := range resources {
		id, ok := ArtistIDFromURL(resource)
		if !ok {
			continue
		}
		artist, err := c.api.GetArtist(ctx, id)
		if err != nil {
			return "", fmt.Errorf("spotify artist %s: %w", id, err)
		}
		if len(artist.Images) == 0 {
			c.logger.Debug("spotify artist has no images", logging.String("spotify_id", string(id)))
			return "", nil
		}
		// Spotify lists images widest first.
		return artist.Images[0].URL, nil
	}
	return "", nil
}

// ArtistIDFromURL extracts the artist ID from an open.spotify.com artist URL.
func ArtistIDFromURL(resource string) (spotify.ID, bool) {
	parsed, err := url.Parse(strings.TrimSpace(resource))
	if err != nil || !strings.EqualFold(parsed.Hostname(), "open.spotify.com") {
		return "", false
	}
	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	// Localised links carry a prefix such as /intl-de/artist/<id>.
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] == "artist" && parts[i+1] != "" {
			return spotify.ID(parts[i+1]), true
		}
	}
	return "", false
}
