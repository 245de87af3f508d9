package musicbrainz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"tracklink/internal/audiotag"
	"tracklink/internal/config"
	"tracklink/internal/logging"
)

// Searcher defines the catalog operations used by the importer.
type Searcher interface {
	SearchRecordings(ctx context.Context, md audiotag.Metadata) (*SearchResponse, error)
	GetArtist(ctx context.Context, id string) (*Artist, error)
	GetCoverArt(ctx context.Context, releaseID string) (*CoverArt, error)
}

// StatusError reports a non-200 response.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("musicbrainz %s returned %d", e.Endpoint, e.StatusCode)
}

// Client provides access to the MusicBrainz ws/2 API and the Cover Art Archive.
type Client struct {
	baseURL     string
	coverArtURL string
	userAgent   string
	searchLimit int
	httpClient  *http.Client
	limiter     *rate.Limiter
	logger      *slog.Logger
}

var _ Searcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLimiter replaces the request limiter.
func WithLimiter(limiter *rate.Limiter) Option {
	return func(c *Client) {
		if limiter != nil {
			c.limiter = limiter
		}
	}
}

// WithSearchLimit sets the maximum number of recordings per search.
func WithSearchLimit(limit int) Option {
	return func(c *Client) {
		if limit > 0 {
			c.searchLimit = limit
		}
	}
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a MusicBrainz client. Requests are limited to one per second
// unless WithLimiter says otherwise.
func New(baseURL, coverArtURL, userAgent string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("musicbrainz base url required")
	}
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return nil, errors.New("musicbrainz user agent required")
	}
	client := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		coverArtURL: strings.TrimRight(strings.TrimSpace(coverArtURL), "/"),
		userAgent:   userAgent,
		searchLimit: 25,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		limiter:     rate.NewLimiter(rate.Every(time.Second), 1),
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, "musicbrainz")
	return client, nil
}

// NewFromConfig builds a client from the [musicbrainz] config section.
func NewFromConfig(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	mb := cfg.MusicBrainz
	base := []Option{
		WithHTTPClient(&http.Client{Timeout: time.Duration(mb.TimeoutSeconds) * time.Second}),
		WithLimiter(rate.NewLimiter(rate.Limit(mb.RequestsPerSecond), 1)),
		WithSearchLimit(mb.SearchLimit),
		WithLogger(logger),
	}
	return New(mb.BaseURL, mb.CoverArtURL, mb.UserAgent, append(base, opts...)...)
}

// SearchRecordings runs a recording search built from md.
func (c *Client) SearchRecordings(ctx context.Context, md audiotag.Metadata) (*SearchResponse, error) {
	query := BuildQuery(md)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(c.searchLimit))
	params.Set("fmt", "json")

	var payload SearchResponse
	if err := c.getJSON(ctx, "recording search", c.baseURL+"/recording", params, true, &payload); err != nil {
		return nil, err
	}
	c.logger.Debug("recording search complete",
		logging.String("query", query),
		logging.Int("count", payload.Count),
		logging.Int("returned", len(payload.Recordings)))
	return &payload, nil
}

// GetArtist fetches an artist with its URL relations.
func (c *Client) GetArtist(ctx context.Context, id string) (*Artist, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("artist id must not be empty")
	}
	params := url.Values{}
	params.Set("inc", "url-rels")
	params.Set("fmt", "json")

	var payload Artist
	if err := c.getJSON(ctx, "artist lookup", c.baseURL+"/artist/"+url.PathEscape(id), params, true, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GetCoverArt fetches the Cover Art Archive listing for a release. A release
// without archived art yields nil and no error.
func (c *Client) GetCoverArt(ctx context.Context, releaseID string) (*CoverArt, error) {
	releaseID = strings.TrimSpace(releaseID)
	if releaseID == "" {
		return nil, errors.New("release id must not be empty")
	}
	if c.coverArtURL == "" {
		return nil, nil
	}

	var payload CoverArt
	err := c.getJSON(ctx, "cover art", c.coverArtURL+"/release/"+url.PathEscape(releaseID), nil, false, &payload)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &payload, nil
}

func (c *Client) getJSON(ctx context.Context, endpointName, rawURL string, params url.Values, limited bool, out any) error {
	endpoint, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse musicbrainz url: %w", err)
	}
	if len(params) > 0 {
		endpoint.RawQuery = params.Encode()
	}

	if limited {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("wait for rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	// MusicBrainz rejects requests without a descriptive user agent.
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Endpoint: endpointName, StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpointName, err)
	}
	return nil
}
