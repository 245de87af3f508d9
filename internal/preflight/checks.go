package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sys/unix"
)

// Access selects the permissions CheckDirectoryAccess requires.
type Access uint32

const (
	AccessRead      Access = unix.R_OK | unix.X_OK
	AccessReadWrite Access = unix.R_OK | unix.W_OK | unix.X_OK
)

func (a Access) String() string {
	if a&unix.W_OK != 0 {
		return "read/write"
	}
	return "read"
}

// CheckDirectoryAccess verifies that the directory exists and grants the
// requested access.
func CheckDirectoryAccess(name, path string, access Access) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, uint32(access)); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s ok)", path, access)}
}

// CheckMusicBrainz verifies the catalog answers a minimal search.
func CheckMusicBrainz(ctx context.Context, baseURL, userAgent string) Result {
	const name = "MusicBrainz"

	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return Result{Name: name, Detail: "missing base url"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	params := url.Values{"query": {"recording:test"}, "limit": {"1"}, "fmt": {"json"}}
	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, base+"/recording?"+params.Encode(), nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("request failed (%v)", err)}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: summarizeNetError(err)}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return Result{Name: name, Passed: true, Detail: "Reachable"}
	case http.StatusServiceUnavailable, http.StatusTooManyRequests:
		return Result{Name: name, Detail: fmt.Sprintf("rate limited (%d); lower requests_per_second", resp.StatusCode)}
	case http.StatusForbidden:
		return Result{Name: name, Detail: "forbidden (set a descriptive user_agent)"}
	default:
		return Result{Name: name, Detail: fmt.Sprintf("search failed (%d)", resp.StatusCode)}
	}
}

// CheckSpotify verifies that the client credentials can obtain a token. An
// empty tokenURL uses the Spotify accounts service.
func CheckSpotify(ctx context.Context, clientID, clientSecret, tokenURL string) Result {
	const name = "Spotify"

	if strings.TrimSpace(clientID) == "" || strings.TrimSpace(clientSecret) == "" {
		return Result{Name: name, Detail: "missing client credentials"}
	}
	if tokenURL == "" {
		tokenURL = spotifyauth.TokenURL
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	creds := clientcredentials.Config{ClientID: clientID, ClientSecret: clientSecret, TokenURL: tokenURL}
	if _, err := creds.Token(checkCtx); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("token request failed (%s)", summarizeNetError(err))}
	}
	return Result{Name: name, Passed: true, Detail: "Credentials accepted"}
}

// summarizeNetError produces a human-readable summary for request failures.
func summarizeNetError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timed out (service unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timed out (service unreachable)"
	}
	return err.Error()
}
