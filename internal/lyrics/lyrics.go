// Package lyrics wraps the lyrics.ovh API. Lookups are purely additive:
// a miss or an outage never blocks any playlist operation.
package lyrics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotFound reports that the provider has no lyrics for the song.
var ErrNotFound = fmt.Errorf("lyrics not found")

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Fetch returns the lyrics for artist/title, ErrNotFound when the provider
// has none, or a transport error when the provider is unreachable.
func (c *Client) Fetch(ctx context.Context, artist, title string) (string, error) {
	endpoint := fmt.Sprintf("%s/v1/%s/%s",
		c.baseURL,
		url.PathEscape(strings.TrimSpace(artist)),
		url.PathEscape(strings.TrimSpace(title)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("lyrics fetch: status %d", resp.StatusCode)
	}

	var body struct {
		Lyrics string `json:"lyrics"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	return body.Lyrics, nil
}
