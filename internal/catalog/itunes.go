// Package catalog wraps the iTunes Search API. The playlist core treats it
// as a best-effort collaborator: failures degrade to "search unavailable",
// they never fail a playlist operation.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Song is one search hit in the shape the frontend consumes.
type Song struct {
	ITunesID      string `json:"itunesId"`
	Title         string `json:"title"`
	Artist        string `json:"artist"`
	Album         string `json:"album"`
	CoverImageURL string `json:"coverImageUrl,omitempty"`
}

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

// Search queries iTunes for songs matching term. It returns at most 20 hits
// and may legitimately return an empty slice.
func (c *Client) Search(ctx context.Context, term string) ([]Song, error) {
	u, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("term", strings.TrimSpace(term))
	q.Set("media", "music")
	q.Set("entity", "song")
	q.Set("limit", "20")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("itunes search: status %d", resp.StatusCode)
	}

	var result struct {
		ResultCount int `json:"resultCount"`
		Results     []struct {
			TrackID        int64  `json:"trackId"`
			TrackName      string `json:"trackName"`
			ArtistName     string `json:"artistName"`
			CollectionName string `json:"collectionName"`
			ArtworkURL100  string `json:"artworkUrl100"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	songs := make([]Song, 0, len(result.Results))
	for _, item := range result.Results {
		songs = append(songs, Song{
			ITunesID:      fmt.Sprintf("%d", item.TrackID),
			Title:         item.TrackName,
			Artist:        item.ArtistName,
			Album:         item.CollectionName,
			CoverImageURL: upgradeArtwork(item.ArtworkURL100),
		})
	}
	return songs, nil
}

// upgradeArtwork swaps iTunes' 100x100 thumbnail for the 600x600 rendition.
func upgradeArtwork(artworkURL string) string {
	if artworkURL == "" {
		return ""
	}
	return strings.Replace(artworkURL, "100x100bb", "600x600bb", 1)
}
