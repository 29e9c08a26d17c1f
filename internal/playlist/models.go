package playlist

import (
	"time"
)

// Playlist is a shared, anonymous playlist reachable by its public slug.
// The PIN is deliberately excluded from JSON: it is echoed exactly once,
// in the create response, and never again.
type Playlist struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IsPrivate   bool      `json:"isPrivate"`
	PIN         *string   `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Song belongs to a playlist. Songs are ordered by Position; positions are
// unique per playlist but may have gaps after deletions. Readers sort by
// position, then created_at, then id.
type Song struct {
	ID            string    `json:"id"`
	PlaylistID    string    `json:"playlistId"`
	Title         string    `json:"title"`
	Artist        string    `json:"artist"`
	Album         string    `json:"album,omitempty"`
	CoverImageURL string    `json:"coverImageUrl,omitempty"`
	ITunesID      string    `json:"itunesId,omitempty"`
	Position      int       `json:"position"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Comment is an append-only note on a song. Comments are listed newest
// first and are never edited or reordered.
type Comment struct {
	ID         string    `json:"id"`
	SongID     string    `json:"songId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

const (
	maxNameLen        = 100
	maxDescriptionLen = 500
	maxTitleLen       = 300
	maxArtistLen      = 200
	maxAuthorNameLen  = 50
	maxCommentLen     = 500
)
