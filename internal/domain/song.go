package domain

import "time"

// Song is an external track reference. Shelfbeat stores no audio; a song row
// records the Spotify track identity and display metadata captured when the
// track was first added to a playlist.
type Song struct {
	ID         string    `json:"id"`
	SpotifyID  string    `json:"spotify_id"`
	Title      string    `json:"title"`
	Artist     string    `json:"artist"`
	Album      string    `json:"album,omitempty"`
	ArtworkURL string    `json:"artwork_url,omitempty"`
	DurationMs int       `json:"duration_ms,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
