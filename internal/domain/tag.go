package domain

import "time"

// Tag represents a global mood/category label for playlists.
// Tags are shared across all users; there is no ownership model.
// Slug is the source of truth; clients transform for display: "slow-burn" → "Slow Burn".
type Tag struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"` // Canonical form: lowercase, hyphenated
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Touch updates the UpdatedAt timestamp.
func (t *Tag) Touch() {
	t.UpdatedAt = time.Now()
}

// PlaylistTag represents the many-to-many relationship between playlists and tags.
// Only non-clone playlists may be tagged; clones reject tag mutation.
type PlaylistTag struct {
	PlaylistID string    `json:"playlist_id"`
	TagID      string    `json:"tag_id"`
	CreatedAt  time.Time `json:"created_at"`
}
