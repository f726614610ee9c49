package domain

import "time"

// Playlist is an ordered collection of song references owned by one user.
//
// Two lineages exist:
//   - A canonical playlist is author-owned with IsAuthorReco set, tied to a
//     book the author owns.
//   - A clone is a reader-owned point-in-time copy of a canonical playlist,
//     created by the listen operation. SourcePlaylistID links it back to its
//     source. Clones are structurally read-only: songs, title, and tags
//     reject mutation regardless of actor, and a clone's lifetime is
//     independent of its source.
//
// BookID is empty for "custom book" playlists, which carry their own
// free-form title/author/year and can never be author recommendations.
type Playlist struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"owner_id"`
	BookID           string    `json:"book_id,omitempty"`
	Title            string    `json:"title"`
	Description      string    `json:"description,omitempty"`
	IsAuthorReco     bool      `json:"is_author_reco"`
	SourcePlaylistID string    `json:"source_playlist_id,omitempty"`
	CustomBookTitle  string    `json:"custom_book_title,omitempty"`
	CustomBookAuthor string    `json:"custom_book_author,omitempty"`
	CustomBookYear   int       `json:"custom_book_year,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// IsClone returns true if this playlist was copied from a canonical playlist.
func (p *Playlist) IsClone() bool {
	return p.SourcePlaylistID != ""
}

// IsCustom returns true for playlists describing a book not in the catalog.
func (p *Playlist) IsCustom() bool {
	return p.BookID == "" && !p.IsClone()
}

// Touch updates the UpdatedAt timestamp.
func (p *Playlist) Touch() {
	p.UpdatedAt = time.Now()
}

// PlaylistSong is the playlist/song membership join with a stable position.
// (PlaylistID, SongID) is unique; adding a song already present is a no-op.
type PlaylistSong struct {
	PlaylistID string    `json:"playlist_id"`
	SongID     string    `json:"song_id"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"created_at"`
}
