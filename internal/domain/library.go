package domain

// Library is a user's collection: the set of catalog books they have added
// and the playlist clones they have acquired through listen. Loaded from the
// store per request; membership tests are pure and perform no I/O.
type Library struct {
	UserID      string   `json:"user_id"`
	BookIDs     []string `json:"book_ids"`
	PlaylistIDs []string `json:"playlist_ids"`
}

// HasBook reports whether the book is in the library.
func (l *Library) HasBook(bookID string) bool {
	if l == nil {
		return false
	}
	for _, id := range l.BookIDs {
		if id == bookID {
			return true
		}
	}
	return false
}

// HasPlaylist reports whether the playlist is in the library.
func (l *Library) HasPlaylist(playlistID string) bool {
	if l == nil {
		return false
	}
	for _, id := range l.PlaylistIDs {
		if id == playlistID {
			return true
		}
	}
	return false
}
