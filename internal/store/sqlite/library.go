package sqlite

import (
	"context"
	"time"

	"github.com/shelfbeat/shelfbeat-server/internal/domain"
)

// GetLibrary assembles the user's library from its membership tables. A user
// with no entries gets an empty library, never an error.
func (s *Store) GetLibrary(ctx context.Context, userID string) (*domain.Library, error) {
	lib := &domain.Library{UserID: userID}

	rows, err := s.db.QueryContext(ctx, `
		SELECT book_id FROM user_library_books
		WHERE user_id = ? ORDER BY created_at, book_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var bookID string
		if err := rows.Scan(&bookID); err != nil {
			return nil, err
		}
		lib.BookIDs = append(lib.BookIDs, bookID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT playlist_id FROM user_library_playlists
		WHERE user_id = ? ORDER BY created_at, playlist_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var playlistID string
		if err := rows.Scan(&playlistID); err != nil {
			return nil, err
		}
		lib.PlaylistIDs = append(lib.PlaylistIDs, playlistID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lib, nil
}

// AddBookToLibrary adds a book to the user's library. Adding a book that is
// already there is a no-op.
func (s *Store) AddBookToLibrary(ctx context.Context, userID, bookID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO user_library_books (user_id, book_id, created_at)
		VALUES (?, ?, ?)`,
		userID, bookID, formatTime(time.Now()))
	return err
}

// RemoveBookFromLibrary removes a book from the user's library. Removing a
// book that is not there is a no-op.
func (s *Store) RemoveBookFromLibrary(ctx context.Context, userID, bookID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM user_library_books WHERE user_id = ? AND book_id = ?`,
		userID, bookID)
	return err
}

// AddPlaylistToLibrary adds a playlist to the user's library. Idempotent.
func (s *Store) AddPlaylistToLibrary(ctx context.Context, userID, playlistID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO user_library_playlists (user_id, playlist_id, created_at)
		VALUES (?, ?, ?)`,
		userID, playlistID, formatTime(time.Now()))
	return err
}

// RemovePlaylistFromLibrary removes a playlist from the user's library.
// Removing an absent playlist is a no-op.
func (s *Store) RemovePlaylistFromLibrary(ctx context.Context, userID, playlistID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM user_library_playlists WHERE user_id = ? AND playlist_id = ?`,
		userID, playlistID)
	return err
}
