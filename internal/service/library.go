package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shelfbeat/shelfbeat-server/internal/domain"
	domainerrors "github.com/shelfbeat/shelfbeat-server/internal/errors"
	"github.com/shelfbeat/shelfbeat-server/internal/store"
)

// LibraryService tracks which books and playlists belong to a user's
// collection. Adds and removes are idempotent set operations.
type LibraryService struct {
	store  store.Store
	logger *slog.Logger
}

// NewLibraryService creates a new library service.
func NewLibraryService(store store.Store, logger *slog.Logger) *LibraryService {
	return &LibraryService{
		store:  store,
		logger: logger,
	}
}

// LibraryDetail is a library with its book and playlist rows resolved.
type LibraryDetail struct {
	Books     []*domain.Book     `json:"books"`
	Playlists []*domain.Playlist `json:"playlists"`
}

// Get returns the user's library with books and playlists resolved. Entries
// whose rows have disappeared are skipped rather than failing the whole
// read.
func (s *LibraryService) Get(ctx context.Context, userID string) (*LibraryDetail, error) {
	lib, err := s.store.GetLibrary(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get library: %w", err)
	}

	detail := &LibraryDetail{
		Books:     []*domain.Book{},
		Playlists: []*domain.Playlist{},
	}

	for _, bookID := range lib.BookIDs {
		book, err := s.store.GetBook(ctx, bookID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get book %s: %w", bookID, err)
		}
		detail.Books = append(detail.Books, book)
	}

	for _, playlistID := range lib.PlaylistIDs {
		playlist, err := s.store.GetPlaylist(ctx, playlistID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get playlist %s: %w", playlistID, err)
		}
		detail.Playlists = append(detail.Playlists, playlist)
	}

	return detail, nil
}

// AddBook adds a book to the user's library. Adding a book that is already
// there is a no-op, not an error.
func (s *LibraryService) AddBook(ctx context.Context, userID, bookID string) error {
	if _, err := s.store.GetBook(ctx, bookID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("book not found")
		}
		return fmt.Errorf("get book: %w", err)
	}

	if err := s.store.AddBookToLibrary(ctx, userID, bookID); err != nil {
		return fmt.Errorf("add book to library: %w", err)
	}

	s.logger.Info("book added to library",
		"user_id", userID,
		"book_id", bookID,
	)

	return nil
}

// RemoveBook removes a book from the user's library. Removing a non-member
// book is a no-op. Playlists referencing the book are untouched.
func (s *LibraryService) RemoveBook(ctx context.Context, userID, bookID string) error {
	if err := s.store.RemoveBookFromLibrary(ctx, userID, bookID); err != nil {
		return fmt.Errorf("remove book from library: %w", err)
	}
	return nil
}

// AddPlaylist adds a playlist to the user's library. Idempotent.
func (s *LibraryService) AddPlaylist(ctx context.Context, userID, playlistID string) error {
	if _, err := s.store.GetPlaylist(ctx, playlistID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("playlist not found")
		}
		return fmt.Errorf("get playlist: %w", err)
	}

	if err := s.store.AddPlaylistToLibrary(ctx, userID, playlistID); err != nil {
		return fmt.Errorf("add playlist to library: %w", err)
	}
	return nil
}

// RemovePlaylist removes a playlist from the user's library. Idempotent.
func (s *LibraryService) RemovePlaylist(ctx context.Context, userID, playlistID string) error {
	if err := s.store.RemovePlaylistFromLibrary(ctx, userID, playlistID); err != nil {
		return fmt.Errorf("remove playlist from library: %w", err)
	}
	return nil
}
