// Package store defines the persistence interface for the Shelfbeat server.
// The sqlite subpackage provides the production implementation; services
// depend only on this interface.
package store

import (
	"context"
	"time"

	"github.com/shelfbeat/shelfbeat-server/internal/domain"
)

// Store is the full persistence surface consumed by the service layer.
//
// All methods return ErrNotFound / ErrAlreadyExists / ErrAlreadyReviewed
// sentinels (wrapped or bare) for their documented failure modes; any other
// error is an opaque storage failure the caller surfaces as-is.
type Store interface {
	UserStore
	ApplicationStore
	BookStore
	PlaylistStore
	SongStore
	TagStore
	LibraryStore

	Close() error
}

// UserStore persists user accounts and role transitions.
type UserStore interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	ListUsers(ctx context.Context) ([]*domain.User, error)
}

// ApplicationStore persists author-verification applications.
type ApplicationStore interface {
	// CreateApplication inserts a pending application. Returns
	// ErrAlreadyExists if the user already has a pending application
	// (enforced by a partial unique index, so concurrent submits are safe).
	CreateApplication(ctx context.Context, app *domain.AuthorApplication) error

	GetApplication(ctx context.Context, id string) (*domain.AuthorApplication, error)

	// ListApplicationsForUser returns the user's applications in submission
	// order, including terminal ones. Empty slice if none.
	ListApplicationsForUser(ctx context.Context, userID string) ([]*domain.AuthorApplication, error)

	// ListApplications returns applications filtered by status, or all
	// applications when status is empty. Ordered by submission time.
	ListApplications(ctx context.Context, status domain.ApplicationStatus) ([]*domain.AuthorApplication, error)

	// ReviewApplication atomically transitions a pending application to a
	// terminal status and, on approval, promotes the owning user to author
	// and copies the claimed author keys and bio onto the user record.
	// Returns ErrNotFound for an unknown id and ErrAlreadyReviewed if the
	// application is no longer pending.
	ReviewApplication(ctx context.Context, id, reviewerID string, decision domain.ReviewDecision, reviewedAt time.Time) (*domain.AuthorApplication, error)
}

// BookStore persists shared catalog books.
type BookStore interface {
	CreateBook(ctx context.Context, book *domain.Book) error
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	GetBookByExternalID(ctx context.Context, externalID string) (*domain.Book, error)
	ListBooks(ctx context.Context) ([]*domain.Book, error)
	SearchBooksByTitle(ctx context.Context, query string) ([]*domain.Book, error)

	// ListPopularBooks returns books ordered by library-add count, capped at limit.
	ListPopularBooks(ctx context.Context, limit int) ([]*domain.Book, error)
}

// PlaylistStore persists playlists and their song memberships.
type PlaylistStore interface {
	CreatePlaylist(ctx context.Context, playlist *domain.Playlist) error
	GetPlaylist(ctx context.Context, id string) (*domain.Playlist, error)
	ListPlaylistsByOwner(ctx context.Context, ownerID string) ([]*domain.Playlist, error)
	ListPlaylistsByBook(ctx context.Context, bookID string) ([]*domain.Playlist, error)
	UpdatePlaylist(ctx context.Context, playlist *domain.Playlist) error

	// DeletePlaylist removes the playlist row; songs, tags, and library
	// entries go with it. Clones of the playlist are untouched.
	DeletePlaylist(ctx context.Context, id string) error

	// GetCloneBySource returns the owner's clone of the given canonical
	// playlist, or ErrNotFound.
	GetCloneBySource(ctx context.Context, ownerID, sourcePlaylistID string) (*domain.Playlist, error)

	// ClonePlaylist inserts the clone, copies the source's ordered song
	// list, and attaches the clone to the owner's library in a single
	// transaction. Returns ErrAlreadyExists if a clone for
	// (clone.OwnerID, clone.SourcePlaylistID) already exists.
	ClonePlaylist(ctx context.Context, clone *domain.Playlist) error

	// AddSongToPlaylist appends the song at the next position. Adding a
	// song already present is a no-op.
	AddSongToPlaylist(ctx context.Context, playlistID, songID string) error

	// RemoveSongFromPlaylist removes the membership; removing an absent
	// song is a no-op.
	RemoveSongFromPlaylist(ctx context.Context, playlistID, songID string) error

	// ListPlaylistSongs returns the playlist's songs in position order.
	ListPlaylistSongs(ctx context.Context, playlistID string) ([]*domain.Song, error)
}

// SongStore persists external song references.
type SongStore interface {
	// UpsertSong inserts the song or returns the existing row with the
	// same Spotify track ID.
	UpsertSong(ctx context.Context, song *domain.Song) (*domain.Song, error)
	GetSong(ctx context.Context, id string) (*domain.Song, error)
}

// TagStore persists global playlist tags.
type TagStore interface {
	// FindOrCreateTagBySlug returns the tag for slug, creating it if
	// needed. The bool reports whether a new tag was created.
	FindOrCreateTagBySlug(ctx context.Context, slug string) (*domain.Tag, bool, error)
	GetTagBySlug(ctx context.Context, slug string) (*domain.Tag, error)
	ListTags(ctx context.Context) ([]*domain.Tag, error)
	AddTagToPlaylist(ctx context.Context, playlistID, tagID string) error
	RemoveTagFromPlaylist(ctx context.Context, playlistID, tagID string) error
	ListPlaylistTags(ctx context.Context, playlistID string) ([]*domain.Tag, error)
}

// LibraryStore persists per-user library membership.
type LibraryStore interface {
	GetLibrary(ctx context.Context, userID string) (*domain.Library, error)

	// AddBookToLibrary is an idempotent set-insert.
	AddBookToLibrary(ctx context.Context, userID, bookID string) error

	// RemoveBookFromLibrary is an idempotent set-remove; removing a
	// non-member book is a no-op.
	RemoveBookFromLibrary(ctx context.Context, userID, bookID string) error

	AddPlaylistToLibrary(ctx context.Context, userID, playlistID string) error
	RemovePlaylistFromLibrary(ctx context.Context, userID, playlistID string) error
}
