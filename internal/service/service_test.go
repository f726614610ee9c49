package service

import (
	"context"
	"encoding/hex"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shelfbeat/shelfbeat-server/internal/auth"
	"github.com/shelfbeat/shelfbeat-server/internal/domain"
	"github.com/shelfbeat/shelfbeat-server/internal/id"
	"github.com/shelfbeat/shelfbeat-server/internal/store"
	"github.com/shelfbeat/shelfbeat-server/internal/store/sqlite"
)

// testEnv wires every service against a temporary SQLite store.
type testEnv struct {
	store     store.Store
	auth      *AuthService
	apps      *ApplicationService
	playlists *PlaylistService
	library   *LibraryService
	tags      *TagService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := sqlite.Open(filepath.Join(dir, "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	key, err := auth.LoadOrGenerateKey(dir)
	require.NoError(t, err)

	tokenService, err := auth.NewTokenService(hex.EncodeToString(key), 15*time.Minute)
	require.NoError(t, err)

	return &testEnv{
		store:     s,
		auth:      NewAuthService(s, tokenService, logger),
		apps:      NewApplicationService(s, logger),
		playlists: NewPlaylistService(s, nil, logger),
		library:   NewLibraryService(s, logger),
		tags:      NewTagService(s, logger),
	}
}

// seedUser creates a user directly in the store.
func (e *testEnv) seedUser(t *testing.T, email string, role domain.Role, authorKeys ...string) *domain.User {
	t.Helper()

	now := time.Now()
	user := &domain.User{
		ID:           id.MustGenerate("usr"),
		Email:        email,
		PasswordHash: "$argon2id$fakehashfortest",
		DisplayName:  "Test User",
		Role:         role,
		AuthorKeys:   authorKeys,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, e.store.CreateUser(context.Background(), user))
	return user
}

// seedBook creates a catalog book directly in the store.
func (e *testEnv) seedBook(t *testing.T, externalID, title string, authorKeys ...string) *domain.Book {
	t.Helper()

	now := time.Now()
	book := &domain.Book{
		ID:         id.MustGenerate("bok"),
		ExternalID: externalID,
		Title:      title,
		Authors:    []string{"Seeded Author"},
		AuthorKeys: authorKeys,
		Year:       2000,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, e.store.CreateBook(context.Background(), book))
	return book
}

// seedSong creates a song directly in the store.
func (e *testEnv) seedSong(t *testing.T, spotifyID, title string) *domain.Song {
	t.Helper()

	song, err := e.store.UpsertSong(context.Background(), &domain.Song{
		ID:        id.MustGenerate("sng"),
		SpotifyID: spotifyID,
		Title:     title,
		Artist:    "Seeded Artist",
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	return song
}
