package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfbeat/shelfbeat-server/internal/domain"
	domainerrors "github.com/shelfbeat/shelfbeat-server/internal/errors"
)

func TestTagService_AddToPlaylist(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	reader := env.seedUser(t, "reader@example.com", domain.RoleReader)
	book := env.seedBook(t, "OL1W", "The Long Road", "OL1A")
	env.addToLibrary(t, reader.ID, book.ID)
	playlist := env.createLinked(t, reader.ID, book.ID, false)

	tag, created, err := env.tags.AddToPlaylist(ctx, playlist.ID, reader.ID, "Slow Burn")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "slow-burn", tag.Slug)

	// Differently cased input normalizes to the same tag.
	same, created, err := env.tags.AddToPlaylist(ctx, playlist.ID, reader.ID, "slow-burn")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, tag.ID, same.ID)

	tags, err := env.tags.ListForPlaylist(ctx, playlist.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "slow-burn", tags[0].Slug)
}

func TestTagService_AddToPlaylist_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	reader := env.seedUser(t, "reader@example.com", domain.RoleReader)
	intruder := env.seedUser(t, "intruder@example.com", domain.RoleReader)
	book := env.seedBook(t, "OL1W", "The Long Road", "OL1A")
	env.addToLibrary(t, reader.ID, book.ID)
	playlist := env.createLinked(t, reader.ID, book.ID, false)

	_, _, err := env.tags.AddToPlaylist(ctx, playlist.ID, reader.ID, "!!!")
	assert.True(t, errors.Is(err, domainerrors.ErrValidation), "expected validation error, got %v", err)

	_, _, err = env.tags.AddToPlaylist(ctx, playlist.ID, intruder.ID, "moody")
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden), "expected forbidden, got %v", err)

	_, _, err = env.tags.AddToPlaylist(ctx, "pls-missing", reader.ID, "moody")
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound), "expected not found, got %v", err)
}

func TestTagService_CloneCannotBeTagged(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.seedUser(t, "author@example.com", domain.RoleAuthor, "OL1A")
	reader := env.seedUser(t, "reader@example.com", domain.RoleReader)
	book := env.seedBook(t, "OL1W", "The Long Road", "OL1A")
	env.addToLibrary(t, author.ID, book.ID)
	canonical := env.createLinked(t, author.ID, book.ID, true)

	clone, err := env.playlists.Listen(ctx, reader.ID, canonical.ID)
	require.NoError(t, err)

	_, _, err = env.tags.AddToPlaylist(ctx, clone.Playlist.ID, reader.ID, "moody")
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden), "expected forbidden, got %v", err)
}

func TestTagService_RemoveFromPlaylist(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	reader := env.seedUser(t, "reader@example.com", domain.RoleReader)
	book := env.seedBook(t, "OL1W", "The Long Road", "OL1A")
	env.addToLibrary(t, reader.ID, book.ID)
	playlist := env.createLinked(t, reader.ID, book.ID, false)

	_, _, err := env.tags.AddToPlaylist(ctx, playlist.ID, reader.ID, "Slow Burn")
	require.NoError(t, err)

	require.NoError(t, env.tags.RemoveFromPlaylist(ctx, playlist.ID, reader.ID, "Slow Burn"))

	tags, err := env.tags.ListForPlaylist(ctx, playlist.ID)
	require.NoError(t, err)
	assert.Empty(t, tags)

	// The tag itself survives detachment for reuse elsewhere.
	all, err := env.tags.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "slow-burn", all[0].Slug)

	// Detaching a tag that was never attached needs the tag to exist.
	err = env.tags.RemoveFromPlaylist(ctx, playlist.ID, reader.ID, "never-created")
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound), "expected not found, got %v", err)

	// Detaching an existing but unattached tag is a no-op.
	require.NoError(t, env.tags.RemoveFromPlaylist(ctx, playlist.ID, reader.ID, "slow-burn"))
}

func TestTagService_SharedAcrossPlaylists(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.seedUser(t, "a@example.com", domain.RoleReader)
	b := env.seedUser(t, "b@example.com", domain.RoleReader)
	book := env.seedBook(t, "OL1W", "The Long Road", "OL1A")
	env.addToLibrary(t, a.ID, book.ID)
	env.addToLibrary(t, b.ID, book.ID)
	p1 := env.createLinked(t, a.ID, book.ID, false)
	p2 := env.createLinked(t, b.ID, book.ID, false)

	tag1, _, err := env.tags.AddToPlaylist(ctx, p1.ID, a.ID, "cozy")
	require.NoError(t, err)
	tag2, _, err := env.tags.AddToPlaylist(ctx, p2.ID, b.ID, "Cozy")
	require.NoError(t, err)

	// One global tag backs both playlists.
	assert.Equal(t, tag1.ID, tag2.ID)

	all, err := env.tags.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	// Detaching from one playlist leaves the other alone.
	require.NoError(t, env.tags.RemoveFromPlaylist(ctx, p1.ID, a.ID, "cozy"))
	tags, err := env.tags.ListForPlaylist(ctx, p2.ID)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}
