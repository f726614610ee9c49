package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shelfbeat/shelfbeat-server/internal/domain"
	domainerrors "github.com/shelfbeat/shelfbeat-server/internal/errors"
	"github.com/shelfbeat/shelfbeat-server/internal/slug"
	"github.com/shelfbeat/shelfbeat-server/internal/store"
)

// TagService manages global mood/category tags on playlists. Tags are shared
// labels; only the playlist owner can attach or detach them, and clones
// reject tag mutation like every other edit.
type TagService struct {
	store  store.Store
	logger *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(store store.Store, logger *slog.Logger) *TagService {
	return &TagService{
		store:  store,
		logger: logger,
	}
}

// List returns all tags ordered by slug.
func (s *TagService) List(ctx context.Context) ([]*domain.Tag, error) {
	return s.store.ListTags(ctx)
}

// AddToPlaylist attaches a tag to a playlist, creating the tag on first use.
// The raw input is normalized to a slug, so "Slow Burn" and "slow-burn" are
// the same tag.
func (s *TagService) AddToPlaylist(ctx context.Context, playlistID, actorID, rawInput string) (*domain.Tag, bool, error) {
	playlist, err := s.taggable(ctx, playlistID, actorID)
	if err != nil {
		return nil, false, err
	}

	tagSlug := slug.Make(rawInput)
	if tagSlug == "" {
		return nil, false, domainerrors.Validation("tag is empty after normalization")
	}

	tag, created, err := s.store.FindOrCreateTagBySlug(ctx, tagSlug)
	if err != nil {
		return nil, false, fmt.Errorf("find or create tag: %w", err)
	}

	if err := s.store.AddTagToPlaylist(ctx, playlist.ID, tag.ID); err != nil {
		return nil, false, fmt.Errorf("add tag: %w", err)
	}

	s.logger.Info("tag added to playlist",
		"tag_slug", tag.Slug,
		"playlist_id", playlistID,
		"created", created,
	)

	return tag, created, nil
}

// RemoveFromPlaylist detaches a tag from a playlist. Detaching an absent tag
// is a no-op. Orphaned tags persist for reuse.
func (s *TagService) RemoveFromPlaylist(ctx context.Context, playlistID, actorID, rawSlug string) error {
	playlist, err := s.taggable(ctx, playlistID, actorID)
	if err != nil {
		return err
	}

	tag, err := s.store.GetTagBySlug(ctx, slug.Make(rawSlug))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("tag not found")
		}
		return fmt.Errorf("get tag: %w", err)
	}

	if err := s.store.RemoveTagFromPlaylist(ctx, playlist.ID, tag.ID); err != nil {
		return fmt.Errorf("remove tag: %w", err)
	}

	s.logger.Info("tag removed from playlist",
		"tag_slug", tag.Slug,
		"playlist_id", playlistID,
	)

	return nil
}

// ListForPlaylist returns a playlist's tags ordered by slug.
func (s *TagService) ListForPlaylist(ctx context.Context, playlistID string) ([]*domain.Tag, error) {
	if _, err := s.store.GetPlaylist(ctx, playlistID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("playlist not found")
		}
		return nil, fmt.Errorf("get playlist: %w", err)
	}
	return s.store.ListPlaylistTags(ctx, playlistID)
}

// taggable loads the playlist and enforces the tag mutation rules: owner
// only, clones never.
func (s *TagService) taggable(ctx context.Context, playlistID, actorID string) (*domain.Playlist, error) {
	playlist, err := s.store.GetPlaylist(ctx, playlistID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("playlist not found")
		}
		return nil, fmt.Errorf("get playlist: %w", err)
	}
	if playlist.OwnerID != actorID {
		return nil, domainerrors.Forbidden("only the playlist owner can change its tags")
	}
	if playlist.IsClone() {
		return nil, domainerrors.Forbidden("cloned playlists cannot be tagged")
	}
	return playlist, nil
}
