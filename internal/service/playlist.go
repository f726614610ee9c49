package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	catalogspotify "github.com/shelfbeat/shelfbeat-server/internal/catalog/spotify"
	"github.com/shelfbeat/shelfbeat-server/internal/domain"
	domainerrors "github.com/shelfbeat/shelfbeat-server/internal/errors"
	"github.com/shelfbeat/shelfbeat-server/internal/id"
	"github.com/shelfbeat/shelfbeat-server/internal/store"
)

// TrackLookup resolves a Spotify track ID to its metadata. Nil is allowed;
// song additions then require the caller to supply metadata inline.
type TrackLookup interface {
	GetTrack(ctx context.Context, id string) (*catalogspotify.TrackResult, error)
}

// PlaylistService manages playlists: creation, song membership, and the
// propagation of an author's canonical recommendation playlist into
// per-reader clones.
type PlaylistService struct {
	store  store.Store
	tracks TrackLookup
	logger *slog.Logger
}

// NewPlaylistService creates a new playlist service.
func NewPlaylistService(store store.Store, tracks TrackLookup, logger *slog.Logger) *PlaylistService {
	return &PlaylistService{
		store:  store,
		tracks: tracks,
		logger: logger,
	}
}

// LinkedSpec creates a playlist for a catalog book.
type LinkedSpec struct {
	BookID       string `json:"book_id" validate:"required"`
	IsAuthorReco bool   `json:"is_author_reco"`
}

// CustomSpec creates a playlist for a book not in the catalog.
type CustomSpec struct {
	BookTitle  string `json:"book_title" validate:"required,max=300"`
	BookAuthor string `json:"book_author" validate:"required,max=300"`
	BookYear   int    `json:"book_year" validate:"gte=0"`
}

// CreateRequest contains new playlist data. Exactly one of Linked or Custom
// must be set.
type CreateRequest struct {
	Title       string      `json:"title" validate:"required,max=200"`
	Description string      `json:"description" validate:"max=2000"`
	Linked      *LinkedSpec `json:"linked,omitempty"`
	Custom      *CustomSpec `json:"custom,omitempty"`
}

// SongInput identifies a song to add. Metadata fields are optional; when
// absent the track is looked up on Spotify.
type SongInput struct {
	SpotifyID  string `json:"spotify_id" validate:"required"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	ArtworkURL string `json:"artwork_url"`
	DurationMs int    `json:"duration_ms"`
}

// UpdateRequest contains partial playlist updates. Nil fields are left
// unchanged.
type UpdateRequest struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	IsAuthorReco *bool   `json:"is_author_reco,omitempty"`
}

// PlaylistDetail is a playlist with its resolved songs and tags.
type PlaylistDetail struct {
	Playlist *domain.Playlist `json:"playlist"`
	Songs    []*domain.Song   `json:"songs"`
	Tags     []*domain.Tag    `json:"tags"`
}

// Create makes a new, empty playlist. A linked playlist requires the book to
// already be in the owner's library; marking it as an author recommendation
// additionally requires the owner to be the book's verified author. A custom
// playlist carries its own book metadata and is never an author
// recommendation.
func (s *PlaylistService) Create(ctx context.Context, ownerID string, req CreateRequest) (*domain.Playlist, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}
	if (req.Linked == nil) == (req.Custom == nil) {
		return nil, domainerrors.Validation("exactly one of linked or custom must be set")
	}

	owner, err := s.store.GetUser(ctx, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	playlistID, err := id.Generate("pls")
	if err != nil {
		return nil, fmt.Errorf("generate playlist ID: %w", err)
	}

	now := time.Now()
	playlist := &domain.Playlist{
		ID:          playlistID,
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	switch {
	case req.Linked != nil:
		if err := validate.Validate(req.Linked); err != nil {
			return nil, err
		}

		book, err := s.store.GetBook(ctx, req.Linked.BookID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, domainerrors.NotFound("book not found")
			}
			return nil, fmt.Errorf("get book: %w", err)
		}

		lib, err := s.store.GetLibrary(ctx, ownerID)
		if err != nil {
			return nil, fmt.Errorf("get library: %w", err)
		}
		if !lib.HasBook(book.ID) {
			return nil, domainerrors.Validation("book is not in your library")
		}

		if req.Linked.IsAuthorReco && !owner.OwnsBook(book) {
			return nil, domainerrors.Forbidden("only the book's verified author can mark a recommendation playlist")
		}

		playlist.BookID = book.ID
		playlist.IsAuthorReco = req.Linked.IsAuthorReco

	case req.Custom != nil:
		if err := validate.Validate(req.Custom); err != nil {
			return nil, err
		}
		playlist.CustomBookTitle = req.Custom.BookTitle
		playlist.CustomBookAuthor = req.Custom.BookAuthor
		playlist.CustomBookYear = req.Custom.BookYear
	}

	if err := s.store.CreatePlaylist(ctx, playlist); err != nil {
		return nil, fmt.Errorf("create playlist: %w", err)
	}

	s.logger.Info("playlist created",
		"playlist_id", playlistID,
		"owner_id", ownerID,
		"is_author_reco", playlist.IsAuthorReco,
	)

	return playlist, nil
}

// Get returns a playlist with its songs and tags.
func (s *PlaylistService) Get(ctx context.Context, playlistID string) (*PlaylistDetail, error) {
	playlist, err := s.getPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, playlist)
}

// ListForOwner returns the owner's playlists in creation order.
func (s *PlaylistService) ListForOwner(ctx context.Context, ownerID string) ([]*domain.Playlist, error) {
	playlists, err := s.store.ListPlaylistsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	return playlists, nil
}

// ListForBook returns the playlists linked to a catalog book, author
// recommendations first.
func (s *PlaylistService) ListForBook(ctx context.Context, bookID string) ([]*domain.Playlist, error) {
	playlists, err := s.store.ListPlaylistsByBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("list playlists for book: %w", err)
	}
	return playlists, nil
}

// AddSong appends a song to the playlist. Owner-only; clones reject all song
// mutation regardless of actor. Adding a song already present is a no-op.
func (s *PlaylistService) AddSong(ctx context.Context, playlistID, actorID string, input SongInput) (*PlaylistDetail, error) {
	if err := validate.Validate(input); err != nil {
		return nil, err
	}

	playlist, err := s.getPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if err := s.requireEditable(playlist, actorID); err != nil {
		return nil, err
	}

	song, err := s.resolveSong(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := s.store.AddSongToPlaylist(ctx, playlistID, song.ID); err != nil {
		return nil, fmt.Errorf("add song: %w", err)
	}

	playlist.Touch()
	if err := s.store.UpdatePlaylist(ctx, playlist); err != nil {
		return nil, fmt.Errorf("touch playlist: %w", err)
	}

	s.logger.Info("song added to playlist",
		"playlist_id", playlistID,
		"song_id", song.ID,
	)

	return s.detail(ctx, playlist)
}

// RemoveSong removes a song from the playlist. Owner-only; clones reject all
// song mutation. Removing an absent song is a no-op.
func (s *PlaylistService) RemoveSong(ctx context.Context, playlistID, actorID, songID string) (*PlaylistDetail, error) {
	playlist, err := s.getPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if err := s.requireEditable(playlist, actorID); err != nil {
		return nil, err
	}

	if err := s.store.RemoveSongFromPlaylist(ctx, playlistID, songID); err != nil {
		return nil, fmt.Errorf("remove song: %w", err)
	}

	playlist.Touch()
	if err := s.store.UpdatePlaylist(ctx, playlist); err != nil {
		return nil, fmt.Errorf("touch playlist: %w", err)
	}

	return s.detail(ctx, playlist)
}

// Update changes a playlist's metadata. Owner-only; clones are immutable.
// Turning on is_author_reco re-checks ownership of the linked book, so a
// user who lost author status cannot relabel an old playlist.
func (s *PlaylistService) Update(ctx context.Context, playlistID, actorID string, req UpdateRequest) (*domain.Playlist, error) {
	playlist, err := s.getPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if err := s.requireEditable(playlist, actorID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, domainerrors.Validation("title cannot be empty")
		}
		playlist.Title = *req.Title
	}
	if req.Description != nil {
		playlist.Description = *req.Description
	}
	if req.IsAuthorReco != nil && *req.IsAuthorReco != playlist.IsAuthorReco {
		if *req.IsAuthorReco {
			if playlist.BookID == "" {
				return nil, domainerrors.Validation("custom playlists cannot be author recommendations")
			}

			owner, err := s.store.GetUser(ctx, playlist.OwnerID)
			if err != nil {
				return nil, fmt.Errorf("get owner: %w", err)
			}
			book, err := s.store.GetBook(ctx, playlist.BookID)
			if err != nil {
				return nil, fmt.Errorf("get book: %w", err)
			}
			if !owner.OwnsBook(book) {
				return nil, domainerrors.Forbidden("only the book's verified author can mark a recommendation playlist")
			}
		}
		playlist.IsAuthorReco = *req.IsAuthorReco
	}

	playlist.Touch()
	if err := s.store.UpdatePlaylist(ctx, playlist); err != nil {
		return nil, fmt.Errorf("update playlist: %w", err)
	}

	s.logger.Info("playlist updated",
		"playlist_id", playlistID,
	)

	return playlist, nil
}

// Delete removes a playlist. Owner-only. For a clone this is "remove from
// library"; either way it deletes the row, and library entries, song
// memberships, and tag links go with it. Deleting a canonical playlist never
// deletes the clones made from it.
func (s *PlaylistService) Delete(ctx context.Context, playlistID, actorID string) error {
	playlist, err := s.getPlaylist(ctx, playlistID)
	if err != nil {
		return err
	}
	if playlist.OwnerID != actorID {
		return domainerrors.Forbidden("only the playlist owner can delete it")
	}

	if err := s.store.DeletePlaylist(ctx, playlistID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("playlist not found")
		}
		return fmt.Errorf("delete playlist: %w", err)
	}

	s.logger.Info("playlist deleted",
		"playlist_id", playlistID,
		"owner_id", actorID,
		"was_clone", playlist.IsClone(),
	)

	return nil
}

// Listen gives the reader their personal clone of a canonical
// recommendation playlist. The first call snapshots the canonical playlist's
// title, description, and ordered song list into a new clone attached to the
// reader's library; every later call returns that same clone. Two racing
// calls produce exactly one clone, guaranteed by the storage-level
// uniqueness of (owner, source).
func (s *PlaylistService) Listen(ctx context.Context, readerID, canonicalPlaylistID string) (*PlaylistDetail, error) {
	source, err := s.getPlaylist(ctx, canonicalPlaylistID)
	if err != nil {
		return nil, err
	}
	if !source.IsAuthorReco || source.IsClone() {
		return nil, domainerrors.NotFound("playlist is not an author recommendation")
	}

	// Fast path: the reader already has a clone.
	existing, err := s.store.GetCloneBySource(ctx, readerID, canonicalPlaylistID)
	if err == nil {
		return s.detail(ctx, existing)
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("lookup clone: %w", err)
	}

	cloneID, err := id.Generate("pls")
	if err != nil {
		return nil, fmt.Errorf("generate playlist ID: %w", err)
	}

	now := time.Now()
	clone := &domain.Playlist{
		ID:               cloneID,
		OwnerID:          readerID,
		BookID:           source.BookID,
		Title:            source.Title,
		Description:      source.Description,
		IsAuthorReco:     true,
		SourcePlaylistID: source.ID,
		CustomBookTitle:  source.CustomBookTitle,
		CustomBookAuthor: source.CustomBookAuthor,
		CustomBookYear:   source.CustomBookYear,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.store.ClonePlaylist(ctx, clone); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost the race; return the winner's clone.
			winner, err := s.store.GetCloneBySource(ctx, readerID, canonicalPlaylistID)
			if err != nil {
				return nil, fmt.Errorf("lookup clone after race: %w", err)
			}
			return s.detail(ctx, winner)
		}
		return nil, fmt.Errorf("clone playlist: %w", err)
	}

	s.logger.Info("playlist cloned",
		"source_playlist_id", canonicalPlaylistID,
		"clone_id", cloneID,
		"reader_id", readerID,
	)

	return s.detail(ctx, clone)
}

func (s *PlaylistService) getPlaylist(ctx context.Context, playlistID string) (*domain.Playlist, error) {
	playlist, err := s.store.GetPlaylist(ctx, playlistID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("playlist not found")
		}
		return nil, fmt.Errorf("get playlist: %w", err)
	}
	return playlist, nil
}

// requireEditable enforces the mutation rules shared by song and metadata
// edits: only the owner may edit, and clones are immutable for everyone,
// including their owner.
func (s *PlaylistService) requireEditable(playlist *domain.Playlist, actorID string) error {
	if playlist.OwnerID != actorID {
		return domainerrors.Forbidden("only the playlist owner can modify it")
	}
	if playlist.IsClone() {
		return domainerrors.Forbidden("cloned playlists cannot be modified")
	}
	return nil
}

// resolveSong upserts the song for a Spotify track, looking up metadata when
// the caller did not supply it.
func (s *PlaylistService) resolveSong(ctx context.Context, input SongInput) (*domain.Song, error) {
	if input.Title == "" {
		if s.tracks == nil {
			return nil, domainerrors.Validation("song metadata is required")
		}
		track, err := s.tracks.GetTrack(ctx, input.SpotifyID)
		if err != nil {
			return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "track lookup failed")
		}
		input.Title = track.Title
		input.Artist = track.Artist
		input.Album = track.Album
		input.ArtworkURL = track.ArtworkURL
		input.DurationMs = track.DurationMs
	}

	songID, err := id.Generate("sng")
	if err != nil {
		return nil, fmt.Errorf("generate song ID: %w", err)
	}

	song, err := s.store.UpsertSong(ctx, &domain.Song{
		ID:         songID,
		SpotifyID:  input.SpotifyID,
		Title:      input.Title,
		Artist:     input.Artist,
		Album:      input.Album,
		ArtworkURL: input.ArtworkURL,
		DurationMs: input.DurationMs,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("upsert song: %w", err)
	}
	return song, nil
}

func (s *PlaylistService) detail(ctx context.Context, playlist *domain.Playlist) (*PlaylistDetail, error) {
	songs, err := s.store.ListPlaylistSongs(ctx, playlist.ID)
	if err != nil {
		return nil, fmt.Errorf("list playlist songs: %w", err)
	}
	tags, err := s.store.ListPlaylistTags(ctx, playlist.ID)
	if err != nil {
		return nil, fmt.Errorf("list playlist tags: %w", err)
	}
	return &PlaylistDetail{
		Playlist: playlist,
		Songs:    songs,
		Tags:     tags,
	}, nil
}
