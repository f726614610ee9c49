package service

import (
	"context"
	"log/slog"
	"strings"

	catalogspotify "github.com/shelfbeat/shelfbeat-server/internal/catalog/spotify"
	domainerrors "github.com/shelfbeat/shelfbeat-server/internal/errors"
	"github.com/shelfbeat/shelfbeat-server/internal/store"
)

// TrackSearcher searches the external song catalog.
type TrackSearcher interface {
	SearchTracks(ctx context.Context, query string, limit int) ([]catalogspotify.TrackResult, error)
}

// SongService exposes external song search for playlist building.
type SongService struct {
	store  store.Store
	tracks TrackSearcher
	logger *slog.Logger
}

// NewSongService creates a new song service.
func NewSongService(store store.Store, tracks TrackSearcher, logger *slog.Logger) *SongService {
	return &SongService{
		store:  store,
		tracks: tracks,
		logger: logger,
	}
}

const songSearchLimit = 20

// Search finds tracks on Spotify matching the query.
func (s *SongService) Search(ctx context.Context, query string) ([]catalogspotify.TrackResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domainerrors.Validation("query is required")
	}
	if s.tracks == nil {
		return nil, domainerrors.Internal("song catalog is not configured")
	}

	results, err := s.tracks.SearchTracks(ctx, query, songSearchLimit)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "song search failed")
	}
	return results, nil
}
