package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerSongRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchSongs",
		Method:      http.MethodGet,
		Path:        "/api/v1/songs/search",
		Summary:     "Search songs",
		Description: "Searches the Spotify catalog for tracks to add to playlists",
		Tags:        []string{"Songs"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSearchSongs)
}

// SearchSongsInput contains parameters for song search.
type SearchSongsInput struct {
	Authorization string `header:"Authorization"`
	Query         string `query:"q" doc:"Search query"`
}

// TrackResponse contains a Spotify track search result.
type TrackResponse struct {
	SpotifyID  string `json:"spotify_id" doc:"Spotify track ID"`
	Title      string `json:"title" doc:"Track title"`
	Artist     string `json:"artist,omitempty" doc:"Artist names"`
	Album      string `json:"album,omitempty" doc:"Album name"`
	ArtworkURL string `json:"artwork_url,omitempty" doc:"Album artwork URL"`
	DurationMs int    `json:"duration_ms,omitempty" doc:"Track duration in milliseconds"`
}

// SearchSongsResponse contains song search results.
type SearchSongsResponse struct {
	Tracks []TrackResponse `json:"tracks" doc:"Matching tracks"`
}

// SearchSongsOutput wraps the search response for Huma.
type SearchSongsOutput struct {
	Body SearchSongsResponse
}

func (s *Server) handleSearchSongs(ctx context.Context, input *SearchSongsInput) (*SearchSongsOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	results, err := s.services.Song.Search(ctx, input.Query)
	if err != nil {
		return nil, err
	}

	tracks := make([]TrackResponse, len(results))
	for i, r := range results {
		tracks[i] = TrackResponse{
			SpotifyID:  r.SpotifyID,
			Title:      r.Title,
			Artist:     r.Artist,
			Album:      r.Album,
			ArtworkURL: r.ArtworkURL,
			DurationMs: r.DurationMs,
		}
	}

	return &SearchSongsOutput{Body: SearchSongsResponse{Tracks: tracks}}, nil
}
