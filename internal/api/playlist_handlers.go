package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shelfbeat/shelfbeat-server/internal/domain"
	"github.com/shelfbeat/shelfbeat-server/internal/service"
)

func (s *Server) registerPlaylistRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createPlaylist",
		Method:      http.MethodPost,
		Path:        "/api/v1/playlists",
		Summary:     "Create playlist",
		Description: "Creates a playlist for a catalog book or a custom book",
		Tags:        []string{"Playlists"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreatePlaylist)

	huma.Register(s.api, huma.Operation{
		OperationID: "listMyPlaylists",
		Method:      http.MethodGet,
		Path:        "/api/v1/playlists",
		Summary:     "List my playlists",
		Description: "Returns the current user's playlists in creation order",
		Tags:        []string{"Playlists"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListMyPlaylists)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPlaylist",
		Method:      http.MethodGet,
		Path:        "/api/v1/playlists/{id}",
		Summary:     "Get playlist",
		Description: "Returns a playlist with its songs and tags",
		Tags:        []string{"Playlists"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetPlaylist)

	huma.Register(s.api, huma.Operation{
		OperationID: "updatePlaylist",
		Method:      http.MethodPatch,
		Path:        "/api/v1/playlists/{id}",
		Summary:     "Update playlist",
		Description: "Updates playlist metadata. Owner only; clones are immutable.",
		Tags:        []string{"Playlists"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdatePlaylist)

	huma.Register(s.api, huma.Operation{
		OperationID: "deletePlaylist",
		Method:      http.MethodDelete,
		Path:        "/api/v1/playlists/{id}",
		Summary:     "Delete playlist",
		Description: "Deletes a playlist. For a clone this removes it from the library.",
		Tags:        []string{"Playlists"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeletePlaylist)

	huma.Register(s.api, huma.Operation{
		OperationID: "addPlaylistSong",
		Method:      http.MethodPost,
		Path:        "/api/v1/playlists/{id}/songs",
		Summary:     "Add song",
		Description: "Appends a song to the playlist. Owner only; clones are immutable.",
		Tags:        []string{"Playlists"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddPlaylistSong)

	huma.Register(s.api, huma.Operation{
		OperationID: "removePlaylistSong",
		Method:      http.MethodDelete,
		Path:        "/api/v1/playlists/{id}/songs/{songID}",
		Summary:     "Remove song",
		Description: "Removes a song from the playlist. Removing an absent song is a no-op.",
		Tags:        []string{"Playlists"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRemovePlaylistSong)

	huma.Register(s.api, huma.Operation{
		OperationID: "listenPlaylist",
		Method:      http.MethodPost,
		Path:        "/api/v1/playlists/{id}/listen",
		Summary:     "Listen to recommendation",
		Description: "Returns the reader's personal clone of an author recommendation playlist, creating it on first call",
		Tags:        []string{"Playlists"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListenPlaylist)
}

// === DTOs ===

// PlaylistResponse contains playlist data in API responses.
type PlaylistResponse struct {
	ID               string    `json:"id" doc:"Playlist ID"`
	OwnerID          string    `json:"owner_id" doc:"Owner user ID"`
	Title            string    `json:"title" doc:"Playlist title"`
	Description      string    `json:"description,omitempty" doc:"Playlist description"`
	BookID           string    `json:"book_id,omitempty" doc:"Linked catalog book ID"`
	IsAuthorReco     bool      `json:"is_author_reco" doc:"True for author recommendation playlists"`
	SourcePlaylistID string    `json:"source_playlist_id,omitempty" doc:"Canonical playlist this clone was made from"`
	CustomBookTitle  string    `json:"custom_book_title,omitempty" doc:"Custom book title"`
	CustomBookAuthor string    `json:"custom_book_author,omitempty" doc:"Custom book author"`
	CustomBookYear   int       `json:"custom_book_year,omitempty" doc:"Custom book publication year"`
	CreatedAt        time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt        time.Time `json:"updated_at" doc:"Last update time"`
}

// SongResponse contains song data in API responses.
type SongResponse struct {
	ID         string `json:"id" doc:"Song ID"`
	SpotifyID  string `json:"spotify_id" doc:"Spotify track ID"`
	Title      string `json:"title" doc:"Track title"`
	Artist     string `json:"artist,omitempty" doc:"Artist names"`
	Album      string `json:"album,omitempty" doc:"Album name"`
	ArtworkURL string `json:"artwork_url,omitempty" doc:"Album artwork URL"`
	DurationMs int    `json:"duration_ms,omitempty" doc:"Track duration in milliseconds"`
}

// PlaylistDetailResponse is a playlist with its resolved songs and tags.
type PlaylistDetailResponse struct {
	Playlist PlaylistResponse `json:"playlist" doc:"Playlist metadata"`
	Songs    []SongResponse   `json:"songs" doc:"Songs in position order"`
	Tags     []TagResponse    `json:"tags" doc:"Tags ordered by slug"`
}

// LinkedPlaylistSpec links the playlist to a catalog book.
type LinkedPlaylistSpec struct {
	BookID       string `json:"book_id" validate:"required" doc:"Catalog book ID (must be in your library)"`
	IsAuthorReco bool   `json:"is_author_reco,omitempty" doc:"Mark as author recommendation (verified authors only)"`
}

// CustomPlaylistSpec describes a book not in the catalog.
type CustomPlaylistSpec struct {
	BookTitle  string `json:"book_title" validate:"required,max=300" doc:"Book title"`
	BookAuthor string `json:"book_author" validate:"required,max=300" doc:"Book author"`
	BookYear   int    `json:"book_year,omitempty" validate:"gte=0" doc:"Publication year"`
}

// CreatePlaylistRequest is the request body for creating a playlist.
// Exactly one of linked or custom must be set.
type CreatePlaylistRequest struct {
	Title       string              `json:"title" validate:"required,max=200" doc:"Playlist title"`
	Description string              `json:"description,omitempty" validate:"max=2000" doc:"Playlist description"`
	Linked      *LinkedPlaylistSpec `json:"linked,omitempty" doc:"Catalog book link"`
	Custom      *CustomPlaylistSpec `json:"custom,omitempty" doc:"Custom book metadata"`
}

// CreatePlaylistInput wraps the create request for Huma.
type CreatePlaylistInput struct {
	Authorization string `header:"Authorization"`
	Body          CreatePlaylistRequest
}

// PlaylistOutput wraps a playlist response for Huma.
type PlaylistOutput struct {
	Body PlaylistResponse
}

// PlaylistDetailOutput wraps a playlist detail response for Huma.
type PlaylistDetailOutput struct {
	Body PlaylistDetailResponse
}

// ListPlaylistsInput contains parameters for listing own playlists.
type ListPlaylistsInput struct {
	Authorization string `header:"Authorization"`
}

// ListPlaylistsResponse contains a list of playlists.
type ListPlaylistsResponse struct {
	Playlists []PlaylistResponse `json:"playlists" doc:"Playlists in creation order"`
}

// ListPlaylistsOutput wraps the list response for Huma.
type ListPlaylistsOutput struct {
	Body ListPlaylistsResponse
}

// GetPlaylistInput contains parameters for fetching a playlist.
type GetPlaylistInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Playlist ID"`
}

// UpdatePlaylistRequest is the request body for updating a playlist.
type UpdatePlaylistRequest struct {
	Title        *string `json:"title,omitempty" validate:"omitempty,min=1,max=200" doc:"New title"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=2000" doc:"New description"`
	IsAuthorReco *bool   `json:"is_author_reco,omitempty" doc:"Toggle author recommendation flag"`
}

// UpdatePlaylistInput wraps the update request for Huma.
type UpdatePlaylistInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Playlist ID"`
	Body          UpdatePlaylistRequest
}

// DeletePlaylistInput contains parameters for deleting a playlist.
type DeletePlaylistInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Playlist ID"`
}

// AddSongRequest is the request body for adding a song to a playlist.
type AddSongRequest struct {
	SpotifyID  string `json:"spotify_id" validate:"required,max=100" doc:"Spotify track ID"`
	Title      string `json:"title,omitempty" validate:"max=300" doc:"Track title (looked up if empty)"`
	Artist     string `json:"artist,omitempty" validate:"max=300" doc:"Artist names"`
	Album      string `json:"album,omitempty" validate:"max=300" doc:"Album name"`
	ArtworkURL string `json:"artwork_url,omitempty" validate:"omitempty,url" doc:"Album artwork URL"`
	DurationMs int    `json:"duration_ms,omitempty" validate:"gte=0" doc:"Track duration in milliseconds"`
}

// AddSongInput wraps the add-song request for Huma.
type AddSongInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Playlist ID"`
	Body          AddSongRequest
}

// RemoveSongInput contains parameters for removing a song.
type RemoveSongInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Playlist ID"`
	SongID        string `path:"songID" doc:"Song ID"`
}

// ListenInput contains parameters for listening to a recommendation.
type ListenInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Canonical recommendation playlist ID"`
}

func toPlaylistResponse(p *domain.Playlist) PlaylistResponse {
	return PlaylistResponse{
		ID:               p.ID,
		OwnerID:          p.OwnerID,
		Title:            p.Title,
		Description:      p.Description,
		BookID:           p.BookID,
		IsAuthorReco:     p.IsAuthorReco,
		SourcePlaylistID: p.SourcePlaylistID,
		CustomBookTitle:  p.CustomBookTitle,
		CustomBookAuthor: p.CustomBookAuthor,
		CustomBookYear:   p.CustomBookYear,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func toSongResponse(song *domain.Song) SongResponse {
	return SongResponse{
		ID:         song.ID,
		SpotifyID:  song.SpotifyID,
		Title:      song.Title,
		Artist:     song.Artist,
		Album:      song.Album,
		ArtworkURL: song.ArtworkURL,
		DurationMs: song.DurationMs,
	}
}

func toPlaylistDetailResponse(detail *service.PlaylistDetail) PlaylistDetailResponse {
	songs := make([]SongResponse, len(detail.Songs))
	for i, song := range detail.Songs {
		songs[i] = toSongResponse(song)
	}
	tags := make([]TagResponse, len(detail.Tags))
	for i, tag := range detail.Tags {
		tags[i] = toTagResponse(tag)
	}
	return PlaylistDetailResponse{
		Playlist: toPlaylistResponse(detail.Playlist),
		Songs:    songs,
		Tags:     tags,
	}
}

// === Handlers ===

func (s *Server) handleCreatePlaylist(ctx context.Context, input *CreatePlaylistInput) (*PlaylistOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	req := service.CreateRequest{
		Title:       input.Body.Title,
		Description: input.Body.Description,
	}
	if input.Body.Linked != nil {
		req.Linked = &service.LinkedSpec{
			BookID:       input.Body.Linked.BookID,
			IsAuthorReco: input.Body.Linked.IsAuthorReco,
		}
	}
	if input.Body.Custom != nil {
		req.Custom = &service.CustomSpec{
			BookTitle:  input.Body.Custom.BookTitle,
			BookAuthor: input.Body.Custom.BookAuthor,
			BookYear:   input.Body.Custom.BookYear,
		}
	}

	playlist, err := s.services.Playlist.Create(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	return &PlaylistOutput{Body: toPlaylistResponse(playlist)}, nil
}

func (s *Server) handleListMyPlaylists(ctx context.Context, input *ListPlaylistsInput) (*ListPlaylistsOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	playlists, err := s.services.Playlist.ListForOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]PlaylistResponse, len(playlists))
	for i, p := range playlists {
		resp[i] = toPlaylistResponse(p)
	}

	return &ListPlaylistsOutput{Body: ListPlaylistsResponse{Playlists: resp}}, nil
}

func (s *Server) handleGetPlaylist(ctx context.Context, input *GetPlaylistInput) (*PlaylistDetailOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	detail, err := s.services.Playlist.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &PlaylistDetailOutput{Body: toPlaylistDetailResponse(detail)}, nil
}

func (s *Server) handleUpdatePlaylist(ctx context.Context, input *UpdatePlaylistInput) (*PlaylistOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	playlist, err := s.services.Playlist.Update(ctx, input.ID, userID, service.UpdateRequest{
		Title:        input.Body.Title,
		Description:  input.Body.Description,
		IsAuthorReco: input.Body.IsAuthorReco,
	})
	if err != nil {
		return nil, err
	}

	return &PlaylistOutput{Body: toPlaylistResponse(playlist)}, nil
}

func (s *Server) handleDeletePlaylist(ctx context.Context, input *DeletePlaylistInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Playlist.Delete(ctx, input.ID, userID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Playlist deleted"}}, nil
}

func (s *Server) handleAddPlaylistSong(ctx context.Context, input *AddSongInput) (*PlaylistDetailOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	detail, err := s.services.Playlist.AddSong(ctx, input.ID, userID, service.SongInput{
		SpotifyID:  input.Body.SpotifyID,
		Title:      input.Body.Title,
		Artist:     input.Body.Artist,
		Album:      input.Body.Album,
		ArtworkURL: input.Body.ArtworkURL,
		DurationMs: input.Body.DurationMs,
	})
	if err != nil {
		return nil, err
	}

	return &PlaylistDetailOutput{Body: toPlaylistDetailResponse(detail)}, nil
}

func (s *Server) handleRemovePlaylistSong(ctx context.Context, input *RemoveSongInput) (*PlaylistDetailOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	detail, err := s.services.Playlist.RemoveSong(ctx, input.ID, userID, input.SongID)
	if err != nil {
		return nil, err
	}

	return &PlaylistDetailOutput{Body: toPlaylistDetailResponse(detail)}, nil
}

func (s *Server) handleListenPlaylist(ctx context.Context, input *ListenInput) (*PlaylistDetailOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	detail, err := s.services.Playlist.Listen(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &PlaylistDetailOutput{Body: toPlaylistDetailResponse(detail)}, nil
}
