package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerLibraryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getLibrary",
		Method:      http.MethodGet,
		Path:        "/api/v1/library",
		Summary:     "Get library",
		Description: "Returns the current user's library with books and playlists resolved",
		Tags:        []string{"Library"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetLibrary)

	huma.Register(s.api, huma.Operation{
		OperationID: "addLibraryBook",
		Method:      http.MethodPut,
		Path:        "/api/v1/library/books/{id}",
		Summary:     "Add book to library",
		Description: "Adds a catalog book to the library. Idempotent.",
		Tags:        []string{"Library"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddLibraryBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeLibraryBook",
		Method:      http.MethodDelete,
		Path:        "/api/v1/library/books/{id}",
		Summary:     "Remove book from library",
		Description: "Removes a book from the library. Removing a non-member book is a no-op.",
		Tags:        []string{"Library"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRemoveLibraryBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "addLibraryPlaylist",
		Method:      http.MethodPut,
		Path:        "/api/v1/library/playlists/{id}",
		Summary:     "Add playlist to library",
		Description: "Adds a playlist to the library. Idempotent.",
		Tags:        []string{"Library"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddLibraryPlaylist)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeLibraryPlaylist",
		Method:      http.MethodDelete,
		Path:        "/api/v1/library/playlists/{id}",
		Summary:     "Remove playlist from library",
		Description: "Removes a playlist from the library. Idempotent.",
		Tags:        []string{"Library"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRemoveLibraryPlaylist)
}

// === DTOs ===

// LibraryResponse contains the user's library in API responses.
type LibraryResponse struct {
	Books     []BookResponse     `json:"books" doc:"Books in the library"`
	Playlists []PlaylistResponse `json:"playlists" doc:"Playlists in the library"`
}

// GetLibraryInput contains parameters for fetching the library.
type GetLibraryInput struct {
	Authorization string `header:"Authorization"`
}

// LibraryOutput wraps the library response for Huma.
type LibraryOutput struct {
	Body LibraryResponse
}

// LibraryItemInput identifies a book or playlist for library membership.
type LibraryItemInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Book or playlist ID"`
}

// === Handlers ===

func (s *Server) handleGetLibrary(ctx context.Context, input *GetLibraryInput) (*LibraryOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	detail, err := s.services.Library.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	playlists := make([]PlaylistResponse, len(detail.Playlists))
	for i, p := range detail.Playlists {
		playlists[i] = toPlaylistResponse(p)
	}

	return &LibraryOutput{
		Body: LibraryResponse{
			Books:     toBookResponses(detail.Books),
			Playlists: playlists,
		},
	}, nil
}

func (s *Server) handleAddLibraryBook(ctx context.Context, input *LibraryItemInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Library.AddBook(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Book added to library"}}, nil
}

func (s *Server) handleRemoveLibraryBook(ctx context.Context, input *LibraryItemInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Library.RemoveBook(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Book removed from library"}}, nil
}

func (s *Server) handleAddLibraryPlaylist(ctx context.Context, input *LibraryItemInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Library.AddPlaylist(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Playlist added to library"}}, nil
}

func (s *Server) handleRemoveLibraryPlaylist(ctx context.Context, input *LibraryItemInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Library.RemovePlaylist(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Playlist removed from library"}}, nil
}
