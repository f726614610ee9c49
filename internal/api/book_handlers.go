package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shelfbeat/shelfbeat-server/internal/catalog/openlibrary"
	"github.com/shelfbeat/shelfbeat-server/internal/domain"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books",
		Summary:     "List books",
		Description: "Returns all catalog books ordered by title",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/search",
		Summary:     "Search catalog",
		Description: "Searches catalog books by title substring",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSearchBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchExternalBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/external/search",
		Summary:     "Search Open Library",
		Description: "Searches Open Library for books not yet in the catalog",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSearchExternalBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "importBook",
		Method:      http.MethodPost,
		Path:        "/api/v1/books/import",
		Summary:     "Import book",
		Description: "Imports an Open Library work into the catalog, or returns the existing row",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleImportBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "listPopularBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/popular",
		Summary:     "List popular books",
		Description: "Returns the books most often added to libraries",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListPopularBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}",
		Summary:     "Get book",
		Description: "Returns a catalog book by ID",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBookPlaylists",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}/playlists",
		Summary:     "Get book playlists",
		Description: "Returns playlists linked to the book, author recommendations first",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetBookPlaylists)
}

// === DTOs ===

// BookResponse contains catalog book data in API responses.
type BookResponse struct {
	ID         string    `json:"id" doc:"Book ID"`
	ExternalID string    `json:"external_id" doc:"Open Library work key"`
	Title      string    `json:"title" doc:"Book title"`
	Authors    []string  `json:"authors" doc:"Author names"`
	AuthorKeys []string  `json:"author_keys,omitempty" doc:"Open Library author keys"`
	Year       int       `json:"year,omitempty" doc:"First publication year"`
	CoverURL   string    `json:"cover_url,omitempty" doc:"Cover image URL"`
	CreatedAt  time.Time `json:"created_at" doc:"Import time"`
}

// ListBooksInput contains parameters for listing books.
type ListBooksInput struct {
	Authorization string `header:"Authorization"`
}

// ListBooksResponse contains a list of books.
type ListBooksResponse struct {
	Books []BookResponse `json:"books" doc:"Catalog books"`
}

// ListBooksOutput wraps the list response for Huma.
type ListBooksOutput struct {
	Body ListBooksResponse
}

// SearchBooksInput contains parameters for catalog search.
type SearchBooksInput struct {
	Authorization string `header:"Authorization"`
	Query         string `query:"q" doc:"Title substring to search for"`
}

// ExternalBookResponse contains an Open Library search result.
type ExternalBookResponse struct {
	WorkKey    string   `json:"work_key" doc:"Open Library work key"`
	Title      string   `json:"title" doc:"Book title"`
	Authors    []string `json:"authors" doc:"Author names"`
	AuthorKeys []string `json:"author_keys,omitempty" doc:"Open Library author keys"`
	Year       int      `json:"year,omitempty" doc:"First publication year"`
	CoverURL   string   `json:"cover_url,omitempty" doc:"Cover image URL"`
}

// SearchExternalBooksResponse contains Open Library search results.
type SearchExternalBooksResponse struct {
	Results []ExternalBookResponse `json:"results" doc:"Open Library search results"`
}

// SearchExternalBooksOutput wraps the external search response for Huma.
type SearchExternalBooksOutput struct {
	Body SearchExternalBooksResponse
}

// ImportBookRequest is the request body for importing a book.
type ImportBookRequest struct {
	WorkKey string `json:"work_key" validate:"required,max=100" doc:"Open Library work key"`
}

// ImportBookInput wraps the import request for Huma.
type ImportBookInput struct {
	Authorization string `header:"Authorization"`
	Body          ImportBookRequest
}

// BookOutput wraps a book response for Huma.
type BookOutput struct {
	Body BookResponse
}

// PopularBooksInput contains parameters for listing popular books.
type PopularBooksInput struct {
	Authorization string `header:"Authorization"`
	Limit         int    `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Maximum books to return"`
}

// GetBookInput contains parameters for fetching a book.
type GetBookInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Book ID"`
}

func toBookResponse(book *domain.Book) BookResponse {
	return BookResponse{
		ID:         book.ID,
		ExternalID: book.ExternalID,
		Title:      book.Title,
		Authors:    book.Authors,
		AuthorKeys: book.AuthorKeys,
		Year:       book.Year,
		CoverURL:   book.CoverURL,
		CreatedAt:  book.CreatedAt,
	}
}

func toBookResponses(books []*domain.Book) []BookResponse {
	resp := make([]BookResponse, len(books))
	for i, book := range books {
		resp[i] = toBookResponse(book)
	}
	return resp
}

func toExternalBookResponse(r openlibrary.BookResult) ExternalBookResponse {
	return ExternalBookResponse{
		WorkKey:    r.WorkKey,
		Title:      r.Title,
		Authors:    r.Authors,
		AuthorKeys: r.AuthorKeys,
		Year:       r.Year,
		CoverURL:   r.CoverURL,
	}
}

// === Handlers ===

func (s *Server) handleListBooks(ctx context.Context, input *ListBooksInput) (*ListBooksOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	books, err := s.services.Book.List(ctx)
	if err != nil {
		return nil, err
	}

	return &ListBooksOutput{Body: ListBooksResponse{Books: toBookResponses(books)}}, nil
}

func (s *Server) handleSearchBooks(ctx context.Context, input *SearchBooksInput) (*ListBooksOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	books, err := s.services.Book.Search(ctx, input.Query)
	if err != nil {
		return nil, err
	}

	return &ListBooksOutput{Body: ListBooksResponse{Books: toBookResponses(books)}}, nil
}

func (s *Server) handleSearchExternalBooks(ctx context.Context, input *SearchBooksInput) (*SearchExternalBooksOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	results, err := s.services.Book.SearchExternal(ctx, input.Query)
	if err != nil {
		return nil, err
	}

	resp := make([]ExternalBookResponse, len(results))
	for i, r := range results {
		resp[i] = toExternalBookResponse(r)
	}

	return &SearchExternalBooksOutput{Body: SearchExternalBooksResponse{Results: resp}}, nil
}

func (s *Server) handleImportBook(ctx context.Context, input *ImportBookInput) (*BookOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	book, err := s.services.Book.Import(ctx, input.Body.WorkKey)
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: toBookResponse(book)}, nil
}

func (s *Server) handleListPopularBooks(ctx context.Context, input *PopularBooksInput) (*ListBooksOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	books, err := s.services.Book.Popular(ctx, input.Limit)
	if err != nil {
		return nil, err
	}

	return &ListBooksOutput{Body: ListBooksResponse{Books: toBookResponses(books)}}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *GetBookInput) (*BookOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	book, err := s.services.Book.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: toBookResponse(book)}, nil
}

func (s *Server) handleGetBookPlaylists(ctx context.Context, input *GetBookInput) (*ListPlaylistsOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	playlists, err := s.services.Playlist.ListForBook(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	resp := make([]PlaylistResponse, len(playlists))
	for i, p := range playlists {
		resp[i] = toPlaylistResponse(p)
	}

	return &ListPlaylistsOutput{Body: ListPlaylistsResponse{Playlists: resp}}, nil
}
