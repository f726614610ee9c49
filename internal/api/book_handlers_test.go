package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAndGetBooks(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.signup(t, "reader@example.com")
	book := ts.seedBook(t, "OL1W", "The Long Road", "OL1A")
	ts.seedBook(t, "OL2W", "Midnight Harbor", "OL2A")

	resp := ts.api.Get("/api/v1/books", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var list testEnvelope[ListBooksResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	assert.Len(t, list.Data.Books, 2)

	resp = ts.api.Get("/api/v1/books/"+book.ID, "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var got testEnvelope[BookResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, "The Long Road", got.Data.Title)
	assert.Equal(t, []string{"OL1A"}, got.Data.AuthorKeys)

	resp = ts.api.Get("/api/v1/books/bok-missing", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestSearchBooks(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.signup(t, "reader@example.com")
	ts.seedBook(t, "OL1W", "The Long Road", "OL1A")
	ts.seedBook(t, "OL2W", "Midnight Harbor", "OL2A")

	resp := ts.api.Get("/api/v1/books/search?q=harbor", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var list testEnvelope[ListBooksResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	require.Len(t, list.Data.Books, 1)
	assert.Equal(t, "Midnight Harbor", list.Data.Books[0].Title)

	// An empty query is rejected.
	resp = ts.api.Get("/api/v1/books/search?q=", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestPopularBooks(t *testing.T) {
	ts := setupTestServer(t)
	firstToken, _ := ts.signup(t, "first@example.com")
	secondToken, _ := ts.signup(t, "second@example.com")
	popular := ts.seedBook(t, "OL1W", "The Long Road", "OL1A")
	other := ts.seedBook(t, "OL2W", "Midnight Harbor", "OL2A")

	for _, token := range []string{firstToken, secondToken} {
		resp := ts.api.Put("/api/v1/library/books/"+popular.ID, "Authorization: Bearer "+token)
		require.Equal(t, http.StatusOK, resp.Code)
	}
	resp := ts.api.Put("/api/v1/library/books/"+other.ID, "Authorization: Bearer "+firstToken)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/books/popular?limit=1", "Authorization: Bearer "+firstToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var list testEnvelope[ListBooksResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	require.Len(t, list.Data.Books, 1)
	assert.Equal(t, popular.ID, list.Data.Books[0].ID)
}

func TestBookPlaylists(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.signup(t, "reader@example.com")
	book := ts.seedBook(t, "OL1W", "The Long Road", "OL1A")
	playlist := ts.createLinkedPlaylist(t, token, book.ID, false)

	resp := ts.api.Get("/api/v1/books/"+book.ID+"/playlists", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var list testEnvelope[ListPlaylistsResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	require.Len(t, list.Data.Playlists, 1)
	assert.Equal(t, playlist.ID, list.Data.Playlists[0].ID)
}
