// Package openlibrary provides a client for the Open Library search API,
// used to import catalog books.
package openlibrary

// BookResult represents a book from an Open Library search.
type BookResult struct {
	WorkKey    string   `json:"work_key"` // e.g. "OL45804W"
	Title      string   `json:"title"`
	Authors    []string `json:"authors"`
	AuthorKeys []string `json:"author_keys"` // e.g. "OL23919A"
	Year       int      `json:"year"`
	CoverURL   string   `json:"cover_url"`
}

// searchResponse is the raw Open Library search response.
type searchResponse struct {
	NumFound int           `json:"numFound"`
	Docs     []searchDoc   `json:"docs"`
}

// searchDoc is a single document from an Open Library search.
type searchDoc struct {
	Key              string   `json:"key"` // "/works/OL45804W"
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	AuthorKey        []string `json:"author_key"`
	FirstPublishYear int      `json:"first_publish_year"`
	CoverID          int64    `json:"cover_i"`
}
