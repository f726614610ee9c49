package domain

import "time"

// Book is a catalog entry, keyed by an external Open Library work ID.
// Books are shared reference data: read-only to all users, imported by admins.
//
// AuthorKeys records the external identifiers of the book's real-world
// author(s); author-verification matches user keys against these.
type Book struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"external_id"`
	Title      string    `json:"title"`
	Authors    []string  `json:"authors"`
	AuthorKeys []string  `json:"author_keys"`
	Year       int       `json:"year,omitempty"`
	CoverURL   string    `json:"cover_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
