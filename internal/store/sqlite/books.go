package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/shelfbeat/shelfbeat-server/internal/domain"
	"github.com/shelfbeat/shelfbeat-server/internal/store"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `id, created_at, updated_at, external_id, title,
	authors, author_keys, year, cover_url`

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var b domain.Book

	var (
		createdAt  string
		updatedAt  string
		authors    string
		authorKeys string
	)

	err := scanner.Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
		&b.ExternalID,
		&b.Title,
		&authors,
		&authorKeys,
		&b.Year,
		&b.CoverURL,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	b.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	b.Authors, err = unmarshalStrings(authors)
	if err != nil {
		return nil, err
	}
	b.AuthorKeys, err = unmarshalStrings(authorKeys)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// CreateBook inserts a new book into the catalog.
// Returns store.ErrAlreadyExists if the external ID is already present.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	authors, err := marshalStrings(book.Authors)
	if err != nil {
		return err
	}
	authorKeys, err := marshalStrings(book.AuthorKeys)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO books (
			id, created_at, updated_at, external_id, title,
			authors, author_keys, year, cover_url
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		book.ID,
		formatTime(book.CreatedAt),
		formatTime(book.UpdatedAt),
		book.ExternalID,
		book.Title,
		authors,
		authorKeys,
		book.Year,
		book.CoverURL,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetBook retrieves a book by ID.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, id)

	b, err := scanBook(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// GetBookByExternalID retrieves a book by its external catalog identifier.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) GetBookByExternalID(ctx context.Context, externalID string) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE external_id = ?`, externalID)

	b, err := scanBook(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListBooks returns all books ordered by title.
func (s *Store) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books ORDER BY title, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBooks(rows)
}

// SearchBooksByTitle returns books whose title contains the query,
// case-insensitively, ordered by title.
func (s *Store) SearchBooksByTitle(ctx context.Context, query string) ([]*domain.Book, error) {
	pattern := "%" + escapeLike(query) + "%"
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books
		 WHERE title LIKE ? ESCAPE '\' COLLATE NOCASE
		 ORDER BY title, id`, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBooks(rows)
}

// ListPopularBooks returns books ordered by how many libraries contain them,
// most popular first, capped at limit.
func (s *Store) ListPopularBooks(ctx context.Context, limit int) ([]*domain.Book, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+bookColumns+` FROM books
		JOIN (
			SELECT book_id, COUNT(*) AS adds
			FROM user_library_books
			GROUP BY book_id
		) counts ON counts.book_id = books.id
		ORDER BY counts.adds DESC, books.title
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBooks(rows)
}

func collectBooks(rows *sql.Rows) ([]*domain.Book, error) {
	var books []*domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// escapeLike escapes LIKE metacharacters in user-supplied search terms.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
