package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shelfbeat/shelfbeat-server/internal/catalog/openlibrary"
	"github.com/shelfbeat/shelfbeat-server/internal/domain"
	domainerrors "github.com/shelfbeat/shelfbeat-server/internal/errors"
	"github.com/shelfbeat/shelfbeat-server/internal/id"
	"github.com/shelfbeat/shelfbeat-server/internal/store"
)

// BookCatalog looks up books in the external catalog.
type BookCatalog interface {
	SearchBooks(ctx context.Context, query string) ([]openlibrary.BookResult, error)
	GetWork(ctx context.Context, workKey string) (*openlibrary.BookResult, error)
}

// BookService maintains the shared book catalog. Books are imported from
// Open Library on first reference and shared read-only by all users.
type BookService struct {
	store   store.Store
	catalog BookCatalog
	logger  *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(store store.Store, catalog BookCatalog, logger *slog.Logger) *BookService {
	return &BookService{
		store:   store,
		catalog: catalog,
		logger:  logger,
	}
}

// Get returns a catalog book by ID.
func (s *BookService) Get(ctx context.Context, bookID string) (*domain.Book, error) {
	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("book not found")
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return book, nil
}

// List returns all catalog books ordered by title.
func (s *BookService) List(ctx context.Context) ([]*domain.Book, error) {
	books, err := s.store.ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// Search finds catalog books by title substring.
func (s *BookService) Search(ctx context.Context, query string) ([]*domain.Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domainerrors.Validation("query is required")
	}

	books, err := s.store.SearchBooksByTitle(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return books, nil
}

// SearchExternal searches Open Library for books not yet in the catalog.
func (s *BookService) SearchExternal(ctx context.Context, query string) ([]openlibrary.BookResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domainerrors.Validation("query is required")
	}
	if s.catalog == nil {
		return nil, domainerrors.Internal("external catalog is not configured")
	}

	results, err := s.catalog.SearchBooks(ctx, query)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "external catalog search failed")
	}
	return results, nil
}

// Popular returns the books most often added to libraries.
func (s *BookService) Popular(ctx context.Context, limit int) ([]*domain.Book, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	books, err := s.store.ListPopularBooks(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list popular books: %w", err)
	}
	return books, nil
}

// Import brings an Open Library work into the catalog, or returns the
// existing row if it was imported before. Two concurrent imports of the same
// work converge on one row via the external_id uniqueness constraint.
func (s *BookService) Import(ctx context.Context, workKey string) (*domain.Book, error) {
	workKey = strings.TrimSpace(workKey)
	if workKey == "" {
		return nil, domainerrors.Validation("work key is required")
	}

	existing, err := s.store.GetBookByExternalID(ctx, workKey)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("lookup book: %w", err)
	}

	if s.catalog == nil {
		return nil, domainerrors.Internal("external catalog is not configured")
	}
	work, err := s.catalog.GetWork(ctx, workKey)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeNotFound, "work not found in external catalog")
	}

	bookID, err := id.Generate("bok")
	if err != nil {
		return nil, fmt.Errorf("generate book ID: %w", err)
	}

	now := time.Now()
	book := &domain.Book{
		ID:         bookID,
		ExternalID: work.WorkKey,
		Title:      work.Title,
		Authors:    work.Authors,
		AuthorKeys: work.AuthorKeys,
		Year:       work.Year,
		CoverURL:   work.CoverURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.CreateBook(ctx, book); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost an import race; the other row wins.
			return s.store.GetBookByExternalID(ctx, workKey)
		}
		return nil, fmt.Errorf("create book: %w", err)
	}

	s.logger.Info("book imported",
		"book_id", bookID,
		"external_id", workKey,
		"title", book.Title,
	)

	return book, nil
}
