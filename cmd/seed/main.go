// Package main provides a tool to seed the database with demo data.
//
// It creates a reader, a verified author, and an admin, imports a few books,
// and builds playlists including an author recommendation with a reader clone.
// Useful for exercising the API against realistic data.
//
// Usage:
//
//	DATA_PATH=~/Shelfbeat/data go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shelfbeat/shelfbeat-server/internal/auth"
	"github.com/shelfbeat/shelfbeat-server/internal/domain"
	"github.com/shelfbeat/shelfbeat-server/internal/id"
	"github.com/shelfbeat/shelfbeat-server/internal/service"
	"github.com/shelfbeat/shelfbeat-server/internal/store"
	"github.com/shelfbeat/shelfbeat-server/internal/store/sqlite"
)

func main() {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/Shelfbeat/data")
	}

	dbPath := filepath.Join(dataPath, "shelfbeat.db")
	fmt.Printf("Opening database at: %s\n", dbPath)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.Open(dbPath, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	ctx := context.Background()

	playlists := service.NewPlaylistService(st, nil, logger)
	library := service.NewLibraryService(st, logger)

	reader := seedUser(ctx, st, "reader@shelfbeat.dev", "Riley Reader", domain.RoleReader)
	author := seedUser(ctx, st, "author@shelfbeat.dev", "Avery Author", domain.RoleAuthor, "OLSEED1A")
	seedUser(ctx, st, "admin@shelfbeat.dev", "Ada Admin", domain.RoleAdmin)

	books := []*domain.Book{
		seedBook(ctx, st, "OLSEED1W", "The Long Road", []string{"Avery Author"}, []string{"OLSEED1A"}, 2019),
		seedBook(ctx, st, "OLSEED2W", "Midnight Harbor", []string{"Casey Quill"}, []string{"OLSEED2A"}, 2021),
		seedBook(ctx, st, "OLSEED3W", "Paper Compass", []string{"Jordan Ink"}, []string{"OLSEED3A"}, 2015),
	}

	for _, book := range books {
		mustSeed("add book to author library", library.AddBook(ctx, author.ID, book.ID))
	}
	mustSeed("add book to reader library", library.AddBook(ctx, reader.ID, books[0].ID))

	reco, err := playlists.Create(ctx, author.ID, service.CreateRequest{
		Title:       "Songs for The Long Road",
		Description: "What I listened to while writing it.",
		Linked: &service.LinkedSpec{
			BookID:       books[0].ID,
			IsAuthorReco: true,
		},
	})
	mustSeed("create recommendation playlist", err)

	songs := []service.SongInput{
		{SpotifyID: "seed-track-1", Title: "Open Fields", Artist: "The Wanderers", DurationMs: 214000},
		{SpotifyID: "seed-track-2", Title: "Mile Markers", Artist: "Dust & Echo", DurationMs: 187000},
		{SpotifyID: "seed-track-3", Title: "Last Light", Artist: "Hollow Pines", DurationMs: 243000},
	}
	for _, song := range songs {
		_, err := playlists.AddSong(ctx, reco.ID, author.ID, song)
		mustSeed("add song to recommendation", err)
	}

	custom, err := playlists.Create(ctx, reader.ID, service.CreateRequest{
		Title: "Rainy Day Reads",
		Custom: &service.CustomSpec{
			BookTitle:  "Collected Short Stories",
			BookAuthor: "Various",
			BookYear:   1998,
		},
	})
	mustSeed("create custom playlist", err)
	_, err = playlists.AddSong(ctx, custom.ID, reader.ID, service.SongInput{
		SpotifyID: "seed-track-4", Title: "Window Rain", Artist: "Quiet Hours", DurationMs: 198000,
	})
	mustSeed("add song to custom playlist", err)

	clone, err := playlists.Listen(ctx, reader.ID, reco.ID)
	mustSeed("clone recommendation for reader", err)

	fmt.Printf("\nSeed complete:\n")
	fmt.Printf("  reader:  %s (reader@shelfbeat.dev / %s)\n", reader.ID, seedPassword)
	fmt.Printf("  author:  %s (author@shelfbeat.dev / %s)\n", author.ID, seedPassword)
	fmt.Printf("  books:   %d\n", len(books))
	fmt.Printf("  reco:    %s (%d songs)\n", reco.ID, len(songs))
	fmt.Printf("  clone:   %s\n", clone.Playlist.ID)
}

const seedPassword = "SeedPassword123!"

func mustSeed(what string, err error) {
	if err != nil {
		log.Fatalf("Failed to %s: %v", what, err)
	}
}

// seedUser creates a user directly in the store, reusing an existing account
// with the same email so the tool is safe to rerun.
func seedUser(ctx context.Context, st store.Store, email, displayName string, role domain.Role, authorKeys ...string) *domain.User {
	if existing, err := st.GetUserByEmail(ctx, email); err == nil {
		fmt.Printf("User %s already exists, reusing\n", email)
		return existing
	}

	hash, err := auth.HashPassword(seedPassword)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           id.MustGenerate("usr"),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
		Role:         role,
		AuthorKeys:   authorKeys,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := st.CreateUser(ctx, user); err != nil {
		log.Fatalf("Failed to create user %s: %v", email, err)
	}

	fmt.Printf("Created %s user %s\n", role, email)
	return user
}

func seedBook(ctx context.Context, st store.Store, externalID, title string, authors, authorKeys []string, year int) *domain.Book {
	if existing, err := st.GetBookByExternalID(ctx, externalID); err == nil {
		fmt.Printf("Book %q already exists, reusing\n", title)
		return existing
	}

	now := time.Now()
	book := &domain.Book{
		ID:         id.MustGenerate("bok"),
		ExternalID: externalID,
		Title:      title,
		Authors:    authors,
		AuthorKeys: authorKeys,
		Year:       year,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := st.CreateBook(ctx, book); err != nil {
		log.Fatalf("Failed to create book %q: %v", title, err)
	}

	fmt.Printf("Created book %q\n", title)
	return book
}
