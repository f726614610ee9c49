package sqlite

import (
	"context"
	"testing"
)

func TestLibrary_BookMembership(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedPlaylistFixtures(t, s)

	lib, err := s.GetLibrary(ctx, "usr-1")
	if err != nil {
		t.Fatalf("GetLibrary empty: %v", err)
	}
	if len(lib.BookIDs) != 0 || len(lib.PlaylistIDs) != 0 {
		t.Fatalf("expected empty library, got %+v", lib)
	}

	if err := s.AddBookToLibrary(ctx, "usr-1", "bok-1"); err != nil {
		t.Fatalf("AddBookToLibrary: %v", err)
	}
	// Re-adding is a no-op.
	if err := s.AddBookToLibrary(ctx, "usr-1", "bok-1"); err != nil {
		t.Fatalf("AddBookToLibrary duplicate: %v", err)
	}

	lib, err = s.GetLibrary(ctx, "usr-1")
	if err != nil {
		t.Fatalf("GetLibrary: %v", err)
	}
	if len(lib.BookIDs) != 1 || !lib.HasBook("bok-1") {
		t.Errorf("BookIDs: got %v, want [bok-1]", lib.BookIDs)
	}

	if err := s.RemoveBookFromLibrary(ctx, "usr-1", "bok-1"); err != nil {
		t.Fatalf("RemoveBookFromLibrary: %v", err)
	}
	// Removing again is a no-op.
	if err := s.RemoveBookFromLibrary(ctx, "usr-1", "bok-1"); err != nil {
		t.Fatalf("RemoveBookFromLibrary absent: %v", err)
	}

	lib, err = s.GetLibrary(ctx, "usr-1")
	if err != nil {
		t.Fatalf("GetLibrary after remove: %v", err)
	}
	if lib.HasBook("bok-1") {
		t.Error("expected book removed from library")
	}
}

func TestLibrary_PlaylistMembership(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedPlaylistFixtures(t, s)

	if err := s.CreatePlaylist(ctx, makeTestPlaylist("pls-1", "usr-1", "bok-1")); err != nil {
		t.Fatalf("CreatePlaylist: %v", err)
	}

	if err := s.AddPlaylistToLibrary(ctx, "usr-1", "pls-1"); err != nil {
		t.Fatalf("AddPlaylistToLibrary: %v", err)
	}
	if err := s.AddPlaylistToLibrary(ctx, "usr-1", "pls-1"); err != nil {
		t.Fatalf("AddPlaylistToLibrary duplicate: %v", err)
	}

	lib, err := s.GetLibrary(ctx, "usr-1")
	if err != nil {
		t.Fatalf("GetLibrary: %v", err)
	}
	if len(lib.PlaylistIDs) != 1 || !lib.HasPlaylist("pls-1") {
		t.Errorf("PlaylistIDs: got %v, want [pls-1]", lib.PlaylistIDs)
	}

	if err := s.RemovePlaylistFromLibrary(ctx, "usr-1", "pls-1"); err != nil {
		t.Fatalf("RemovePlaylistFromLibrary: %v", err)
	}
	lib, err = s.GetLibrary(ctx, "usr-1")
	if err != nil {
		t.Fatalf("GetLibrary after remove: %v", err)
	}
	if lib.HasPlaylist("pls-1") {
		t.Error("expected playlist removed from library")
	}
}

func TestLibrary_DeletedPlaylistDropsOut(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedPlaylistFixtures(t, s)

	if err := s.CreatePlaylist(ctx, makeTestPlaylist("pls-1", "usr-1", "bok-1")); err != nil {
		t.Fatalf("CreatePlaylist: %v", err)
	}
	if err := s.AddPlaylistToLibrary(ctx, "usr-1", "pls-1"); err != nil {
		t.Fatalf("AddPlaylistToLibrary: %v", err)
	}

	if err := s.DeletePlaylist(ctx, "pls-1"); err != nil {
		t.Fatalf("DeletePlaylist: %v", err)
	}

	lib, err := s.GetLibrary(ctx, "usr-1")
	if err != nil {
		t.Fatalf("GetLibrary: %v", err)
	}
	if lib.HasPlaylist("pls-1") {
		t.Error("expected deleted playlist gone from library")
	}
}
