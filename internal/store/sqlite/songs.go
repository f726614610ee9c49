package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/shelfbeat/shelfbeat-server/internal/domain"
	"github.com/shelfbeat/shelfbeat-server/internal/store"
)

// songColumns is the ordered list of columns selected in song queries.
// Must match the scan order in scanSong.
const songColumns = `id, created_at, spotify_id, title, artist, album,
	artwork_url, duration_ms`

// scanSong scans a sql.Row (or sql.Rows via its Scan method) into a domain.Song.
func scanSong(scanner interface{ Scan(dest ...any) error }) (*domain.Song, error) {
	var song domain.Song

	var createdAt string

	err := scanner.Scan(
		&song.ID,
		&createdAt,
		&song.SpotifyID,
		&song.Title,
		&song.Artist,
		&song.Album,
		&song.ArtworkURL,
		&song.DurationMs,
	)
	if err != nil {
		return nil, err
	}

	song.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &song, nil
}

// UpsertSong inserts the song or, if a row with the same Spotify track ID
// already exists, returns that row instead. Existing metadata wins; callers
// get the canonical stored song either way.
func (s *Store) UpsertSong(ctx context.Context, song *domain.Song) (*domain.Song, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO songs (
			id, created_at, spotify_id, title, artist, album,
			artwork_url, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		song.ID,
		formatTime(song.CreatedAt),
		song.SpotifyID,
		song.Title,
		song.Artist,
		song.Album,
		song.ArtworkURL,
		song.DurationMs,
	)
	if err != nil && !strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+songColumns+` FROM songs WHERE spotify_id = ?`, song.SpotifyID)
	return scanSong(row)
}

// GetSong retrieves a song by ID.
// Returns store.ErrNotFound if the song does not exist.
func (s *Store) GetSong(ctx context.Context, id string) (*domain.Song, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+songColumns+` FROM songs WHERE id = ?`, id)

	song, err := scanSong(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return song, nil
}
