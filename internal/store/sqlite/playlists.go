package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/shelfbeat/shelfbeat-server/internal/domain"
	"github.com/shelfbeat/shelfbeat-server/internal/store"
)

// playlistColumns is the ordered list of columns selected in playlist queries.
// Must match the scan order in scanPlaylist.
const playlistColumns = `id, created_at, updated_at, owner_id, book_id, title,
	description, is_author_reco, source_playlist_id,
	custom_book_title, custom_book_author, custom_book_year`

// scanPlaylist scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Playlist.
func scanPlaylist(scanner interface{ Scan(dest ...any) error }) (*domain.Playlist, error) {
	var p domain.Playlist

	var (
		createdAt    string
		updatedAt    string
		bookID       sql.NullString
		isAuthorReco int
		sourceID     sql.NullString
	)

	err := scanner.Scan(
		&p.ID,
		&createdAt,
		&updatedAt,
		&p.OwnerID,
		&bookID,
		&p.Title,
		&p.Description,
		&isAuthorReco,
		&sourceID,
		&p.CustomBookTitle,
		&p.CustomBookAuthor,
		&p.CustomBookYear,
	)
	if err != nil {
		return nil, err
	}

	p.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	p.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	if bookID.Valid {
		p.BookID = bookID.String
	}
	p.IsAuthorReco = isAuthorReco != 0
	if sourceID.Valid {
		p.SourcePlaylistID = sourceID.String
	}

	return &p, nil
}

// CreatePlaylist inserts a new playlist.
func (s *Store) CreatePlaylist(ctx context.Context, playlist *domain.Playlist) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO playlists (`+insertPlaylistColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		insertPlaylistArgs(playlist)...,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

const insertPlaylistColumns = `id, created_at, updated_at, owner_id, book_id, title,
			description, is_author_reco, source_playlist_id,
			custom_book_title, custom_book_author, custom_book_year`

func insertPlaylistArgs(p *domain.Playlist) []any {
	return []any{
		p.ID,
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
		p.OwnerID,
		nullString(p.BookID),
		p.Title,
		p.Description,
		boolToInt(p.IsAuthorReco),
		nullString(p.SourcePlaylistID),
		p.CustomBookTitle,
		p.CustomBookAuthor,
		p.CustomBookYear,
	}
}

// GetPlaylist retrieves a playlist by ID.
// Returns store.ErrNotFound if the playlist does not exist.
func (s *Store) GetPlaylist(ctx context.Context, id string) (*domain.Playlist, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+playlistColumns+` FROM playlists WHERE id = ?`, id)

	p, err := scanPlaylist(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListPlaylistsByOwner returns the owner's playlists in creation order.
func (s *Store) ListPlaylistsByOwner(ctx context.Context, ownerID string) ([]*domain.Playlist, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+playlistColumns+` FROM playlists
		 WHERE owner_id = ? ORDER BY created_at, id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPlaylists(rows)
}

// ListPlaylistsByBook returns the playlists linked to a catalog book,
// author recommendations first.
func (s *Store) ListPlaylistsByBook(ctx context.Context, bookID string) ([]*domain.Playlist, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+playlistColumns+` FROM playlists
		 WHERE book_id = ? ORDER BY is_author_reco DESC, created_at, id`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPlaylists(rows)
}

// UpdatePlaylist updates a playlist row.
// Returns store.ErrNotFound if the playlist does not exist.
func (s *Store) UpdatePlaylist(ctx context.Context, playlist *domain.Playlist) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE playlists SET
			updated_at = ?,
			book_id = ?,
			title = ?,
			description = ?,
			is_author_reco = ?,
			custom_book_title = ?,
			custom_book_author = ?,
			custom_book_year = ?
		WHERE id = ?`,
		formatTime(playlist.UpdatedAt),
		nullString(playlist.BookID),
		playlist.Title,
		playlist.Description,
		boolToInt(playlist.IsAuthorReco),
		playlist.CustomBookTitle,
		playlist.CustomBookAuthor,
		playlist.CustomBookYear,
		playlist.ID,
	)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeletePlaylist removes a playlist. Song memberships, tag links, and library
// entries cascade; clones keep their copied songs and their dangling source
// reference.
func (s *Store) DeletePlaylist(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM playlists WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// GetCloneBySource returns the owner's clone of the given canonical playlist.
// Returns store.ErrNotFound if the owner has no clone of it.
func (s *Store) GetCloneBySource(ctx context.Context, ownerID, sourcePlaylistID string) (*domain.Playlist, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+playlistColumns+` FROM playlists
		 WHERE owner_id = ? AND source_playlist_id = ?`, ownerID, sourcePlaylistID)

	p, err := scanPlaylist(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ClonePlaylist inserts the clone, snapshots the source's ordered song list,
// and attaches the clone to the owner's library in one transaction. The
// unique index on (owner_id, source_playlist_id) makes concurrent clones of
// the same source race cleanly: the loser gets store.ErrAlreadyExists and
// can re-read the winner via GetCloneBySource.
func (s *Store) ClonePlaylist(ctx context.Context, clone *domain.Playlist) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO playlists (`+insertPlaylistColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		insertPlaylistArgs(clone)...,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}

	// Snapshot the source's song list. Later edits to the source do not
	// propagate to the clone.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO playlist_songs (playlist_id, song_id, position, created_at)
		SELECT ?, song_id, position, ?
		FROM playlist_songs WHERE playlist_id = ?`,
		clone.ID,
		formatTime(clone.CreatedAt),
		clone.SourcePlaylistID,
	)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO user_library_playlists (user_id, playlist_id, created_at)
		VALUES (?, ?, ?)`,
		clone.OwnerID,
		clone.ID,
		formatTime(clone.CreatedAt),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// AddSongToPlaylist appends the song after the playlist's current last
// position. Adding a song already in the playlist is a no-op.
func (s *Store) AddSongToPlaylist(ctx context.Context, playlistID, songID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO playlist_songs (playlist_id, song_id, position, created_at)
		SELECT ?, ?, COALESCE(MAX(position), 0) + 1, ?
		FROM playlist_songs WHERE playlist_id = ?`,
		playlistID,
		songID,
		formatTime(time.Now()),
		playlistID,
	)
	return err
}

// RemoveSongFromPlaylist removes the membership. Removing an absent song is
// a no-op. Positions of remaining songs are left as-is; order is preserved.
func (s *Store) RemoveSongFromPlaylist(ctx context.Context, playlistID, songID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM playlist_songs WHERE playlist_id = ? AND song_id = ?`,
		playlistID, songID)
	return err
}

// ListPlaylistSongs returns the playlist's songs in position order.
func (s *Store) ListPlaylistSongs(ctx context.Context, playlistID string) ([]*domain.Song, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT songs.id, songs.created_at, songs.spotify_id, songs.title,
			songs.artist, songs.album, songs.artwork_url, songs.duration_ms
		FROM songs
		JOIN playlist_songs ON playlist_songs.song_id = songs.id
		WHERE playlist_songs.playlist_id = ?
		ORDER BY playlist_songs.position`, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var songs []*domain.Song
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}

func collectPlaylists(rows *sql.Rows) ([]*domain.Playlist, error) {
	var playlists []*domain.Playlist
	for rows.Next() {
		p, err := scanPlaylist(rows)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, p)
	}
	return playlists, rows.Err()
}
