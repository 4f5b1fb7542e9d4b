package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"melodex/internal/models"
)

// ErrInvalidSong indicates the song metadata failed validation.
var ErrInvalidSong = errors.New("invalid song")

// ValidateSong checks the user-supplied metadata. Callers that do expensive
// work before the insert (media uploads) run it up front.
func ValidateSong(song models.Song) error {
	if song.SongName == "" {
		return fmt.Errorf("%w: song name is required", ErrInvalidSong)
	}
	if song.Artist == "" {
		return fmt.Errorf("%w: artist is required", ErrInvalidSong)
	}
	if len(song.HexCode) > 6 {
		return fmt.Errorf("%w: hex code must be at most 6 characters", ErrInvalidSong)
	}
	return nil
}

// CreateSong persists an uploaded song. The media URLs must already be
// durable; the row is never updated afterwards.
func (s *Store) CreateSong(ctx context.Context, song models.Song) (models.Song, error) {
	song.SongName = strings.TrimSpace(song.SongName)
	song.Artist = strings.TrimSpace(song.Artist)
	song.HexCode = strings.TrimSpace(song.HexCode)
	if err := ValidateSong(song); err != nil {
		return models.Song{}, err
	}

	if song.ID == "" {
		song.ID = uuid.NewString()
	}
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO songs (id, song_url, thumbnail_url, artist, song_name, hex_code)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, song.ID, song.SongURL, song.ThumbnailURL, song.Artist, song.SongName, song.HexCode); err != nil {
		return models.Song{}, fmt.Errorf("insert song: %w", err)
	}

	return song, nil
}

// ListSongs returns every song, unfiltered.
func (s *Store) ListSongs(ctx context.Context) ([]models.Song, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, song_url, thumbnail_url, artist, song_name, hex_code
		FROM songs
	`)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	defer rows.Close()

	return scanSongs(rows)
}

// SearchSongs returns songs whose name or artist contains the query,
// case-insensitively.
func (s *Store) SearchSongs(ctx context.Context, query string) ([]models.Song, error) {
	pattern := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, song_url, thumbnail_url, artist, song_name, hex_code
		FROM songs
		WHERE song_name ILIKE $1 OR artist ILIKE $1
	`, pattern)
	if err != nil {
		return nil, fmt.Errorf("search songs: %w", err)
	}
	defer rows.Close()

	return scanSongs(rows)
}

func scanSongs(rows *sql.Rows) ([]models.Song, error) {
	songs := make([]models.Song, 0)
	for rows.Next() {
		var song models.Song
		if err := rows.Scan(&song.ID, &song.SongURL, &song.ThumbnailURL, &song.Artist, &song.SongName, &song.HexCode); err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate songs: %w", err)
	}
	return songs, nil
}
