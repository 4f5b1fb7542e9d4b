package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"melodex/internal/models"
)

var (
	// ErrPlaylistNotFound covers both a missing playlist and a playlist owned
	// by someone else; the two are deliberately indistinguishable.
	ErrPlaylistNotFound = errors.New("playlist not found")
	// ErrSongAlreadyInPlaylist signals a duplicate membership on add.
	ErrSongAlreadyInPlaylist = errors.New("song already in playlist")
	// ErrSongNotInPlaylist signals a removal of a song the playlist does not hold.
	ErrSongNotInPlaylist = errors.New("song not found in playlist")
)

// CreatePlaylist persists a new playlist owned by userID and returns it with
// an empty song list.
func (s *Store) CreatePlaylist(ctx context.Context, userID, name, description string, isPublic bool) (*models.Playlist, error) {
	if name == "" {
		return nil, fmt.Errorf("playlist name is required")
	}

	now := time.Now().UTC()
	playlist := &models.Playlist{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		UserID:      userID,
		IsPublic:    isPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
		Songs:       []models.PlaylistSong{},
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO playlists (id, name, description, user_id, is_public, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
	`, playlist.ID, playlist.Name, nullIfEmpty(playlist.Description), playlist.UserID, playlist.IsPublic, now); err != nil {
		return nil, fmt.Errorf("insert playlist: %w", err)
	}

	return playlist, nil
}

// ListPlaylists returns every playlist owned by userID, each hydrated with
// its ordered songs.
func (s *Store) ListPlaylists(ctx context.Context, userID string) ([]*models.Playlist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, user_id, is_public, created_at, updated_at
		FROM playlists
		WHERE user_id = $1
		ORDER BY created_at DESC, id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	return s.hydratePlaylists(ctx, rows)
}

// ListPublicPlaylists returns every playlist flagged public, regardless of
// owner.
func (s *Store) ListPublicPlaylists(ctx context.Context) ([]*models.Playlist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, user_id, is_public, created_at, updated_at
		FROM playlists
		WHERE is_public = TRUE
		ORDER BY created_at DESC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list public playlists: %w", err)
	}
	defer rows.Close()

	return s.hydratePlaylists(ctx, rows)
}

// GetPlaylist returns a single playlist, hydrated. The lookup filters on both
// id and owner in one query so a wrong id and a wrong owner look the same.
func (s *Store) GetPlaylist(ctx context.Context, id, userID string) (*models.Playlist, error) {
	var playlist models.Playlist
	var description sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, user_id, is_public, created_at, updated_at
		FROM playlists
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&playlist.ID, &playlist.Name, &description, &playlist.UserID,
		&playlist.IsPublic, &playlist.CreatedAt, &playlist.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlaylistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get playlist: %w", err)
	}
	playlist.Description = description.String

	songs, err := s.listPlaylistSongs(ctx, playlist.ID)
	if err != nil {
		return nil, err
	}
	playlist.Songs = songs
	playlist.SongCount = len(songs)
	return &playlist, nil
}

// UpdatePlaylist applies a partial update: nil fields keep their stored
// values, non-nil fields overwrite (an explicit empty string overwrites).
// updated_at is refreshed on every successful call.
func (s *Store) UpdatePlaylist(ctx context.Context, id, userID string, name, description *string, isPublic *bool) (*models.Playlist, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE playlists
		SET name = COALESCE($1, name),
		    description = COALESCE($2, description),
		    is_public = COALESCE($3, is_public),
		    updated_at = $4
		WHERE id = $5 AND user_id = $6
	`, name, description, isPublic, time.Now().UTC(), id, userID)
	if err != nil {
		return nil, fmt.Errorf("update playlist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrPlaylistNotFound
	}

	return s.GetPlaylist(ctx, id, userID)
}

// DeletePlaylist removes a playlist; playlist_songs rows go with it via the
// cascade.
func (s *Store) DeletePlaylist(ctx context.Context, id, userID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

// AddSongToPlaylist inserts a membership row. When position is nil the song
// is appended: the insert itself computes count+1, so concurrent appends
// cannot read a stale count. Duplicate membership is rejected by the unique
// constraint rather than a pre-check. An explicit position is stored verbatim
// with no range or uniqueness validation.
func (s *Store) AddSongToPlaylist(ctx context.Context, playlistID, userID, songID string, position *int) error {
	if err := s.checkPlaylistOwnership(ctx, playlistID, userID); err != nil {
		return err
	}

	var explicit interface{}
	if position != nil {
		explicit = strconv.Itoa(*position)
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO playlist_songs (id, playlist_id, song_id, position, added_at)
		VALUES ($1, $2, $3, COALESCE($4, (SELECT (COUNT(*) + 1)::text FROM playlist_songs WHERE playlist_id = $2)), $5)
	`, uuid.NewString(), playlistID, songID, explicit, time.Now().UTC()); err != nil {
		if isUniqueViolation(err) {
			return ErrSongAlreadyInPlaylist
		}
		return fmt.Errorf("insert playlist song: %w", err)
	}

	return nil
}

// RemoveSongFromPlaylist deletes a single membership row. Remaining rows keep
// their positions; the gap is left in place.
func (s *Store) RemoveSongFromPlaylist(ctx context.Context, playlistID, userID, songID string) error {
	if err := s.checkPlaylistOwnership(ctx, playlistID, userID); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM playlist_songs
		WHERE playlist_id = $1 AND song_id = $2
	`, playlistID, songID)
	if err != nil {
		return fmt.Errorf("delete playlist song: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrSongNotInPlaylist
	}
	return nil
}

func (s *Store) checkPlaylistOwnership(ctx context.Context, playlistID, userID string) error {
	var exists int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1
		FROM playlists
		WHERE id = $1 AND user_id = $2
	`, playlistID, userID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrPlaylistNotFound
	}
	if err != nil {
		return fmt.Errorf("check playlist ownership: %w", err)
	}
	return nil
}

func (s *Store) hydratePlaylists(ctx context.Context, rows *sql.Rows) ([]*models.Playlist, error) {
	playlists := make([]*models.Playlist, 0)
	for rows.Next() {
		var playlist models.Playlist
		var description sql.NullString
		if err := rows.Scan(&playlist.ID, &playlist.Name, &description, &playlist.UserID,
			&playlist.IsPublic, &playlist.CreatedAt, &playlist.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		playlist.Description = description.String
		playlists = append(playlists, &playlist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}

	for _, playlist := range playlists {
		songs, err := s.listPlaylistSongs(ctx, playlist.ID)
		if err != nil {
			return nil, err
		}
		playlist.Songs = songs
		playlist.SongCount = len(songs)
	}
	return playlists, nil
}

// listPlaylistSongs loads the ordered song projection for one playlist.
// Positions are stored as decimal strings; the numeric cast orders them by
// value rather than lexicographically, and tolerates any verbatim-stored
// position (explicit positions are not range-validated on insert).
func (s *Store) listPlaylistSongs(ctx context.Context, playlistID string) ([]models.PlaylistSong, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.song_name, s.artist, s.song_url, s.thumbnail_url, s.hex_code, ps.position, ps.added_at
		FROM playlist_songs ps
		JOIN songs s ON s.id = ps.song_id
		WHERE ps.playlist_id = $1
		ORDER BY ps.position::numeric ASC, ps.added_at ASC
	`, playlistID)
	if err != nil {
		return nil, fmt.Errorf("list playlist songs: %w", err)
	}
	defer rows.Close()

	songs := make([]models.PlaylistSong, 0)
	for rows.Next() {
		var song models.PlaylistSong
		if err := rows.Scan(&song.ID, &song.SongName, &song.Artist, &song.SongURL,
			&song.ThumbnailURL, &song.HexCode, &song.Position, &song.AddedAt); err != nil {
			return nil, fmt.Errorf("scan playlist song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlist songs: %w", err)
	}
	return songs, nil
}
