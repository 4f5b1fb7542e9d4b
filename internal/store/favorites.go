package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"melodex/internal/models"
)

// ToggleFavorite flips the favorite relation between a user and a song and
// reports the resulting state (true = favorited). The delete and the
// conflict-tolerant insert are each a single statement, so concurrent toggles
// cannot double-insert.
func (s *Store) ToggleFavorite(ctx context.Context, userID, songID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM favorites
		WHERE user_id = $1 AND song_id = $2
	`, userID, songID)
	if err != nil {
		return false, fmt.Errorf("delete favorite: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if affected > 0 {
		return false, nil
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO favorites (id, song_id, user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, song_id) DO NOTHING
	`, uuid.NewString(), songID, userID); err != nil {
		return false, fmt.Errorf("insert favorite: %w", err)
	}

	return true, nil
}

// ListFavorites returns every favorite owned by userID with its song
// attached.
func (s *Store) ListFavorites(ctx context.Context, userID string) ([]*models.Favorite, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT f.id, f.song_id, f.user_id, s.id, s.song_url, s.thumbnail_url, s.artist, s.song_name, s.hex_code
		FROM favorites f
		JOIN songs s ON s.id = f.song_id
		WHERE f.user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	favorites := make([]*models.Favorite, 0)
	for rows.Next() {
		var fav models.Favorite
		var song models.Song
		if err := rows.Scan(&fav.ID, &fav.SongID, &fav.UserID,
			&song.ID, &song.SongURL, &song.ThumbnailURL, &song.Artist, &song.SongName, &song.HexCode); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		fav.Song = &song
		favorites = append(favorites, &fav)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorites: %w", err)
	}
	return favorites, nil
}
