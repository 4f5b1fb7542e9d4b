package models

// Favorite records that a user has favorited a song. Existence of the row is
// the whole state; toggling deletes or recreates it.
type Favorite struct {
	ID     string `json:"id" db:"id"`
	SongID string `json:"song_id" db:"song_id"`
	UserID string `json:"user_id" db:"user_id"`

	// Populated via JOIN when listing favorites.
	Song *Song `json:"song,omitempty"`
}
