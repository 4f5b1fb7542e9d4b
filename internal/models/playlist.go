package models

import "time"

// PlaylistSong projects one song's membership in a playlist: the song fields
// plus its position and when it was added. Position is the decimal string the
// row was inserted with.
type PlaylistSong struct {
	ID           string    `json:"id" db:"id"`
	SongName     string    `json:"song_name" db:"song_name"`
	Artist       string    `json:"artist" db:"artist"`
	SongURL      string    `json:"song_url" db:"song_url"`
	ThumbnailURL string    `json:"thumbnail_url" db:"thumbnail_url"`
	HexCode      string    `json:"hex_code" db:"hex_code"`
	Position     string    `json:"position" db:"position"`
	AddedAt      time.Time `json:"added_at" db:"added_at"`
}

// Playlist captures a user-curated, ordered list of songs.
type Playlist struct {
	ID          string         `json:"id" db:"id"`
	Name        string         `json:"name" db:"name"`
	Description string         `json:"description,omitempty" db:"description"`
	UserID      string         `json:"user_id" db:"user_id"`
	IsPublic    bool           `json:"is_public" db:"is_public"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
	SongCount   int            `json:"song_count"`
	Songs       []PlaylistSong `json:"songs"`
}
