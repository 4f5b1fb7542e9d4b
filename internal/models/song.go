package models

// Song is an uploaded track. The URLs point at the external media host; the
// hex code drives the client's accent color for the track.
type Song struct {
	ID           string `json:"id" db:"id"`
	SongURL      string `json:"song_url" db:"song_url"`
	ThumbnailURL string `json:"thumbnail_url" db:"thumbnail_url"`
	Artist       string `json:"artist" db:"artist"`
	SongName     string `json:"song_name" db:"song_name"`
	HexCode      string `json:"hex_code" db:"hex_code"`
}
