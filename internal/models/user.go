package models

// User is an account that owns playlists and favorites. The password hash is
// never serialized.
type User struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Email    string `json:"email" db:"email"`
	Password []byte `json:"-" db:"password"`
}
