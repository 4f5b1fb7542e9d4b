package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"melodex/internal/models"
)

// UserService captures the account operations needed by the HTTP handlers.
type UserService interface {
	Signup(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
}

// SongService coordinates track-level operations.
type SongService interface {
	Upload(ctx context.Context, audio, thumbnail io.Reader, artist, songName, hexCode string) (models.Song, error)
	List(ctx context.Context) ([]models.Song, error)
	Search(ctx context.Context, query string) ([]models.Song, error)
}

// PlaylistService coordinates playlist-related operations.
type PlaylistService interface {
	Create(ctx context.Context, userID, name, description string, isPublic bool) (*models.Playlist, error)
	List(ctx context.Context, userID string) ([]*models.Playlist, error)
	ListPublic(ctx context.Context) ([]*models.Playlist, error)
	Get(ctx context.Context, id, userID string) (*models.Playlist, error)
	Update(ctx context.Context, id, userID string, name, description *string, isPublic *bool) (*models.Playlist, error)
	Delete(ctx context.Context, id, userID string) error
	AddSong(ctx context.Context, playlistID, userID, songID string, position *int) error
	RemoveSong(ctx context.Context, playlistID, userID, songID string) error
}

// FavoritesService coordinates favoriting workflows.
type FavoritesService interface {
	Toggle(ctx context.Context, userID, songID string) (bool, error)
	List(ctx context.Context, userID string) ([]*models.Favorite, error)
}

// TokenVerifier turns the x-auth-token header value into a trusted user
// identifier.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	users     UserService
	songs     SongService
	playlists PlaylistService
	favorites FavoritesService
	tokens    TokenVerifier
}

// New configures a Server with the given services.
func New(users UserService, songs SongService, playlists PlaylistService, favorites FavoritesService, tokens TokenVerifier) *Server {
	return &Server{
		users:     users,
		songs:     songs,
		playlists: playlists,
		favorites: favorites,
		tokens:    tokens,
	}
}

// Routes exposes the HTTP handlers.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("POST /auth/signup", s.handleSignup)
	mux.HandleFunc("POST /auth/login", s.handleLogin)

	// The mobile client calls the collection routes with a trailing slash;
	// register both spellings.
	mux.HandleFunc("POST /playlists", s.handleCreatePlaylist)
	mux.HandleFunc("POST /playlists/{$}", s.handleCreatePlaylist)
	mux.HandleFunc("GET /playlists", s.handleListPlaylists)
	mux.HandleFunc("GET /playlists/{$}", s.handleListPlaylists)
	mux.HandleFunc("GET /playlists/public", s.handleListPublicPlaylists)
	mux.HandleFunc("GET /playlists/{id}", s.handleGetPlaylist)
	mux.HandleFunc("PUT /playlists/{id}", s.handleUpdatePlaylist)
	mux.HandleFunc("DELETE /playlists/{id}", s.handleDeletePlaylist)
	mux.HandleFunc("POST /playlists/{id}/song", s.handleAddPlaylistSong)
	mux.HandleFunc("DELETE /playlists/{id}/song/{songID}", s.handleRemovePlaylistSong)

	mux.HandleFunc("POST /song/upload", s.handleUploadSong)
	mux.HandleFunc("GET /song/list", s.handleListSongs)
	mux.HandleFunc("GET /song/search", s.handleSearchSongs)
	mux.HandleFunc("POST /song/favorite", s.handleToggleFavorite)
	mux.HandleFunc("GET /song/list/favorite", s.handleListFavorites)

	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message any `json:"message"`
}

// authenticate resolves the requesting user from the x-auth-token header.
// On failure it writes the 401 itself and reports false.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) (string, bool) {
	token := r.Header.Get("x-auth-token")
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing auth token"})
		return "", false
	}
	userID, err := s.tokens.Verify(token)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid auth token"})
		return "", false
	}
	return userID, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
