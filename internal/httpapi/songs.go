package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"melodex/internal/media"
	"melodex/internal/store"
)

// maxUploadBytes caps the multipart form kept in memory during an upload.
const maxUploadBytes = 32 << 20

type favoriteSongRequest struct {
	SongID string `json:"song_id"`
}

func (s *Server) handleUploadSong(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authenticate(w, r); !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
		return
	}

	audio, _, err := r.FormFile("song")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "song file is required"})
		return
	}
	defer audio.Close()

	thumbnail, _, err := r.FormFile("thumbnail")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "thumbnail file is required"})
		return
	}
	defer thumbnail.Close()

	song, err := s.songs.Upload(r.Context(), audio, thumbnail,
		r.FormValue("artist"), r.FormValue("song_name"), r.FormValue("hex_code"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidSong):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		case errors.Is(err, media.ErrUploadFailed):
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return
	}

	writeJSON(w, http.StatusCreated, song)
}

func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authenticate(w, r); !ok {
		return
	}

	songs, err := s.songs.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, songs)
}

func (s *Server) handleSearchSongs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query parameter is required"})
		return
	}

	songs, err := s.songs.Search(r.Context(), query)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, songs)
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	var req favoriteSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}
	if req.SongID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "song_id is required"})
		return
	}

	favorited, err := s.favorites.Toggle(r.Context(), userID, req.SongID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	// The client reads the resulting state out of the message field.
	writeJSON(w, http.StatusOK, messageResponse{Message: favorited})
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	favorites, err := s.favorites.List(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, favorites)
}
