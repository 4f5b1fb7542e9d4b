package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"melodex/internal/store"
)

type createPlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
}

type updatePlaylistRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"is_public"`
}

type addPlaylistSongRequest struct {
	SongID   string `json:"song_id"`
	Position *int   `json:"position"`
}

func (s *Server) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	var req createPlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "playlist name is required"})
		return
	}

	playlist, err := s.playlists.Create(r.Context(), userID, req.Name, req.Description, req.IsPublic)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, playlist)
}

func (s *Server) handleListPlaylists(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	playlists, err := s.playlists.List(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, playlists)
}

func (s *Server) handleListPublicPlaylists(w http.ResponseWriter, r *http.Request) {
	playlists, err := s.playlists.ListPublic(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, playlists)
}

func (s *Server) handleGetPlaylist(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	playlist, err := s.playlists.Get(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		writePlaylistError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, playlist)
}

func (s *Server) handleUpdatePlaylist(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	var req updatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	playlist, err := s.playlists.Update(r.Context(), r.PathValue("id"), userID, req.Name, req.Description, req.IsPublic)
	if err != nil {
		writePlaylistError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, playlist)
}

func (s *Server) handleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	if err := s.playlists.Delete(r.Context(), r.PathValue("id"), userID); err != nil {
		writePlaylistError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "playlist deleted successfully"})
}

func (s *Server) handleAddPlaylistSong(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	var req addPlaylistSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}
	if req.SongID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "song_id is required"})
		return
	}

	if err := s.playlists.AddSong(r.Context(), r.PathValue("id"), userID, req.SongID, req.Position); err != nil {
		switch {
		case errors.Is(err, store.ErrPlaylistNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "playlist not found"})
		case errors.Is(err, store.ErrSongAlreadyInPlaylist):
			// The source API reports duplicate membership as a 400, not a 409.
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "song already in playlist"})
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "song added to playlist successfully"})
}

func (s *Server) handleRemovePlaylistSong(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	if err := s.playlists.RemoveSong(r.Context(), r.PathValue("id"), userID, r.PathValue("songID")); err != nil {
		switch {
		case errors.Is(err, store.ErrPlaylistNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "playlist not found"})
		case errors.Is(err, store.ErrSongNotInPlaylist):
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "song not found in playlist"})
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "song removed from playlist successfully"})
}

func writePlaylistError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrPlaylistNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "playlist not found"})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}
