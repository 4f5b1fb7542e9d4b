package playlists

import (
	"context"

	"melodex/internal/models"
)

// Store captures the persistence needs for playlist workflows. Every lookup
// that takes a userID filters on it together with the playlist id; ownership
// misses and missing rows are the same error.
type Store interface {
	CreatePlaylist(ctx context.Context, userID, name, description string, isPublic bool) (*models.Playlist, error)
	ListPlaylists(ctx context.Context, userID string) ([]*models.Playlist, error)
	ListPublicPlaylists(ctx context.Context) ([]*models.Playlist, error)
	GetPlaylist(ctx context.Context, id, userID string) (*models.Playlist, error)
	UpdatePlaylist(ctx context.Context, id, userID string, name, description *string, isPublic *bool) (*models.Playlist, error)
	DeletePlaylist(ctx context.Context, id, userID string) error
	AddSongToPlaylist(ctx context.Context, playlistID, userID, songID string, position *int) error
	RemoveSongFromPlaylist(ctx context.Context, playlistID, userID, songID string) error
}

// Service coordinates playlist-related operations.
type Service interface {
	Create(ctx context.Context, userID, name, description string, isPublic bool) (*models.Playlist, error)
	List(ctx context.Context, userID string) ([]*models.Playlist, error)
	ListPublic(ctx context.Context) ([]*models.Playlist, error)
	Get(ctx context.Context, id, userID string) (*models.Playlist, error)
	Update(ctx context.Context, id, userID string, name, description *string, isPublic *bool) (*models.Playlist, error)
	Delete(ctx context.Context, id, userID string) error
	AddSong(ctx context.Context, playlistID, userID, songID string, position *int) error
	RemoveSong(ctx context.Context, playlistID, userID, songID string) error
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, userID, name, description string, isPublic bool) (*models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.CreatePlaylist(ctx, userID, name, description, isPublic)
}

func (s *service) List(ctx context.Context, userID string) ([]*models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListPlaylists(ctx, userID)
}

func (s *service) ListPublic(ctx context.Context) ([]*models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListPublicPlaylists(ctx)
}

func (s *service) Get(ctx context.Context, id, userID string) (*models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetPlaylist(ctx, id, userID)
}

func (s *service) Update(ctx context.Context, id, userID string, name, description *string, isPublic *bool) (*models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.UpdatePlaylist(ctx, id, userID, name, description, isPublic)
}

func (s *service) Delete(ctx context.Context, id, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeletePlaylist(ctx, id, userID)
}

func (s *service) AddSong(ctx context.Context, playlistID, userID, songID string, position *int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.AddSongToPlaylist(ctx, playlistID, userID, songID, position)
}

func (s *service) RemoveSong(ctx context.Context, playlistID, userID, songID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.RemoveSongFromPlaylist(ctx, playlistID, userID, songID)
}
