package songs

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"melodex/internal/media"
	"melodex/internal/models"
	"melodex/internal/store"
)

// Store captures the persistence needs for song workflows.
type Store interface {
	CreateSong(ctx context.Context, song models.Song) (models.Song, error)
	ListSongs(ctx context.Context) ([]models.Song, error)
	SearchSongs(ctx context.Context, query string) ([]models.Song, error)
}

// Service exposes song-centric operations.
type Service interface {
	Upload(ctx context.Context, audio, thumbnail io.Reader, artist, songName, hexCode string) (models.Song, error)
	List(ctx context.Context) ([]models.Song, error)
	Search(ctx context.Context, query string) ([]models.Song, error)
}

type service struct {
	store    Store
	uploader media.Uploader
}

// New constructs a song Service backed by the provided store and media
// uploader.
func New(store Store, uploader media.Uploader) Service {
	return &service{store: store, uploader: uploader}
}

// Upload validates the metadata, pushes both files to the media host and then
// persists the song row. Validation runs before either upload so a rejected
// request leaves nothing orphaned on the host; if the thumbnail upload fails
// the audio file does stay orphaned, and nothing is persisted.
func (s *service) Upload(ctx context.Context, audio, thumbnail io.Reader, artist, songName, hexCode string) (models.Song, error) {
	if err := ctx.Err(); err != nil {
		return models.Song{}, err
	}

	song := models.Song{
		Artist:   strings.TrimSpace(artist),
		SongName: strings.TrimSpace(songName),
		HexCode:  strings.TrimSpace(hexCode),
	}
	if err := store.ValidateSong(song); err != nil {
		return models.Song{}, err
	}

	song.ID = uuid.NewString()
	folder := fmt.Sprintf("songs/%s", song.ID)

	songURL, err := s.uploader.Upload(ctx, audio, folder, media.KindAuto)
	if err != nil {
		return models.Song{}, fmt.Errorf("upload audio: %w", err)
	}
	thumbnailURL, err := s.uploader.Upload(ctx, thumbnail, folder, media.KindImage)
	if err != nil {
		return models.Song{}, fmt.Errorf("upload thumbnail: %w", err)
	}

	song.SongURL = songURL
	song.ThumbnailURL = thumbnailURL
	return s.store.CreateSong(ctx, song)
}

func (s *service) List(ctx context.Context) ([]models.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListSongs(ctx)
}

func (s *service) Search(ctx context.Context, query string) ([]models.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.SearchSongs(ctx, query)
}
