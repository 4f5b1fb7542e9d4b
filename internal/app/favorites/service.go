package favorites

import (
	"context"

	"melodex/internal/models"
)

// Store defines persistence operations required for favorites workflows.
type Store interface {
	ToggleFavorite(ctx context.Context, userID, songID string) (bool, error)
	ListFavorites(ctx context.Context, userID string) ([]*models.Favorite, error)
}

// Service describes the favorites operations used by the HTTP handlers.
type Service interface {
	Toggle(ctx context.Context, userID, songID string) (bool, error)
	List(ctx context.Context, userID string) ([]*models.Favorite, error)
}

type service struct {
	store Store
}

// New constructs a favorites Service backed by the given store.
func New(st Store) Service {
	return &service{store: st}
}

func (s *service) Toggle(ctx context.Context, userID, songID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return s.store.ToggleFavorite(ctx, userID, songID)
}

func (s *service) List(ctx context.Context, userID string) ([]*models.Favorite, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListFavorites(ctx, userID)
}
