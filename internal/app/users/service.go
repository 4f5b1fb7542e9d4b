package users

import (
	"context"

	"melodex/internal/models"
)

// Store describes the persistence operations required by the user service.
type Store interface {
	CreateUser(ctx context.Context, name, email, password string) (*models.User, error)
	UserByCredentials(ctx context.Context, email, password string) (*models.User, error)
}

// TokenIssuer mints a signed token for a user identifier.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// Service exposes signup and login workflows.
type Service interface {
	Signup(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
}

type service struct {
	store  Store
	tokens TokenIssuer
}

// New wires a Service backed by the provided Store and token issuer.
func New(store Store, tokens TokenIssuer) Service {
	return &service{store: store, tokens: tokens}
}

func (s *service) Signup(ctx context.Context, name, email, password string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.CreateUser(ctx, name, email, password)
}

func (s *service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	user, err := s.store.UserByCredentials(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
