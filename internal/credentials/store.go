// Package credentials persists the API token between runs.
package credentials

import (
	"context"

	"tracker-client/internal/errors"
	"tracker-client/internal/repository/sqlite"
)

// TokenKey is the fixed key the token is stored under.
const TokenKey = "authToken"

// Store reads and writes the persisted credential token.
type Store interface {
	// Token returns the persisted token, or "" when none is stored.
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

type repoStore struct {
	repo sqlite.Repository
}

// New returns a Store backed by repo.
func New(repo sqlite.Repository) Store {
	return &repoStore{repo: repo}
}

func (s *repoStore) Token(ctx context.Context) (string, error) {
	setting, err := s.repo.Get(ctx, TokenKey)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return "", nil
		}
		return "", err
	}
	return setting.Value, nil
}

func (s *repoStore) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return errors.NewInvalidInputError("token", token, "cannot be empty")
	}
	return s.repo.Set(ctx, TokenKey, token)
}

func (s *repoStore) ClearToken(ctx context.Context) error {
	return s.repo.Delete(ctx, TokenKey)
}
