package store

import (
	"context"

	"tracker-client/internal/api"
	"tracker-client/internal/credentials"
	"tracker-client/internal/domain"
	"tracker-client/internal/logging"
)

// AuthStore holds the credential token and the current user's profile.
// The token is persisted; the profile is fetched per session.
type AuthStore struct {
	state
	client api.Requester
	creds  credentials.Store
	token  string
	user   *domain.User
}

// NewAuthStore restores the persisted token.
func NewAuthStore(ctx context.Context, client api.Requester, creds credentials.Store) (*AuthStore, error) {
	token, err := creds.Token(ctx)
	if err != nil {
		return nil, err
	}
	return &AuthStore{client: client, creds: creds, token: token}, nil
}

// Token returns the in-memory token.
func (s *AuthStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether a token is held.
func (s *AuthStore) IsAuthenticated() bool {
	return s.Token() != ""
}

// CurrentUser returns the fetched profile, or nil.
func (s *AuthStore) CurrentUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// Login persists token, then holds it in memory.
func (s *AuthStore) Login(ctx context.Context, token string) error {
	if err := s.creds.SetToken(ctx, token); err != nil {
		return err
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	s.notify()
	return nil
}

// Logout removes the persisted token and clears the token and profile. The
// in-memory state is cleared even when removal fails.
func (s *AuthStore) Logout(ctx context.Context) error {
	err := s.creds.ClearToken(ctx)
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
	s.notify()
	return err
}

// FetchCurrentUser loads the profile. Failures are logged and keep any
// profile already held.
func (s *AuthStore) FetchCurrentUser(ctx context.Context) *Pending {
	s.begin()
	return run(func() (struct{}, error) {
		user, err := api.CurrentUser(ctx, s.client)
		if err != nil {
			s.settle(nil)
			logging.Errorf("Failed to fetch current user: %v", err)
			return struct{}{}, nil
		}
		s.settle(func() {
			s.user = &user
		})
		return struct{}{}, nil
	})
}

// Reset drops the in-memory token and profile without touching the
// persisted credential.
func (s *AuthStore) Reset() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.loading = false
	s.mu.Unlock()
	s.notify()
}
