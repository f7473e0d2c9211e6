package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker-client/internal/errors"
)

func newAuthStore(t *testing.T, f *fixture) *AuthStore {
	t.Helper()
	auth, err := NewAuthStore(context.Background(), f.requester, f.creds)
	require.NoError(t, err)
	return auth
}

func TestAuthStore_LoginPersists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	auth := newAuthStore(t, f)
	assert.False(t, auth.IsAuthenticated())

	require.NoError(t, auth.Login(ctx, "t"))

	assert.Equal(t, "t", auth.Token())
	persisted, err := f.creds.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t", persisted)

	// a new session restores the token
	restored := newAuthStore(t, f)
	assert.Equal(t, "t", restored.Token())
}

func TestAuthStore_LogoutClearsEverything(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	auth := newAuthStore(t, f)
	require.NoError(t, auth.Login(ctx, "t"))
	mustSettle(t, auth.FetchCurrentUser(ctx))
	require.NotNil(t, auth.CurrentUser())

	require.NoError(t, auth.Logout(ctx))

	assert.Empty(t, auth.Token())
	assert.Nil(t, auth.CurrentUser())
	persisted, err := f.creds.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestAuthStore_FetchCurrentUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	auth := newAuthStore(t, f)

	release := f.requester.hold()
	pending := auth.FetchCurrentUser(ctx)
	assert.True(t, auth.Loading())
	release()
	require.NoError(t, pending.Err())

	user := auth.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, "testuser", user.Username)
	assert.False(t, auth.Loading())
}

func TestAuthStore_FetchFailureKeepsProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	logs := captureLog(t)
	auth := newAuthStore(t, f)
	mustSettle(t, auth.FetchCurrentUser(ctx))

	f.requester.fail(errors.NewTransportError("GET /auth/user/", assert.AnError))
	assert.NoError(t, auth.FetchCurrentUser(ctx).Err())

	require.NotNil(t, auth.CurrentUser())
	assert.Equal(t, "testuser", auth.CurrentUser().Username)
	assert.Contains(t, logs.String(), "Failed to fetch current user")
}

func TestAuthStore_LoginRejectsEmptyToken(t *testing.T) {
	f := newFixture(t)
	auth := newAuthStore(t, f)

	err := auth.Login(context.Background(), "")

	assert.Error(t, err)
	assert.False(t, auth.IsAuthenticated())
}

func TestAuthStore_ResetKeepsPersistedToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	auth := newAuthStore(t, f)
	require.NoError(t, auth.Login(ctx, "t"))

	auth.Reset()

	assert.Empty(t, auth.Token())
	persisted, err := f.creds.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t", persisted)
}
