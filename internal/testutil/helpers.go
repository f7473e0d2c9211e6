// Package testutil provides shared fixtures for package tests: a
// temp-dir credential store, an in-process mock backend and a recording
// navigator.
package testutil

import (
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"tracker-client/internal/credentials"
	"tracker-client/internal/mockapi"
	"tracker-client/internal/repository/sqlite"
)

// FixedNow is the clock used by NewMockAPI when none is given.
var FixedNow = time.Date(2025, 10, 5, 12, 0, 0, 0, time.UTC)

// NewCredentialStore returns a credential store backed by a SQLite file in
// t.TempDir(). The database is closed on cleanup.
func NewCredentialStore(t *testing.T) credentials.Store {
	t.Helper()

	repo, err := sqlite.New(filepath.Join(t.TempDir(), "credentials.db"))
	if err != nil {
		t.Fatalf("Failed to open credential store: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	return credentials.New(repo)
}

// NewMockAPI starts a seeded mock backend and returns it with its API base
// URL (ending in /api).
func NewMockAPI(t *testing.T, opts mockapi.Options) (*mockapi.Server, string) {
	t.Helper()

	if opts.Now == nil {
		opts.Now = func() time.Time { return FixedNow }
	}
	server := mockapi.New(opts)
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	return server, ts.URL + "/api"
}

// Navigator records redirects.
type Navigator struct {
	mu     sync.Mutex
	path   string
	visits []string
}

// NewNavigator returns a navigator positioned at path.
func NewNavigator(path string) *Navigator {
	return &Navigator{path: path}
}

// CurrentPath returns the last path navigated to.
func (n *Navigator) CurrentPath() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.path
}

// Navigate records a redirect to path.
func (n *Navigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.path = path
	n.visits = append(n.visits, path)
}

// Visits returns every path navigated to, in order.
func (n *Navigator) Visits() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.visits...)
}
