package store

import (
	"bytes"
	"context"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"tracker-client/internal/api"
	"tracker-client/internal/credentials"
	"tracker-client/internal/logging"
	"tracker-client/internal/mockapi"
	"tracker-client/internal/testutil"
)

// stubRequester forwards to a real client, optionally holding every call
// until released or failing it outright.
type stubRequester struct {
	next api.Requester

	mu   sync.Mutex
	err  error
	gate chan struct{}
}

func (r *stubRequester) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	r.mu.Lock()
	gate, err := r.gate, r.err
	r.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return err
	}
	return r.next.Do(ctx, method, path, query, body, out)
}

func (r *stubRequester) fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// hold blocks calls until the returned function is invoked.
func (r *stubRequester) hold() (release func()) {
	gate := make(chan struct{})
	r.mu.Lock()
	r.gate = gate
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		r.gate = nil
		r.mu.Unlock()
		close(gate)
	}
}

type fixture struct {
	server    *mockapi.Server
	client    *api.Client
	requester *stubRequester
	creds     credentials.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	server, baseURL := testutil.NewMockAPI(t, mockapi.Options{Seed: true})
	creds := testutil.NewCredentialStore(t)
	client := api.New(creds, api.Options{BaseURL: baseURL})
	return &fixture{
		server:    server,
		client:    client,
		requester: &stubRequester{next: client},
		creds:     creds,
	}
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := logging.SetOutput(&buf)
	t.Cleanup(func() { logging.SetOutput(prev) })
	return &buf
}

func ids[T interface{ GetID() int64 }](records []T) []int64 {
	out := make([]int64, len(records))
	for i, r := range records {
		out[i] = r.GetID()
	}
	return out
}

func mustSettle[T any](t *testing.T, r *Result[T]) T {
	t.Helper()
	v, err := r.Wait()
	require.NoError(t, err)
	return v
}
