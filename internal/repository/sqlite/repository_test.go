package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker-client/internal/errors"
)

func setupTestDB(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "credentials.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSetAndGet(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	fixed := time.Date(2025, 10, 3, 9, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	require.NoError(t, repo.Set(ctx, "authToken", "abc"))

	setting, err := repo.Get(ctx, "authToken")
	require.NoError(t, err)
	assert.Equal(t, "authToken", setting.Key)
	assert.Equal(t, "abc", setting.Value)
	assert.True(t, fixed.Equal(setting.UpdatedAt))
}

func TestSet_Overwrites(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "authToken", "first"))
	require.NoError(t, repo.Set(ctx, "authToken", "second"))

	setting, err := repo.Get(ctx, "authToken")
	require.NoError(t, err)
	assert.Equal(t, "second", setting.Value)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGet_Missing(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.Get(context.Background(), "authToken")
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	assert.Contains(t, err.Error(), "not found")
}

func TestDelete(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "authToken", "abc"))
	require.NoError(t, repo.Delete(ctx, "authToken"))

	_, err := repo.Get(ctx, "authToken")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	// deleting again is a no-op
	assert.NoError(t, repo.Delete(ctx, "authToken"))
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.db")
	ctx := context.Background()

	repo, err := New(path)
	require.NoError(t, err)
	require.NoError(t, repo.Set(ctx, "authToken", "kept"))
	require.NoError(t, repo.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	setting, err := reopened.Get(ctx, "authToken")
	require.NoError(t, err)
	assert.Equal(t, "kept", setting.Value)
}

func TestList_Empty(t *testing.T) {
	repo := setupTestDB(t)

	settings, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, settings)
}

func TestScanSetting_BadTimestamp(t *testing.T) {
	_, err := ScanSetting(fakeScanner{values: []string{"k", "v", "yesterday"}})
	assert.Error(t, err)
}

type fakeScanner struct {
	values []string
}

func (f fakeScanner) Scan(dest ...interface{}) error {
	for i, d := range dest {
		*(d.(*string)) = f.values[i]
	}
	return nil
}
