package sqlite

import (
	"context"
	"database/sql"
	"time"

	"tracker-client/internal/errors"
	"tracker-client/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository is a persistent key/value store for client state that must
// survive process restarts.
type Repository interface {
	Get(ctx context.Context, key string) (*Setting, error)
	List(ctx context.Context) ([]*Setting, error)
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new SQLite repository instance and applies pending migrations
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	// A single connection keeps ":memory:" databases coherent and avoids
	// SQLITE_BUSY between concurrent writers.
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db, now: time.Now}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Get retrieves a setting by key
func (r *SQLiteRepository) Get(ctx context.Context, key string) (*Setting, error) {
	query := `SELECT key, value, updated_at FROM settings WHERE key = ?`
	return QuerySingle(ctx, r.db, query, ScanSetting, "setting", key, key)
}

// List retrieves all settings ordered by key
func (r *SQLiteRepository) List(ctx context.Context) ([]*Setting, error) {
	query := `SELECT key, value, updated_at FROM settings ORDER BY key ASC`
	return QueryMultiple(ctx, r.db, query, ScanSettings, "settings")
}

// Set inserts or replaces a setting
func (r *SQLiteRepository) Set(ctx context.Context, key, value string) error {
	query := `
	INSERT INTO settings (key, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	return Execute(ctx, r.db, "set "+key, query, key, value, FormatTimeForDB(r.now()))
}

// Delete removes a setting by key
func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM settings WHERE key = ?`
	return Execute(ctx, r.db, "delete "+key, query, key)
}
