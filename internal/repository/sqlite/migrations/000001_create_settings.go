package migrations

import "database/sql"

func init() {
	Register(1, "create_settings", Up_000001_create_settings)
}

// Up_000001_create_settings creates the key/value table holding persisted
// client state such as the credential token.
func Up_000001_create_settings(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`)
	return err
}
