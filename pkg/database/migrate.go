package database

import (
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS block_cache (
	page_id     TEXT PRIMARY KEY,
	last_edited TEXT NOT NULL,
	content     TEXT NOT NULL,
	fetched_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Migrate ensures the snapshot cache schema exists.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
