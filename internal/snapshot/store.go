package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// Store caches fetched block content between builder runs, keyed by page
// id and its last-edited time. A page whose last_edited_time is unchanged
// since the previous run is served from here instead of refetched.
type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

// Get returns the cached content for the page if the cache entry matches
// lastEdited exactly.
func (s *Store) Get(ctx context.Context, pageID, lastEdited string) ([]json.RawMessage, bool, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT content FROM block_cache
		WHERE page_id = ? AND last_edited = ?
	`, pageID, lastEdited)

	var raw string
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("scan block cache: %w", err)
	}

	var content []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &content); err != nil {
		// treat a corrupt entry as a miss; it will be rewritten
		return nil, false, nil
	}
	return content, true, nil
}

// Put upserts the cached content for a page.
func (s *Store) Put(ctx context.Context, pageID, lastEdited string, content []json.RawMessage) error {
	raw, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("marshal block content: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO block_cache (page_id, last_edited, content)
		VALUES (?, ?, ?)
		ON CONFLICT(page_id) DO UPDATE SET
			last_edited = excluded.last_edited,
			content     = excluded.content,
			fetched_at  = CURRENT_TIMESTAMP
	`, pageID, lastEdited, string(raw))
	if err != nil {
		return fmt.Errorf("upsert block cache: %w", err)
	}
	return nil
}
