package store

import (
	"context"
	"database/sql"
	"fmt"
)

// schema lists the statements that bring an empty database up to date.
// Statements must be idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS session_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		action TEXT NOT NULL,
		dataset TEXT NOT NULL DEFAULT '',
		mode TEXT NOT NULL DEFAULT '',
		phases INTEGER NOT NULL DEFAULT 0,
		goal TEXT NOT NULL DEFAULT '',
		items INTEGER NOT NULL DEFAULT 0,
		questions_served INTEGER NOT NULL DEFAULT 0,
		correct_answers INTEGER NOT NULL DEFAULT 0,
		rounds INTEGER NOT NULL DEFAULT 0,
		duration_secs INTEGER NOT NULL DEFAULT 0,
		completed INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS session_events_session ON session_events (session_id)`,
	`CREATE TABLE IF NOT EXISTS answer_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		item_id TEXT NOT NULL,
		prompt TEXT NOT NULL,
		phase TEXT NOT NULL,
		answer_format TEXT NOT NULL,
		correct_answer TEXT NOT NULL,
		learner_answer TEXT NOT NULL,
		correct INTEGER NOT NULL,
		invalid INTEGER NOT NULL DEFAULT 0,
		round INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS answer_events_item ON answer_events (item_id)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
