// Package migrations applies the postline database schema.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

// statements run in order on every boot; each is idempotent. The UNIQUE
// constraint on username is what makes concurrent duplicate
// registrations lose deterministically.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS account (
		account_id SERIAL PRIMARY KEY,
		username   TEXT NOT NULL UNIQUE,
		password   TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS message (
		message_id        SERIAL PRIMARY KEY,
		message_text      TEXT   NOT NULL,
		posted_by         INT    NOT NULL REFERENCES account (account_id),
		time_posted_epoch BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_message_posted_by ON message (posted_by)`,
}

// Apply executes all schema statements against db.
func Apply(ctx context.Context, db *sql.DB) error {
	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
