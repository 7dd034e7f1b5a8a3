package db

import (
	"context"
	"database/sql"
)

const accountsMigration = `
CREATE TABLE IF NOT EXISTS accounts (
    id uuid PRIMARY KEY,
    email text NOT NULL,
    name text NOT NULL DEFAULT '',
    avatar_url text NOT NULL DEFAULT '',
    credential_hash text NOT NULL,
    linked_provider text NOT NULL DEFAULT '',
    linked_provider_subject_id text NOT NULL DEFAULT '',
    token_version integer NOT NULL DEFAULT 0,
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW(),
    CONSTRAINT accounts_link_pair CHECK (
        (linked_provider = '') = (linked_provider_subject_id = '')
    )
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_email
ON accounts (email);
`

// RunAccountsMigration creates the accounts schema if it does not exist.
func RunAccountsMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, accountsMigration)
	return err
}
