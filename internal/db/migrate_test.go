package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountsMigrationNeedsNoExtensions(t *testing.T) {
	assert.NotContains(t, accountsMigration, "CREATE EXTENSION")
	assert.NotContains(t, accountsMigration, "gen_random_uuid")
	assert.Contains(t, accountsMigration, "id uuid PRIMARY KEY,")
	assert.Contains(t, accountsMigration, "CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_email")
}
