package store_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/mbolis/formbox/config"
	"github.com/mbolis/formbox/database"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(config.Config{
		DBUrl: filepath.Join(t.TempDir(), "formbox.sqlite"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

// checkPrimaryInvariants asserts that at most one form is primary and that
// no primary form is archived.
func checkPrimaryInvariants(t *testing.T, db *sql.DB) {
	t.Helper()

	var primaries int
	err := db.QueryRow("SELECT count(*) FROM form WHERE is_primary = 1").Scan(&primaries)
	require.NoError(t, err)
	require.LessOrEqual(t, primaries, 1, "more than one primary form")

	var archivedPrimaries int
	err = db.QueryRow("SELECT count(*) FROM form WHERE is_primary = 1 AND is_archived = 1").Scan(&archivedPrimaries)
	require.NoError(t, err)
	require.Zero(t, archivedPrimaries, "primary form is archived")
}
