// Package dbtest opens throwaway databases for tests.
package dbtest

import (
	"testing"

	"github.com/fox-one/pkg/store/db"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/require"
)

// Open an in-memory sqlite database with every registered migration
// applied. Callers blank import the store packages they need so their
// migrations are registered.
func Open(t *testing.T) *db.DB {
	t.Helper()

	database := db.MustOpen(db.SqliteInMemory())
	// one connection keeps the in-memory database alive and shared
	database.Update().DB().SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(database))

	t.Cleanup(func() {
		_ = database.Close()
	})

	return database
}
