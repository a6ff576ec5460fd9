package cache

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// NewTestDB creates an in-memory SQLite database with the snapshot schema.
// Cleanup is registered with t.Cleanup().
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// a single connection keeps every query on the same in-memory database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, CreateSchema(db))
	return db
}

// NewTestStore creates a Store over NewTestDB.
//
// Example:
//
//	func TestSomething(t *testing.T) {
//	    store := cache.NewTestStore(t)
//	    _, err := store.Put(ctx, "key", payload)
//	    // No need to close - t.Cleanup() handles it
//	}
func NewTestStore(t testing.TB, opts ...StoreOption) Store {
	t.Helper()

	s, err := NewStore(NewTestDB(t), opts...)
	require.NoError(t, err)
	return s
}
