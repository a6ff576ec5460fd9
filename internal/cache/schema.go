package cache

import (
	"database/sql"
	"fmt"
	"time"
)

// SchemaVersion is the current snapshot database schema version.
const SchemaVersion = "1"

const createSnapshotsTable = `
CREATE TABLE IF NOT EXISTS snapshots (
	id          TEXT PRIMARY KEY,
	cache_key   TEXT NOT NULL UNIQUE,
	payload     BLOB NOT NULL,
	size_bytes  INTEGER NOT NULL,
	fetched_at  TEXT NOT NULL
)`

const createCacheMetadataTable = `
CREATE TABLE IF NOT EXISTS cache_metadata (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

const createSnapshotsFetchedAtIndex = `
CREATE INDEX IF NOT EXISTS idx_snapshots_fetched_at ON snapshots(fetched_at)`

// CreateSchema creates the snapshot tables and records the schema version.
// All statements run in one transaction.
func CreateSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	statements := []struct {
		name string
		ddl  string
	}{
		{"snapshots", createSnapshotsTable},
		{"cache_metadata", createCacheMetadataTable},
		{"snapshots fetched_at index", createSnapshotsFetchedAtIndex},
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(stmt.ddl); err != nil {
			return fmt.Errorf("failed to create %s: %w", stmt.name, err)
		}
	}

	_, err = tx.Exec(
		"INSERT OR REPLACE INTO cache_metadata (key, value, updated_at) VALUES ('schema_version', ?, ?)",
		SchemaVersion, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}
	return nil
}

// GetSchemaVersion returns the recorded schema version, or "0" for a new
// database.
func GetSchemaVersion(db *sql.DB) (string, error) {
	var tableExists int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='cache_metadata'").Scan(&tableExists)
	if err != nil {
		return "", fmt.Errorf("failed to check cache_metadata existence: %w", err)
	}
	if tableExists == 0 {
		return "0", nil
	}

	var version string
	err = db.QueryRow("SELECT value FROM cache_metadata WHERE key = 'schema_version'").Scan(&version)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("schema_version key not found in cache_metadata")
	}
	if err != nil {
		return "", fmt.Errorf("failed to query schema version: %w", err)
	}
	return version, nil
}
