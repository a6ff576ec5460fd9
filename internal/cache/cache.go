package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// DatabaseFileName is the snapshot database inside the cache root.
const DatabaseFileName = "snapshots.db"

// Cache manages the cache directory location and database access.
// Encapsulates the cache root so tests never touch the home directory.
type Cache struct {
	// cacheRoot is the root directory for all cache data.
	// If empty, defaults to ~/.discograph/cache
	cacheRoot string
}

// NewCache creates a new Cache instance.
// If cacheRoot is empty, defaults to ~/.discograph/cache
func NewCache(cacheRoot string) *Cache {
	return &Cache{cacheRoot: cacheRoot}
}

// Root returns the resolved cache root directory.
func (c *Cache) Root() string {
	if c.cacheRoot != "" {
		return c.cacheRoot
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".discograph", "cache")
}

// GetCachePath returns the path of a named file in the cache root.
func (c *Cache) GetCachePath(name string) string {
	return filepath.Join(c.Root(), name)
}

// OpenDatabase opens the snapshot database, creating the cache directory and
// schema on first use.
func (c *Cache) OpenDatabase() (*sql.DB, error) {
	if err := os.MkdirAll(c.Root(), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", c.GetCachePath(DatabaseFileName))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sql.DB) error {
	version, err := GetSchemaVersion(db)
	if err != nil {
		return fmt.Errorf("failed to check schema version: %w", err)
	}
	if version == "0" {
		if err := CreateSchema(db); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
