package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/gobwas/glob"
	"github.com/google/uuid"
	"github.com/maypok86/otter"
	"github.com/rs/zerolog"
)

// ErrCacheMiss is returned by Get when no fresh snapshot exists for a key.
var ErrCacheMiss = errors.New("cache miss")

const defaultMemoryCapacity = 16

// Snapshot is one cached source payload.
type Snapshot struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Payload   []byte    `json:"-"`
	SizeBytes int       `json:"size_bytes"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Age returns how long ago the snapshot was fetched.
func (s *Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}

// Store persists raw payload snapshots by key in SQLite, with a bounded
// in-memory tier in front.
type Store interface {
	// Get returns the snapshot for key if its age is at most maxAge.
	// maxAge <= 0 accepts any age. Returns ErrCacheMiss otherwise.
	Get(ctx context.Context, key string, maxAge time.Duration) (*Snapshot, error)

	// Put stores payload under key, replacing any previous snapshot.
	Put(ctx context.Context, key string, payload []byte) (*Snapshot, error)

	// Delete removes the snapshot stored under exactly key. Deleting a
	// missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear deletes snapshots whose key matches the glob pattern ("" or "*"
	// for all) and returns the deleted keys.
	Clear(ctx context.Context, pattern string) ([]string, error)

	// List returns snapshot metadata (without payloads), newest first.
	List(ctx context.Context) ([]*Snapshot, error)

	// Evict deletes snapshots older than maxAge.
	Evict(ctx context.Context, maxAge time.Duration) (*EvictionResult, error)

	// Close releases the memory tier and the database.
	Close() error
}

type store struct {
	db     *sql.DB
	memory otter.Cache[string, *Snapshot]
	now    func() time.Time
	logger zerolog.Logger

	memoryCapacity int
}

// StoreOption configures a Store.
type StoreOption func(*store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) StoreOption {
	return func(s *store) {
		s.now = now
	}
}

// WithMemoryCapacity sets the number of snapshots kept in memory.
func WithMemoryCapacity(n int) StoreOption {
	return func(s *store) {
		s.memoryCapacity = n
	}
}

// WithLogger sets the store logger.
func WithLogger(logger zerolog.Logger) StoreOption {
	return func(s *store) {
		s.logger = logger
	}
}

// NewStore creates a Store over db. The schema must already exist
// (Cache.OpenDatabase or CreateSchema). The store owns db and closes it.
func NewStore(db *sql.DB, opts ...StoreOption) (Store, error) {
	s := &store{
		db:             db,
		now:            time.Now,
		logger:         zerolog.Nop(),
		memoryCapacity: defaultMemoryCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}

	memory, err := otter.MustBuilder[string, *Snapshot](s.memoryCapacity).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create memory cache: %w", err)
	}
	s.memory = memory
	return s, nil
}

// OpenStore opens the snapshot database under c and wraps it in a Store.
func OpenStore(c *Cache, opts ...StoreOption) (Store, error) {
	db, err := c.OpenDatabase()
	if err != nil {
		return nil, err
	}
	s, err := NewStore(db, opts...)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *store) fresh(snap *Snapshot, maxAge time.Duration) bool {
	return maxAge <= 0 || snap.Age(s.now()) <= maxAge
}

func (s *store) Get(ctx context.Context, key string, maxAge time.Duration) (*Snapshot, error) {
	if snap, ok := s.memory.Get(key); ok {
		if s.fresh(snap, maxAge) {
			return snap, nil
		}
		return nil, ErrCacheMiss
	}

	snap := &Snapshot{}
	var fetchedAt string
	err := sq.Select("id", "cache_key", "payload", "size_bytes", "fetched_at").
		From("snapshots").
		Where(sq.Eq{"cache_key": key}).
		RunWith(s.db).
		QueryRowContext(ctx).
		Scan(&snap.ID, &snap.Key, &snap.Payload, &snap.SizeBytes, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot %s: %w", key, err)
	}
	snap.FetchedAt, _ = time.Parse(time.RFC3339Nano, fetchedAt)

	s.memory.Set(key, snap)
	if !s.fresh(snap, maxAge) {
		return nil, ErrCacheMiss
	}
	return snap, nil
}

func (s *store) Put(ctx context.Context, key string, payload []byte) (*Snapshot, error) {
	snap := &Snapshot{
		ID:        uuid.NewString(),
		Key:       key,
		Payload:   payload,
		SizeBytes: len(payload),
		FetchedAt: s.now().UTC(),
	}

	_, err := sq.Insert("snapshots").
		Columns("id", "cache_key", "payload", "size_bytes", "fetched_at").
		Values(snap.ID, snap.Key, snap.Payload, snap.SizeBytes, snap.FetchedAt.Format(time.RFC3339Nano)).
		Options("OR REPLACE").
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to put snapshot %s: %w", key, err)
	}

	s.memory.Set(key, snap)
	s.logger.Debug().Str("key", key).Int("bytes", snap.SizeBytes).Msg("snapshot stored")
	return snap, nil
}

func (s *store) Delete(ctx context.Context, key string) error {
	return s.deleteKeys(ctx, []string{key})
}

func (s *store) Clear(ctx context.Context, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*"
	}
	matcher, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid key pattern %q: %w", pattern, err)
	}

	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	keys := []string{}
	for _, e := range entries {
		if matcher.Match(e.Key) {
			keys = append(keys, e.Key)
		}
	}

	if err := s.deleteKeys(ctx, keys); err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *store) deleteKeys(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := sq.Delete("snapshots").
		Where(sq.Eq{"cache_key": keys}).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete snapshots: %w", err)
	}
	for _, k := range keys {
		s.memory.Delete(k)
	}
	s.logger.Debug().Strs("keys", keys).Msg("snapshots deleted")
	return nil
}

func (s *store) List(ctx context.Context) ([]*Snapshot, error) {
	rows, err := sq.Select("id", "cache_key", "size_bytes", "fetched_at").
		From("snapshots").
		OrderBy("fetched_at DESC", "cache_key").
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	snaps := []*Snapshot{}
	for rows.Next() {
		snap := &Snapshot{}
		var fetchedAt string
		if err := rows.Scan(&snap.ID, &snap.Key, &snap.SizeBytes, &fetchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snap.FetchedAt, _ = time.Parse(time.RFC3339Nano, fetchedAt)
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}
	return snaps, nil
}

func (s *store) Close() error {
	s.memory.Close()
	return s.db.Close()
}
