package source

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mvp-joe/discograph/internal/cache"
	"github.com/mvp-joe/discograph/internal/discography"
	"github.com/mvp-joe/discograph/internal/graph"
	"github.com/mvp-joe/discograph/internal/lyricindex"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Origin tells where a dataset's payload came from.
type Origin string

const (
	OriginCache   Origin = "cache"
	OriginNetwork Origin = "network"
)

// Dataset is a built database together with the structures derived from it.
// A Dataset is read-only once returned.
type Dataset struct {
	DB        *discography.Database
	Graph     graph.Searcher
	GraphData *graph.GraphData
	Lyrics    lyricindex.Index
	Origin    Origin
	FetchedAt time.Time
}

// Loader fetches, caches and builds the discography, keeping the last good
// dataset.
type Loader interface {
	// Load returns a dataset built from a fresh cached snapshot, or from the
	// network when force is set or no usable snapshot exists.
	Load(ctx context.Context, force bool) (*Dataset, error)

	// Refresh drops the cached snapshot and loads from the network.
	Refresh(ctx context.Context) (*Dataset, error)

	// Current returns the last successfully built dataset, or nil.
	Current() *Dataset

	// Get returns the current dataset, loading one first if none exists.
	Get(ctx context.Context) (*Dataset, error)

	// Close releases the current dataset's lyric index.
	Close() error
}

type loader struct {
	fetcher Fetcher
	store   cache.Store
	key     string
	maxAge  time.Duration

	builder       discography.Builder
	graphStorage  graph.Storage
	graphProgress graph.GraphProgressReporter
	indexProgress lyricindex.ProgressReporter
	logger        zerolog.Logger
	now           func() time.Time

	loadMu  sync.Mutex // serializes Load and Refresh
	mu      sync.RWMutex
	current *Dataset
}

// Option configures a Loader.
type Option func(*loader)

// WithStore enables snapshot caching under key. Snapshots older than maxAge
// are refetched; maxAge <= 0 accepts any age.
func WithStore(store cache.Store, key string, maxAge time.Duration) Option {
	return func(l *loader) {
		l.store = store
		l.key = key
		l.maxAge = maxAge
	}
}

// WithBuilder overrides the discography builder.
func WithBuilder(b discography.Builder) Option {
	return func(l *loader) {
		l.builder = b
	}
}

// WithGraphStorage persists built relationship graphs and reuses one built
// from the same payload.
func WithGraphStorage(s graph.Storage) Option {
	return func(l *loader) {
		l.graphStorage = s
	}
}

// WithGraphProgress sets the progress reporter for graph building.
func WithGraphProgress(p graph.GraphProgressReporter) Option {
	return func(l *loader) {
		l.graphProgress = p
	}
}

// WithIndexProgress sets the progress reporter for lyric indexing.
func WithIndexProgress(p lyricindex.ProgressReporter) Option {
	return func(l *loader) {
		l.indexProgress = p
	}
}

// WithLogger sets the loader logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *loader) {
		l.logger = logger
	}
}

// NewLoader creates a Loader over fetcher.
func NewLoader(fetcher Fetcher, opts ...Option) Loader {
	l := &loader{
		fetcher: fetcher,
		logger:  zerolog.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.builder == nil {
		l.builder = discography.NewBuilder(discography.WithLogger(l.logger))
	}
	return l
}

func (l *loader) Load(ctx context.Context, force bool) (*Dataset, error) {
	l.loadMu.Lock()
	defer l.loadMu.Unlock()

	if !force && l.store != nil {
		if ds, ok := l.loadCached(ctx); ok {
			return ds, nil
		}
	}

	payload, err := l.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	fetchedAt := l.now()
	if l.store != nil {
		snap, err := l.store.Put(ctx, l.key, payload)
		if err != nil {
			l.logger.Warn().Err(err).Str("key", l.key).Msg("failed to cache snapshot")
		} else {
			fetchedAt = snap.FetchedAt
		}
	}

	ds, err := l.build(ctx, payload, OriginNetwork, fetchedAt)
	if err != nil {
		return nil, err
	}
	l.swap(ds)
	return ds, nil
}

// loadCached builds from a fresh snapshot. Any failure falls through to the
// network.
func (l *loader) loadCached(ctx context.Context) (*Dataset, bool) {
	snap, err := l.store.Get(ctx, l.key, l.maxAge)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			l.logger.Warn().Err(err).Str("key", l.key).Msg("failed to read cached snapshot")
		}
		return nil, false
	}

	ds, err := l.build(ctx, snap.Payload, OriginCache, snap.FetchedAt)
	if err != nil {
		l.logger.Warn().Err(err).Str("key", l.key).Msg("cached snapshot unusable, refetching")
		return nil, false
	}
	l.swap(ds)
	return ds, true
}

func (l *loader) Refresh(ctx context.Context) (*Dataset, error) {
	if l.store != nil {
		if err := l.store.Delete(ctx, l.key); err != nil {
			return nil, fmt.Errorf("failed to clear cached snapshot: %w", err)
		}
	}
	return l.Load(ctx, true)
}

func (l *loader) build(ctx context.Context, payload []byte, origin Origin, fetchedAt time.Time) (*Dataset, error) {
	start := time.Now()

	raw, err := discography.DecodePayloadBytes(payload)
	if err != nil {
		return nil, err
	}
	db, err := l.builder.Build(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to build discography: %w", err)
	}

	ds := &Dataset{DB: db, Origin: origin, FetchedAt: fetchedAt}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := l.songGraph(gctx, db, payload)
		if err != nil {
			return err
		}
		searcher, err := graph.NewSearcher(data)
		if err != nil {
			return err
		}
		ds.GraphData = data
		ds.Graph = searcher
		return nil
	})
	g.Go(func() error {
		var opts []lyricindex.Option
		if l.indexProgress != nil {
			opts = append(opts, lyricindex.WithProgress(l.indexProgress))
		}
		idx, err := lyricindex.New(gctx, db, opts...)
		if err != nil {
			return fmt.Errorf("failed to build lyric index: %w", err)
		}
		ds.Lyrics = idx
		return nil
	})
	if err := g.Wait(); err != nil {
		if ds.Lyrics != nil {
			ds.Lyrics.Close()
		}
		return nil, err
	}

	l.logger.Info().
		Str("origin", string(origin)).
		Int("songs", len(db.Songs)).
		Int("edges", len(ds.GraphData.Edges)).
		Dur("duration", time.Since(start)).
		Msg("discography loaded")
	return ds, nil
}

// songGraph reuses the persisted graph when it was built from the same
// payload, and otherwise builds and persists a new one.
func (l *loader) songGraph(ctx context.Context, db *discography.Database, payload []byte) (*graph.GraphData, error) {
	fingerprint := graph.Fingerprint(payload)
	if l.graphStorage != nil {
		data, err := l.graphStorage.LoadMatching(fingerprint)
		if err != nil {
			l.logger.Warn().Err(err).Msg("ignoring unreadable song graph")
		} else if data != nil {
			l.logger.Debug().Int("edges", len(data.Edges)).Msg("reusing persisted song graph")
			return data, nil
		}
	}

	var opts []graph.BuilderOption
	if l.graphProgress != nil {
		opts = append(opts, graph.WithProgress(l.graphProgress))
	}
	data, err := graph.NewBuilder(opts...).Build(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to build song graph: %w", err)
	}
	if l.graphStorage != nil {
		if err := l.graphStorage.Save(data, fingerprint); err != nil {
			l.logger.Warn().Err(err).Msg("failed to save song graph")
		}
	}
	return data, nil
}

// swap publishes ds. The previous dataset stays usable by readers that still
// hold it; its in-memory index is released with it.
func (l *loader) swap(ds *Dataset) {
	l.mu.Lock()
	l.current = ds
	l.mu.Unlock()
}

func (l *loader) Current() *Dataset {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

func (l *loader) Get(ctx context.Context) (*Dataset, error) {
	if ds := l.Current(); ds != nil {
		return ds, nil
	}
	return l.Load(ctx, false)
}

func (l *loader) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current != nil && l.current.Lyrics != nil {
		return l.current.Lyrics.Close()
	}
	return nil
}
