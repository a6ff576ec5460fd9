package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mvp-joe/discograph/internal/cache"
	"github.com/mvp-joe/discograph/internal/config"
	"github.com/mvp-joe/discograph/internal/graph"
	"github.com/mvp-joe/discograph/internal/logging"
	"github.com/mvp-joe/discograph/internal/source"
	"github.com/rs/zerolog"
)

// runtime wires configuration, logging, the snapshot cache and the loader for
// one command invocation.
type runtime struct {
	cfg    *config.Config
	logger zerolog.Logger
	cache  *cache.Cache
	store  cache.Store
	loader source.Loader
}

// loadConfig loads configuration from --dir or the working directory.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if rootDir != "" {
		cfg, err = config.LoadConfigFromDir(rootDir)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger. Logs go to stderr so stdout stays
// clean for results and the MCP transport.
func newLogger(cfg *config.Config) zerolog.Logger {
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logger := logging.New(logging.Config{
		Level:  level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})
	logging.SetGlobal(logger)
	return logger
}

// newRuntime opens the cache and builds a loader. When showProgress is set
// and --quiet is not, graph building and indexing report progress.
func newRuntime(showProgress bool) (*runtime, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg)

	c := cache.NewCache(cfg.Cache.Location)
	store, err := cache.OpenStore(c, cache.WithLogger(logging.WithComponent(logger, "cache")))
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	opts := []source.Option{
		source.WithStore(store, cfg.Cache.Key, cfg.Cache.MaxAge),
		source.WithLogger(logging.WithComponent(logger, "source")),
	}
	if graphStorage, err := graph.NewStorage(c.GetCachePath("graph")); err != nil {
		logger.Warn().Err(err).Msg("song graph will not be persisted")
	} else {
		opts = append(opts, source.WithGraphStorage(graphStorage))
	}
	if showProgress && !quiet && !jsonOut {
		progress := NewCLIProgressReporter(quiet)
		opts = append(opts, source.WithGraphProgress(progress), source.WithIndexProgress(progress))
	}

	fetcher := source.NewHTTPFetcher(cfg.Source.URL, cfg.Source.Timeout)
	return &runtime{
		cfg:    cfg,
		logger: logger,
		cache:  c,
		store:  store,
		loader: source.NewLoader(fetcher, opts...),
	}, nil
}

// dataset loads the discography, from cache when fresh.
func (r *runtime) dataset(ctx context.Context, force bool) (*source.Dataset, error) {
	return r.loader.Load(ctx, force)
}

// Close releases the loader and the cache.
func (r *runtime) Close() {
	r.loader.Close()
	r.store.Close()
}

// withDataset runs fn against a loaded dataset and closes the runtime after.
func withDataset(ctx context.Context, fn func(*source.Dataset) error) error {
	rt, err := newRuntime(false)
	if err != nil {
		return err
	}
	defer rt.Close()

	ds, err := rt.dataset(ctx, false)
	if err != nil {
		return err
	}
	return fn(ds)
}
