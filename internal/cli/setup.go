package cli

import (
	"context"
	"os"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/initializr/pkg/cache"
	"github.com/matzehuels/initializr/pkg/config"
	"github.com/matzehuels/initializr/pkg/errors"
	"github.com/matzehuels/initializr/pkg/feed"
	"github.com/matzehuels/initializr/pkg/integrations"
	"github.com/matzehuels/initializr/pkg/metadata"
	"github.com/matzehuels/initializr/pkg/refresh"
)

// =============================================================================
// Environment - configuration, catalog, cache and provider
// =============================================================================

// environment holds everything built from the configuration file.
type environment struct {
	cfg      *config.Config
	store    cache.Cache
	source   feed.Source
	provider *refresh.Provider
}

// Close releases the cache backend.
func (e *environment) Close() error {
	return e.store.Close()
}

// open loads the configuration, builds the base catalog and prepares a
// provider over the configured feed. No refresh is performed.
func (c *CLI) open(ctx context.Context) (*environment, error) {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	catalog, err := buildCatalog(cfg, logger)
	if err != nil {
		return nil, err
	}
	store, err := openCache(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}

	var strategy *refresh.Strategy
	src := newSource(cfg, store)
	if src != nil {
		strategy = refresh.NewStrategy(src, logger)
	}
	logger.Debug("catalog loaded",
		"platforms", catalog.PlatformVersions.Len(),
		"dependencies", catalog.Dependencies.Len(),
		"cache", cfg.Cache.Backend)

	return &environment{
		cfg:      cfg,
		store:    store,
		source:   src,
		provider: refresh.NewProvider(catalog, strategy, logger),
	}, nil
}

// loadConfig reads --config, or ./initializr.toml when the flag is empty.
func (c *CLI) loadConfig() (*config.Config, error) {
	path := c.ConfigPath
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			return nil, errors.New(errors.ErrCodeConfigInvalid,
				"no configuration: pass --config or create %s", defaultConfigFile)
		}
		path = defaultConfigFile
	}
	return config.Load(path)
}

// buildCatalog merges the configured properties and override documents,
// in order, into a validated catalog.
func buildCatalog(cfg *config.Config, logger *log.Logger) (*metadata.Catalog, error) {
	b := metadata.FromProperties(&cfg.Initializr).WithLogger(logger)
	for _, path := range cfg.Overrides {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfigParse, err, "cannot open override %s", path)
		}
		b.WithDocument(path, f)
		f.Close()
	}
	return b.Build()
}

// openCache connects the configured cache backend. The file backend falls
// back to no caching when no cache directory can be determined.
func openCache(ctx context.Context, cfg config.Cache) (cache.Cache, error) {
	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err, "cannot connect to redis at %s", cfg.RedisAddr)
		}
		return rc, nil
	case config.BackendMongo:
		mc, err := cache.NewMongoCache(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err, "cannot connect to mongo")
		}
		return mc, nil
	}

	dir := cfg.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err, "cannot create cache directory %s", dir)
	}
	return fc, nil
}

// newSource returns the configured feed source, or nil when the catalog is
// static.
func newSource(cfg *config.Config, store cache.Cache) feed.Source {
	switch {
	case cfg.Refresh.FeedFile != "":
		return feed.NewFileSource(cfg.Refresh.FeedFile)
	case cfg.Refresh.FeedURL != "":
		src := feed.NewHTTPSource(cfg.Refresh.FeedURL, store, cfg.Refresh.CacheTTL.Duration)
		src.WithHTTPClient(integrations.NewHTTPClientWithTimeout(cfg.Refresh.Timeout.Duration))
		if cfg.Cache.KeyPrefix != "" {
			src.WithKeyer(cache.NewScopedKeyer(nil, cfg.Cache.KeyPrefix))
		}
		return src
	}
	return nil
}

// refreshOnce refreshes the provider, showing a spinner. A failed refresh
// is logged by the provider and the configured versions are kept.
func (e *environment) refreshOnce(ctx context.Context, noCache bool) *metadata.Catalog {
	if !e.cfg.Refresh.Enabled() {
		return e.provider.Get()
	}
	if hs, ok := e.source.(*feed.HTTPSource); ok && noCache {
		hs.Refresh = true
	}
	spinner := newSpinnerWithContext(ctx, "Refreshing versions...")
	spinner.Start()
	catalog, _ := e.provider.Refresh(ctx)
	spinner.Stop()
	return catalog
}
