package refresh

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/initializr/pkg/metadata"
	"github.com/matzehuels/initializr/pkg/observability"
)

// Provider publishes the current catalog.
//
// Get is safe for concurrent use and never blocks. Refresh calls are
// serialised; the feed is fetched before the writer lock is taken.
type Provider struct {
	current  atomic.Pointer[metadata.Catalog]
	mu       sync.Mutex
	strategy *Strategy
	logger   *log.Logger
}

// NewProvider creates a provider serving initial. strategy may be nil, in
// which case Refresh is a no-op.
func NewProvider(initial *metadata.Catalog, strategy *Strategy, logger *log.Logger) *Provider {
	if logger == nil {
		logger = log.Default()
	}
	p := &Provider{strategy: strategy, logger: logger}
	p.current.Store(initial)
	return p
}

// Get returns the current catalog. Callers must treat it as read-only.
func (p *Provider) Get() *metadata.Catalog {
	return p.current.Load()
}

// Refresh updates the catalog from the feed and returns the catalog now
// being served. On failure the previous catalog stays published and the
// error is returned for reporting only.
func (p *Provider) Refresh(ctx context.Context) (*metadata.Catalog, error) {
	if p.strategy == nil {
		return p.Get(), nil
	}

	hooks := observability.Refresh()
	hooks.OnRefreshStart(ctx)
	start := time.Now()

	v, err := p.strategy.Load(ctx)
	if err == nil {
		err = p.publish(v)
	}

	served := p.Get()
	duration := time.Since(start)
	hooks.OnRefreshComplete(ctx, served.PlatformVersions.Len(), served.FrameworkVersions.Len(), duration, err)
	if err != nil {
		p.logger.Warn("catalog refresh failed, keeping previous versions", "error", err)
		return served, err
	}
	p.logger.Info("refreshed catalog",
		"platforms", served.PlatformVersions.Len(),
		"frameworks", served.FrameworkVersions.Len(),
		"default", served.PlatformVersions.DefaultID(),
		"duration", duration)
	return served, nil
}

func (p *Provider) publish(v Versions) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	next, err := p.strategy.Apply(p.current.Load(), v)
	if err != nil {
		return err
	}
	p.current.Store(next)
	return nil
}
