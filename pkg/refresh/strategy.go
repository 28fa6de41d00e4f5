package refresh

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/initializr/pkg/errors"
	"github.com/matzehuels/initializr/pkg/feed"
	"github.com/matzehuels/initializr/pkg/metadata"
)

// Versions holds the element lists read from one feed.
type Versions struct {
	Platforms  []metadata.Element
	Frameworks []metadata.Element
}

// Strategy refreshes a catalog from a version feed.
type Strategy struct {
	source feed.Source
	logger *log.Logger
}

// NewStrategy creates a strategy reading src. A nil logger uses the
// default logger.
func NewStrategy(src feed.Source, logger *log.Logger) *Strategy {
	if logger == nil {
		logger = log.Default()
	}
	return &Strategy{source: src, logger: logger}
}

// Load fetches and reads the feed. Each list gets a default element.
func (s *Strategy) Load(ctx context.Context) (Versions, error) {
	doc, err := s.source.Fetch(ctx)
	if err != nil {
		return Versions{}, err
	}
	platforms, frameworks, err := feed.Read(doc)
	if err != nil {
		return Versions{}, err
	}
	return Versions{
		Platforms:  feed.EnsureDefault(platforms),
		Frameworks: feed.EnsureDefault(frameworks),
	}, nil
}

// Apply returns a copy of current carrying v. Framework versions are
// applied only when the catalog has a framework axis; an empty list leaves
// its axis untouched. current is never modified.
func (s *Strategy) Apply(current *metadata.Catalog, v Versions) (*metadata.Catalog, error) {
	next := current.Clone()
	if len(v.Platforms) > 0 {
		next.PlatformVersions.Replace(v.Platforms)
	}
	if next.HasFrameworkAxis() && len(v.Frameworks) > 0 {
		next.FrameworkVersions.Replace(v.Frameworks)
	}
	if err := next.UpdateCompatibility(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFeed, err, "cannot recompute compatibility ranges")
	}
	return next, nil
}

// Update loads the feed and applies it to current. On any failure the
// error is logged and current is returned unchanged.
func (s *Strategy) Update(ctx context.Context, current *metadata.Catalog) *metadata.Catalog {
	v, err := s.Load(ctx)
	if err != nil {
		s.logger.Warn("failed to fetch version feed", "source", s.source, "error", err)
		return current
	}
	next, err := s.Apply(current, v)
	if err != nil {
		s.logger.Warn("failed to refresh catalog", "source", s.source, "error", err)
		return current
	}
	return next
}
