package feed

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"time"

	"github.com/matzehuels/initializr/pkg/cache"
	"github.com/matzehuels/initializr/pkg/errors"
	"github.com/matzehuels/initializr/pkg/integrations"
)

// Source fetches the version feed.
type Source interface {
	Fetch(ctx context.Context) (*Document, error)
}

// FileSource reads the feed from a local file on every fetch.
type FileSource struct {
	Path string
}

// NewFileSource creates a Source reading path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Fetch reads and decodes the file.
func (s *FileSource) Fetch(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "version feed %s not found", s.Path)
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "cannot open version feed %s", s.Path)
	}
	defer f.Close()
	return Decode(f)
}

func (s *FileSource) String() string { return s.Path }

// HTTPSource fetches the feed over HTTP through a caching client.
//
// Fetched bodies are stored under the client's key for the URL, so a
// restart within the cache TTL does not hit the feed server. Set Refresh
// to bypass the cache on every fetch.
type HTTPSource struct {
	*integrations.Client
	URL     string
	Refresh bool
}

// NewHTTPSource creates a Source for url. Responses are cached in c for
// ttl; pass nil to disable caching.
func NewHTTPSource(url string, c cache.Cache, ttl time.Duration) *HTTPSource {
	if c != nil {
		c = cache.Instrument(c, "feed")
	}
	return &HTTPSource{
		Client: integrations.NewClient(c, "feed", ttl, map[string]string{
			"Accept": "application/json",
		}),
		URL:   url,
	}
}

// Fetch downloads, or loads from cache, and decodes the feed.
func (s *HTTPSource) Fetch(ctx context.Context) (*Document, error) {
	var doc *Document
	_, err := s.CachedBytes(ctx, s.URL, s.Refresh, func() ([]byte, error) {
		return s.GetBytes(ctx, s.URL)
	}, func(data []byte) error {
		d, err := Decode(bytes.NewReader(data))
		if err != nil {
			return err
		}
		doc = d
		return nil
	})
	if err != nil {
		if errors.Is(err, errors.ErrCodeInvalidFeed) {
			return nil, err
		}
		if stderrors.Is(err, integrations.ErrNotFound) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "version feed %s not found", s.URL)
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "cannot fetch version feed %s", s.URL)
	}
	return doc, nil
}

func (s *HTTPSource) String() string { return s.URL }
