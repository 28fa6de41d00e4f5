// Package integrations provides the shared HTTP client used to fetch remote
// metadata such as the version feed.
//
// # Client
//
// [Client] wraps net/http with:
//   - Response caching through any [cache.Cache] backend, keyed per namespace
//   - Retry with exponential backoff for network errors and 5xx responses
//   - Default request headers
//   - Observability hooks for every request
//
// Usage:
//
//	c := integrations.NewClient(store, "feed", time.Hour, map[string]string{
//	    "Accept": "application/json",
//	})
//	data, err := c.CachedBytes(ctx, url, false, func() ([]byte, error) {
//	    return c.GetBytes(ctx, url)
//	}, nil)
//
// Errors wrap [ErrNotFound] (404) or [ErrNetwork] (everything else).
//
// [cache.Cache]: github.com/matzehuels/initializr/pkg/cache.Cache
package integrations
