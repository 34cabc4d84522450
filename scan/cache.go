package scan

import (
	"context"
	"time"

	"github.com/fwojciec/beagle"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Default cache sizing for CachingFetcher.
const (
	DefaultCacheSize = 128
	DefaultCacheTTL  = 5 * time.Minute
)

// Ensure CachingFetcher implements beagle.Fetcher at compile time.
var _ beagle.Fetcher = (*CachingFetcher)(nil)

// CachingFetcher keeps recently fetched pages so that a FetchAll followed by
// FetchOne on the same page downloads it once. Failed fetches are not cached.
// CachingFetcher is safe for concurrent use.
type CachingFetcher struct {
	next  beagle.Fetcher
	cache *expirable.LRU[string, string]
}

// NewCachingFetcher wraps next with an LRU cache of size entries that expire
// after ttl. Non-positive values use the defaults.
func NewCachingFetcher(next beagle.Fetcher, size int, ttl time.Duration) *CachingFetcher {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachingFetcher{
		next:  next,
		cache: expirable.NewLRU[string, string](size, nil, ttl),
	}
}

// Fetch returns the cached page or fetches and caches it.
func (f *CachingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if html, ok := f.cache.Get(url); ok {
		return html, nil
	}
	html, err := f.next.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	f.cache.Add(url, html)
	return html, nil
}

// Close purges the cache and closes the wrapped fetcher.
func (f *CachingFetcher) Close() error {
	f.cache.Purge()
	return f.next.Close()
}
