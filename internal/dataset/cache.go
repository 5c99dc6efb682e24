package dataset

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"soulsreq/internal/game"
	"soulsreq/internal/metrics"
)

// CachedProvider memoizes successful fetches of an underlying provider.
// Failed fetches are never cached, and a failure is never answered with
// an older copy.
type CachedProvider struct {
	next game.Provider
	lru  *expirable.LRU[string, []game.Raw]
}

// NewCachedProvider caches up to size datasets for ttl. A zero ttl keeps
// entries until they are evicted by size.
func NewCachedProvider(next game.Provider, size int, ttl time.Duration) *CachedProvider {
	if size <= 0 {
		size = 1
	}
	return &CachedProvider{
		next: next,
		lru:  expirable.NewLRU[string, []game.Raw](size, nil, ttl),
	}
}

// Fetch returns the cached records for dataset or fetches them.
func (c *CachedProvider) Fetch(ctx context.Context, dataset string) ([]game.Raw, error) {
	if raws, ok := c.lru.Get(dataset); ok {
		metrics.DatasetCacheHits.Inc()
		return raws, nil
	}
	raws, err := c.next.Fetch(ctx, dataset)
	if err != nil {
		c.lru.Remove(dataset)
		return nil, err
	}
	if len(raws) > 0 {
		c.lru.Add(dataset, raws)
	}
	return raws, nil
}

// Invalidate drops dataset from the cache.
func (c *CachedProvider) Invalidate(dataset string) {
	c.lru.Remove(dataset)
}

// Purge empties the cache.
func (c *CachedProvider) Purge() {
	c.lru.Purge()
}
