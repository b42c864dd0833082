package mbfc

import (
	"context"
	"time"

	"sitetrust/internal/trustcache"
)

// CachedSource memoizes successful lookups from an underlying Source for
// the cache's validity window. Lookup failures are not cached, so a domain
// that later appears in the upstream source is picked up on the next
// expiry.
type CachedSource struct {
	source Source
	cache  *trustcache.Cache[*Report]
}

// NewCachedSource wraps source with a per-domain cache. A nil now func
// defaults to time.Now.
func NewCachedSource(source Source, ttl time.Duration, now func() time.Time) *CachedSource {
	return &CachedSource{
		source: source,
		cache:  trustcache.New[*Report](ttl, now),
	}
}

func (c *CachedSource) Lookup(ctx context.Context, name string) (*Report, error) {
	if report, ok := c.cache.Get(name); ok {
		return report, nil
	}
	report, err := c.source.Lookup(ctx, name)
	if err != nil {
		return nil, err
	}
	c.cache.Put(name, report)
	return report, nil
}
