package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Cached memoizes successful fetches of an inner Fetcher for ttl.
// Failed results are never cached.
type Cached struct {
	inner   Fetcher
	ttl     time.Duration
	columns *ristretto.Cache[string, ColumnSet]
	counts  *ristretto.Cache[string, RowCount]
}

// NewCached wraps inner. Call Close to release the caches.
func NewCached(inner Fetcher, ttl time.Duration) (*Cached, error) {
	columns, err := ristretto.NewCache(&ristretto.Config[string, ColumnSet]{
		NumCounters: 1e4,
		MaxCost:     1 << 16,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create column cache: %w", err)
	}
	counts, err := ristretto.NewCache(&ristretto.Config[string, RowCount]{
		NumCounters: 1e4,
		MaxCost:     1 << 16,
		BufferItems: 64,
	})
	if err != nil {
		columns.Close()
		return nil, fmt.Errorf("failed to create count cache: %w", err)
	}
	return &Cached{inner: inner, ttl: ttl, columns: columns, counts: counts}, nil
}

func (c *Cached) Columns(ctx context.Context, loc Locator) ColumnSet {
	key := cacheKey(loc)
	if v, ok := c.columns.Get(key); ok {
		return v
	}
	v := c.inner.Columns(ctx, loc)
	if v.Status != StatusFailed {
		c.columns.SetWithTTL(key, v, int64(len(v.Columns))+1, c.ttl)
		c.columns.Wait()
	}
	return v
}

func (c *Cached) RowCount(ctx context.Context, loc Locator) RowCount {
	key := cacheKey(loc)
	if v, ok := c.counts.Get(key); ok {
		return v
	}
	v := c.inner.RowCount(ctx, loc)
	if v.Status != StatusFailed {
		c.counts.SetWithTTL(key, v, 1, c.ttl)
		c.counts.Wait()
	}
	return v
}

func (c *Cached) Close() {
	c.columns.Close()
	c.counts.Close()
}

func cacheKey(loc Locator) string {
	return loc.Database + "\x00" + loc.Schema + "\x00" + loc.Table
}

var _ Fetcher = (*Cached)(nil)
