package scrape

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/mannigfalter/rategrab/internal/models"
	"github.com/mannigfalter/rategrab/internal/obs"
	"github.com/mannigfalter/rategrab/internal/store"
)

// SupplierFetcher is the network half of a supplier lookup.
type SupplierFetcher interface {
	FetchSupplier(ctx context.Context, itemID int64) (models.Supplier, error)
}

// SupplierResolver answers supplier lookups, consulting the cache first.
type SupplierResolver interface {
	Resolve(ctx context.Context, itemID int64) models.Supplier
}

// SupplierCache memoizes supplier identities by item id. Entries are written
// once on a successful lookup and never evicted or refreshed; the item
// universe is bounded, so unbounded growth is accepted. A lookup that
// exhausts its attempts is NOT recorded — the next scrape retries the id.
type SupplierCache struct {
	fetcher SupplierFetcher
	store   *store.SupplierStore
	metrics *obs.Metrics
	log     *slog.Logger

	attempts  int
	jitterMax time.Duration
	retryWait time.Duration
	rng       *rand.Rand
}

func NewSupplierCache(fetcher SupplierFetcher, st *store.SupplierStore, m *obs.Metrics,
	log *slog.Logger, attempts int, jitterMax, retryWait time.Duration) *SupplierCache {
	return &SupplierCache{
		fetcher:   fetcher,
		store:     st,
		metrics:   m,
		log:       log,
		attempts:  attempts,
		jitterMax: jitterMax,
		retryWait: retryWait,
		rng:       newRNG(1),
	}
}

// Resolve returns the supplier identity for itemID, or nil. A cache hit —
// including a cached null — never touches the network. On a miss, each
// attempt waits a jittered delay first; failed attempts are separated by a
// fixed wait. Only a successful lookup is persisted.
func (c *SupplierCache) Resolve(ctx context.Context, itemID int64) models.Supplier {
	if sup, ok := c.store.Get(itemID); ok {
		c.metrics.IncSupplierCacheHit()
		return sup
	}
	c.metrics.IncSupplierCacheMiss()

	for attempt := 1; attempt <= c.attempts; attempt++ {
		sleep(ctx, jitterBetween(c.rng, 0, c.jitterMax))

		sup, err := c.fetcher.FetchSupplier(ctx, itemID)
		if err == nil {
			if err := c.store.Put(itemID, sup); err != nil {
				c.log.Warn("supplier cache write failed", "item", itemID, "err", err)
			}
			return sup
		}

		c.metrics.IncSupplierRetry()
		c.log.Warn("supplier lookup failed",
			"item", itemID, "attempt", attempt, "err", err)
		if attempt < c.attempts {
			sleep(ctx, c.retryWait)
		}
	}

	c.metrics.IncSupplierFailure()
	c.log.Error("supplier lookup exhausted, continuing without supplier", "item", itemID)
	return nil
}
