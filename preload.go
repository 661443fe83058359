package rescache

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Preload loads keys into the cache, running up to the configured preload
// concurrency at once. Keys already cached only have their recency
// refreshed. Failures do not stop the remaining loads; all of them are
// returned joined.
//
// Preloading more keys than the capacity evicts the earliest ones again.
func (c *Cache) Preload(ctx context.Context, keys ...string) error {
	var (
		mu   sync.Mutex
		errs []error
	)

	var g errgroup.Group
	g.SetLimit(c.cfg.preloadConcurrency)

	for _, key := range keys {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			h, err := c.Get(ctx, key)
			if err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				return nil
			}
			h.Release()
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
