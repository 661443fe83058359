// Package rescache provides a bounded, least-recently-used cache of
// heterogeneous resources (textures, sounds) loaded on demand.
//
// # Overview
//
// A Cache maps keys such as asset paths to shared, reference-counted
// resource values. Values are produced by a caller-supplied Loader on the
// first lookup and reused on every later hit. When the cache is full, the
// entry touched least recently is evicted to make room.
//
// # Basic Usage
//
//	cache, err := rescache.New(256, func(ctx context.Context, key string) (rescache.Resource, error) {
//		return loadAsset(ctx, key)
//	})
//	if err != nil {
//		return err
//	}
//
//	h, err := cache.Get(ctx, "sprites/hero.png")
//	if err != nil {
//		return err
//	}
//	defer h.Release()
//
// # Typed Retrieval
//
// Every entry holds one of a closed set of resource kinds. GetTyped narrows a
// lookup to a concrete type and fails with ErrTypeMismatch, without touching
// the entry, when the key holds another kind:
//
//	tex, err := rescache.GetTyped[*rescache.Texture](ctx, cache, "sprites/hero.png")
//
// # Shared Ownership
//
// Each Handle is an independent owner of the value. Evicting or clearing an
// entry drops only the cache's own reference; a caller still holding a
// Handle keeps using the value. Once the last owner calls Release, the
// OnRelease hook fires so GPU or audio memory can be freed:
//
//	cache, _ := rescache.New(64, loader, rescache.OnRelease(func(r rescache.Resource) {
//		gpu.Free(r)
//	}))
//
// # Eviction
//
// A miss on a full cache evicts one entry before the loader runs. If the
// load then fails, the evicted entry is not restored. Capacity therefore
// bounds peak occupancy, even while loads are in progress.
//
// # Concurrency
//
// All methods are safe for concurrent use. Concurrent misses on the same key
// share a single loader call and all receive its result or its error. The
// loader runs with the context of the first caller; cancelling that context
// fails the load for every waiter. A waiter whose own context is cancelled
// stops waiting without affecting the load.
//
// # Testing
//
// Inject a custom clock to control recorded access times:
//
//	type fakeClock struct{ now time.Time }
//	func (c *fakeClock) Now() time.Time { return c.now }
//
//	cache, _ := rescache.New(8, loader, rescache.WithClock(&fakeClock{}))
package rescache
