package rescache

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// Loader produces the resource stored under key. The cache never constructs
// resources itself. At most one call per key is in flight at a time.
type Loader func(ctx context.Context, key string) (Resource, error)

// Cache is a bounded, concurrent cache of shared resources with
// least-recently-used eviction.
type Cache struct {
	mu       sync.Mutex
	entries  *simplelru.LRU[string, *entry]
	flights  map[string]*flight
	capacity int
	loader   Loader
	cfg      config
	stats    Stats
}

// flight tracks one in-progress load. Every caller that joins it receives
// the same outcome.
type flight struct {
	done    chan struct{}
	ref     *shared
	err     error
	waiters int // guarded by Cache.mu; joiners besides the leader
}

// New creates a Cache holding at most capacity entries, populated on demand
// by loader.
func New(capacity int, loader Loader, opts ...Option) (*Cache, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be at least 1, got %d", ErrInvalidConfig, capacity)
	}
	if loader == nil {
		return nil, fmt.Errorf("%w: loader is required", ErrInvalidConfig)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	// Eviction is driven explicitly so the cache can release its reference;
	// the index itself never reaches its size limit.
	entries, err := simplelru.NewLRU[string, *entry](capacity, nil)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	return &Cache{
		entries:  entries,
		flights:  make(map[string]*flight),
		capacity: capacity,
		loader:   loader,
		cfg:      cfg,
	}, nil
}

// Get returns a new owner of the resource stored under key, loading it on a
// miss. The caller must Release the handle when done.
//
// On a miss with the cache full, one least-recently-used entry is evicted
// before the loader runs. That eviction stands even if the load fails.
func (c *Cache) Get(ctx context.Context, key string) (Handle[Resource], error) {
	s, err := c.acquire(ctx, key, projection{})
	if err != nil {
		return Handle[Resource]{}, err
	}
	return newHandle(s, s.value), nil
}

// GetTyped is like Get but narrows the result to R. If the resource under
// key is not an R, it returns ErrTypeMismatch; a present entry is left
// untouched, and a freshly loaded one stays cached under its true type.
func GetTyped[R Resource](ctx context.Context, c *Cache, key string) (Handle[R], error) {
	p := projectionOf[R]()
	s, err := c.acquire(ctx, key, p)
	if err != nil {
		return Handle[R]{}, err
	}
	v, ok := s.value.(R)
	if !ok {
		s.release()
		return Handle[R]{}, mismatchError(key, s.value, p.target)
	}
	return newHandle(s, v), nil
}

// projection restricts a lookup to resources assignable to one type.
// The zero projection accepts every resource.
type projection struct {
	target any
	match  func(Resource) bool
}

func projectionOf[R Resource]() projection {
	var zero R
	return projection{
		target: zero,
		match: func(r Resource) bool {
			_, ok := r.(R)
			return ok
		},
	}
}

func (p projection) accepts(r Resource) bool {
	return p.match == nil || p.match(r)
}

// acquire returns the shared cell for key with one reference taken on behalf
// of the caller. Resources that want does not accept are rejected with
// ErrTypeMismatch.
func (c *Cache) acquire(ctx context.Context, key string, want projection) (*shared, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}

	c.mu.Lock()
	if e, ok := c.entries.Peek(key); ok {
		s, err := c.hitLocked(e, want)
		c.mu.Unlock()
		return s, err
	}

	c.stats.miss()
	c.cfg.metrics.Miss()
	if c.cfg.onMiss != nil {
		c.cfg.onMiss(key)
	}

	if f, ok := c.flights[key]; ok {
		f.waiters++
		c.mu.Unlock()
		return c.wait(ctx, key, f, want)
	}

	f := &flight{done: make(chan struct{})}
	c.flights[key] = f
	if c.entries.Len() >= c.capacity {
		c.evictOldestLocked()
	}
	c.mu.Unlock()

	s, err := c.load(ctx, key, f)
	if err != nil {
		return nil, err
	}
	return c.check(key, s, want)
}

// Must be called with lock held.
func (c *Cache) hitLocked(e *entry, want projection) (*shared, error) {
	if !want.accepts(e.ref.value) {
		c.stats.mismatch()
		c.cfg.metrics.TypeMismatch()
		return nil, mismatchError(e.key, e.ref.value, want.target)
	}

	c.entries.Get(e.key)
	e.touch(c.cfg.clock.Now())
	e.ref.retain(1)

	c.stats.hit()
	c.cfg.metrics.Hit(e.ref.value.Kind().String())
	if c.cfg.onHit != nil {
		c.cfg.onHit(e.key, e.ref.value)
	}
	return e.ref, nil
}

func (c *Cache) wait(ctx context.Context, key string, f *flight, want projection) (*shared, error) {
	select {
	case <-f.done:
	case <-ctx.Done():
		c.mu.Lock()
		select {
		case <-f.done:
			// resolved while giving up; the reference reserved for us is ours to drop
			c.mu.Unlock()
			if f.err == nil {
				f.ref.release()
			}
		default:
			f.waiters--
			c.mu.Unlock()
		}
		return nil, fmt.Errorf("%w: %q: %w", ErrLoadFailure, key, ctx.Err())
	}

	if f.err != nil {
		return nil, f.err
	}
	return c.check(key, f.ref, want)
}

// load runs the loader as the flight leader and publishes the outcome.
func (c *Cache) load(ctx context.Context, key string, f *flight) (*shared, error) {
	timer := c.cfg.metrics.LoadDuration()
	r, err := c.callLoader(ctx, key)
	timer.ObserveDuration()
	c.stats.load()

	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.flights, key)

	if err != nil {
		f.err = fmt.Errorf("%w: %q: %w", ErrLoadFailure, key, err)
		c.stats.loadFail()
		c.cfg.metrics.LoadFailure()
		c.cfg.logger.WarnContext(ctx, "resource load failed",
			"key", key,
			"error", err,
		)
		close(f.done)
		return nil, f.err
	}

	s := newShared(r, c.cfg.onRelease)
	c.insertLocked(key, s)
	// one reference for the leader and one for each joined waiter
	s.retain(int64(f.waiters) + 1)
	f.ref = s
	close(f.done)

	c.cfg.logger.DebugContext(ctx, "resource loaded",
		"key", key,
		"kind", r.Kind().String(),
		"waiters", f.waiters,
	)
	return s, nil
}

func (c *Cache) callLoader(ctx context.Context, key string) (r Resource, err error) {
	defer func() {
		if p := recover(); p != nil {
			r, err = nil, fmt.Errorf("loader panic: %v", p)
		}
	}()

	r, err = c.loader(ctx, key)
	if err == nil && r == nil {
		err = errors.New("loader returned no resource")
	}
	return r, err
}

func (c *Cache) check(key string, s *shared, want projection) (*shared, error) {
	if want.accepts(s.value) {
		return s, nil
	}
	s.release()
	c.stats.mismatch()
	c.cfg.metrics.TypeMismatch()
	return nil, mismatchError(key, s.value, want.target)
}

func mismatchError(key string, got Resource, want any) error {
	return fmt.Errorf("%w: %q holds a %s, not a %s", ErrTypeMismatch, key, typeName(got), typeName(want))
}

// typeName names the package resource types by kind and anything else by
// its Go type.
func typeName(v any) string {
	switch v.(type) {
	case *Texture:
		return KindTexture.String()
	case *Sound:
		return KindSound.String()
	case nil:
		return "resource"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Must be called with lock held.
func (c *Cache) insertLocked(key string, s *shared) {
	if old, ok := c.entries.Peek(key); ok {
		c.entries.Remove(key)
		old.ref.release()
	}

	// concurrent loads of distinct keys may each have been admitted
	// against the same free slot
	for c.entries.Len() >= c.capacity {
		c.evictOldestLocked()
	}

	c.entries.Add(key, &entry{
		key:         key,
		ref:         s,
		lastAccess:  c.cfg.clock.Now(),
		accessCount: 1,
	})
	c.cfg.metrics.Entries(c.entries.Len())
}

// Must be called with lock held.
func (c *Cache) evictOldestLocked() {
	key, e, ok := c.entries.RemoveOldest()
	if !ok {
		return
	}

	kind := e.ref.value.Kind()
	c.stats.evict()
	c.cfg.metrics.Eviction(kind.String())
	c.cfg.metrics.Entries(c.entries.Len())
	c.cfg.logger.Debug("resource evicted",
		"key", key,
		"kind", kind.String(),
		"access_count", e.accessCount,
	)
	if c.cfg.onEvict != nil {
		c.cfg.onEvict(key, e.ref.value)
	}
	e.ref.release()
}

// Remove drops the entry for key, releasing the cache's reference.
// Handles already given out stay valid.
func (c *Cache) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries.Peek(key)
	if !ok {
		return false
	}
	c.entries.Remove(key)
	c.cfg.metrics.Entries(c.entries.Len())
	e.ref.release()
	return true
}

// Clear removes all entries, releasing the cache's references.
// Loads already in flight are not cancelled and insert when they finish.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.entries.Len()
	if n == 0 {
		return
	}
	for _, key := range c.entries.Keys() {
		if e, ok := c.entries.Peek(key); ok {
			e.ref.release()
		}
	}
	c.entries.Purge()
	c.cfg.metrics.Entries(0)
	c.cfg.logger.Debug("cache cleared", "entries", n)
}

// Contains reports whether key is cached without updating its recency.
func (c *Cache) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.entries.Contains(key)
}

// Peek returns the bookkeeping for key without updating its recency.
func (c *Cache) Peek(key string) (EntryInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries.Peek(key)
	if !ok {
		return EntryInfo{}, false
	}
	return e.info(), true
}

// Keys returns the cached keys from least to most recently used.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.entries.Keys()
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.entries.Len()
}

// Capacity returns the maximum number of entries.
func (c *Cache) Capacity() int {
	return c.capacity
}

// Stats returns a snapshot of cache statistics.
func (c *Cache) Stats() Snapshot {
	return c.stats.Snapshot()
}
