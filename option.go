package rescache

import (
	"io"
	"log/slog"

	"github.com/bjaus/rescache/metrics"
)

const (
	// DefaultPreloadConcurrency is the default number of concurrent loads
	// started by Preload.
	DefaultPreloadConcurrency = 4
)

type config struct {
	clock              Clock
	logger             *slog.Logger
	metrics            metrics.CacheMetrics
	preloadConcurrency int
	onEvict            func(string, Resource)
	onHit              func(string, Resource)
	onMiss             func(string)
	onRelease          func(Resource)
}

func defaultConfig() config {
	return config{
		clock:              realClock{},
		logger:             slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics:            metrics.NopCacheMetrics(),
		preloadConcurrency: DefaultPreloadConcurrency,
	}
}

// Option configures a Cache.
type Option func(*config)

// WithClock sets the clock used to stamp last access times.
// Useful for testing recency ordering.
func WithClock(clk Clock) Option {
	return func(c *config) {
		if clk != nil {
			c.clock = clk
		}
	}
}

// WithLogger sets the structured logger. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics sets the instrumentation backend.
func WithMetrics(m metrics.CacheMetrics) Option {
	return func(c *config) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithPreloadConcurrency bounds the number of loads Preload runs at once.
func WithPreloadConcurrency(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.preloadConcurrency = n
		}
	}
}

// OnEvict sets a callback invoked when an entry is evicted to make room.
// It is not called for Remove or Clear.
//
// OnEvict, OnHit and OnMiss run with the cache lock held and must not call
// back into the Cache.
func OnEvict(fn func(key string, r Resource)) Option {
	return func(c *config) {
		c.onEvict = fn
	}
}

// OnHit sets a callback invoked on cache hits.
func OnHit(fn func(key string, r Resource)) Option {
	return func(c *config) {
		c.onHit = fn
	}
}

// OnMiss sets a callback invoked when a lookup has to go to the loader.
func OnMiss(fn func(key string)) Option {
	return func(c *config) {
		c.onMiss = fn
	}
}

// OnRelease sets a callback invoked once the last owner of a resource
// (the cache entry or any caller Handle) releases it. It may run with the
// cache lock held and must not call back into the Cache.
func OnRelease(fn func(r Resource)) Option {
	return func(c *config) {
		c.onRelease = fn
	}
}
