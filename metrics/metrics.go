// Package metrics defines the instrumentation interfaces used by the cache so
// that a backend (Prometheus, StatsD, ...) can be plugged in without the cache
// depending on it.
package metrics

// Timer measures the duration of an operation. Call ObserveDuration when
// the operation completes.
type Timer interface {
	ObserveDuration()
}

// CacheMetrics is implemented by instrumentation backends for the resource
// cache. Implementations must be safe for concurrent use.
type CacheMetrics interface {
	// Hit records a cache hit for a resource of the given kind.
	Hit(kind string)
	// Miss records a lookup that had to go to the loader.
	Miss()
	// Eviction records the removal of an entry to satisfy capacity.
	Eviction(kind string)
	// LoadDuration starts timing a loader call.
	LoadDuration() Timer
	// LoadFailure records a loader call that produced no resource.
	LoadFailure()
	// TypeMismatch records a typed lookup that found another kind.
	TypeMismatch()
	// Entries reports the current entry count.
	Entries(n int)
}
