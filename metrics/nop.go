package metrics

type nopTimer struct{}

func (nopTimer) ObserveDuration() {}

type nopCacheMetrics struct{}

func (nopCacheMetrics) Hit(string)          {}
func (nopCacheMetrics) Miss()               {}
func (nopCacheMetrics) Eviction(string)     {}
func (nopCacheMetrics) LoadDuration() Timer { return nopTimer{} }
func (nopCacheMetrics) LoadFailure()        {}
func (nopCacheMetrics) TypeMismatch()       {}
func (nopCacheMetrics) Entries(int)         {}

// NopCacheMetrics returns a CacheMetrics that discards everything.
func NopCacheMetrics() CacheMetrics { return nopCacheMetrics{} }
