// Package prometheus provides a Prometheus implementation of
// metrics.CacheMetrics.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bjaus/rescache/metrics"
)

const namespace = "rescache"

// Default histogram buckets for load latency (in seconds).
var defaultBuckets = []float64{
	.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5,
}

// timer wraps a Prometheus observer to implement metrics.Timer.
type timer struct {
	h     prometheus.Observer
	start time.Time
}

func (t *timer) ObserveDuration() {
	t.h.Observe(time.Since(t.start).Seconds())
}

type cacheMetrics struct {
	hits         *prometheus.CounterVec
	misses       prometheus.Counter
	evictions    *prometheus.CounterVec
	loadDuration prometheus.Histogram
	loadFailures prometheus.Counter
	typeMismatch prometheus.Counter
	entries      prometheus.Gauge
}

// NewCacheMetrics creates and registers the cache collectors on reg.
func NewCacheMetrics(reg prometheus.Registerer) metrics.CacheMetrics {
	m := &cacheMetrics{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hits_total",
			Help:      "Total number of cache hits",
		}, []string{"kind"}),

		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "misses_total",
			Help:      "Total number of lookups that went to the loader",
		}),

		evictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evictions_total",
			Help:      "Total number of entries evicted to satisfy capacity",
		}, []string{"kind"}),

		loadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Loader latency in seconds",
			Buckets:   defaultBuckets,
		}),

		loadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_failures_total",
			Help:      "Total number of loader calls that produced no resource",
		}),

		typeMismatch: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "type_mismatches_total",
			Help:      "Total number of typed lookups that found another kind",
		}),

		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entries",
			Help:      "Current number of cached entries",
		}),
	}

	reg.MustRegister(
		m.hits,
		m.misses,
		m.evictions,
		m.loadDuration,
		m.loadFailures,
		m.typeMismatch,
		m.entries,
	)
	return m
}

func (m *cacheMetrics) Hit(kind string)      { m.hits.WithLabelValues(kind).Inc() }
func (m *cacheMetrics) Miss()                { m.misses.Inc() }
func (m *cacheMetrics) Eviction(kind string) { m.evictions.WithLabelValues(kind).Inc() }
func (m *cacheMetrics) LoadFailure()         { m.loadFailures.Inc() }
func (m *cacheMetrics) TypeMismatch()        { m.typeMismatch.Inc() }
func (m *cacheMetrics) Entries(n int)        { m.entries.Set(float64(n)) }

func (m *cacheMetrics) LoadDuration() metrics.Timer {
	return &timer{h: m.loadDuration, start: time.Now()}
}

var _ metrics.CacheMetrics = (*cacheMetrics)(nil)
