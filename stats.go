package rescache

import "sync/atomic"

// Stats holds cache statistics using atomic counters for lock-free updates.
type Stats struct {
	hits         atomic.Int64
	misses       atomic.Int64
	evictions    atomic.Int64
	loads        atomic.Int64
	loadFailures atomic.Int64
	typeMismatch atomic.Int64
}

func (s *Stats) hit()      { s.hits.Add(1) }
func (s *Stats) miss()     { s.misses.Add(1) }
func (s *Stats) evict()    { s.evictions.Add(1) }
func (s *Stats) load()     { s.loads.Add(1) }
func (s *Stats) loadFail() { s.loadFailures.Add(1) }
func (s *Stats) mismatch() { s.typeMismatch.Add(1) }

// Snapshot is a point-in-time copy of cache statistics.
type Snapshot struct {
	Hits           int64 `json:"hits"`
	Misses         int64 `json:"misses"`
	Evictions      int64 `json:"evictions"`
	Loads          int64 `json:"loads"`
	LoadFailures   int64 `json:"load_failures"`
	TypeMismatches int64 `json:"type_mismatches"`
}

// HitRate returns the cache hit rate as a value between 0 and 1.
// Returns 0 if there have been no accesses.
func (s Snapshot) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Snapshot returns a point-in-time copy of the stats.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Hits:           s.hits.Load(),
		Misses:         s.misses.Load(),
		Evictions:      s.evictions.Load(),
		Loads:          s.loads.Load(),
		LoadFailures:   s.loadFailures.Load(),
		TypeMismatches: s.typeMismatch.Load(),
	}
}
