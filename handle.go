package rescache

import "sync/atomic"

// shared is the reference-counted cell behind every Handle.
// The cache owns one reference while the entry is present; each Handle
// returned to a caller owns another.
type shared struct {
	value     Resource
	refs      atomic.Int64
	onRelease func(Resource)
}

func newShared(v Resource, onRelease func(Resource)) *shared {
	s := &shared{value: v, onRelease: onRelease}
	s.refs.Store(1)
	return s
}

func (s *shared) retain(n int64) {
	s.refs.Add(n)
}

func (s *shared) release() {
	if s.refs.Add(-1) != 0 {
		return
	}
	if s.onRelease != nil {
		s.onRelease(s.value)
	}
}

// Handle is one owner of a shared resource value. The value stays alive
// until every Handle and the cache entry that produced it have released it.
//
// A Handle must not be copied by assignment to create a second owner;
// use Clone. Release is idempotent for a given Handle variable.
type Handle[R Resource] struct {
	s     *shared
	value R
}

func newHandle[R Resource](s *shared, v R) Handle[R] {
	return Handle[R]{s: s, value: v}
}

// Value returns the resource. The zero value is returned after Release.
func (h Handle[R]) Value() R {
	return h.value
}

// Valid reports whether the handle still owns a reference.
func (h Handle[R]) Valid() bool {
	return h.s != nil
}

// Clone returns a new, independent owner of the same value.
func (h Handle[R]) Clone() Handle[R] {
	if h.s == nil {
		return Handle[R]{}
	}
	h.s.retain(1)
	return Handle[R]{s: h.s, value: h.value}
}

// Release drops this handle's reference. When the last reference is gone
// the OnRelease hook of the owning cache fires.
func (h *Handle[R]) Release() {
	if h.s == nil {
		return
	}
	s := h.s
	var zero R
	h.s = nil
	h.value = zero
	s.release()
}

// Same reports whether both handles refer to the same shared value.
func (h Handle[R]) Same(other Handle[R]) bool {
	return h.s != nil && h.s == other.s
}

// Refs returns the current number of owners, including the cache entry if
// it is still present. Returns 0 for a released handle.
func (h Handle[R]) Refs() int64 {
	if h.s == nil {
		return 0
	}
	return h.s.refs.Load()
}
