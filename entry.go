package rescache

import "time"

type entry struct {
	key         string
	ref         *shared
	lastAccess  time.Time
	accessCount int64 // informational, not used for eviction
}

func (e *entry) touch(now time.Time) {
	e.lastAccess = now
	e.accessCount++
}

func (e *entry) info() EntryInfo {
	return EntryInfo{
		Key:         e.key,
		Kind:        e.ref.value.Kind(),
		LastAccess:  e.lastAccess,
		AccessCount: e.accessCount,
	}
}

// EntryInfo is a point-in-time copy of an entry's bookkeeping.
type EntryInfo struct {
	Key         string
	Kind        Kind
	LastAccess  time.Time
	AccessCount int64
}
