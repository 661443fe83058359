package rescache

import "time"

// Clock provides the timestamps recorded as an entry's last access.
// The default implementation uses time.Now().
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}
