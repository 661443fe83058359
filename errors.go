package rescache

import "errors"

var (
	// ErrInvalidConfig is returned by New when the capacity or loader is unusable.
	ErrInvalidConfig = errors.New("rescache: invalid config")

	// ErrInvalidKey is returned for an empty key.
	ErrInvalidKey = errors.New("rescache: invalid key")

	// ErrLoadFailure is returned when the loader could not produce a resource.
	// The loader's own error is joined to it.
	ErrLoadFailure = errors.New("rescache: load failed")

	// ErrTypeMismatch is returned by GetTyped when the cached resource is of
	// a different kind than requested.
	ErrTypeMismatch = errors.New("rescache: type mismatch")
)
