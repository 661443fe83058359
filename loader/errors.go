package loader

import "errors"

var (
	// ErrUnsupportedKind is returned for keys whose suffix maps to no resource kind.
	ErrUnsupportedKind = errors.New("loader: unsupported resource kind")

	// ErrNotFound is returned by a Source when no data exists for a key.
	ErrNotFound = errors.New("loader: resource not found")

	// ErrMalformed is returned when asset bytes cannot be decoded.
	ErrMalformed = errors.New("loader: malformed resource")

	// ErrTooLarge is returned when an asset exceeds the configured size limit.
	ErrTooLarge = errors.New("loader: resource too large")

	// ErrRedisNotReady is returned by ConnectRedis when no attempt succeeded.
	ErrRedisNotReady = errors.New("loader: redis did not become ready")
)
