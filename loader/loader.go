package loader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/bjaus/rescache"
)

// Classify maps a key to the resource kind its suffix denotes.
func Classify(key string) (rescache.Kind, error) {
	switch strings.ToLower(path.Ext(key)) {
	case ".png":
		return rescache.KindTexture, nil
	case ".wav":
		return rescache.KindSound, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedKind, key)
	}
}

// Source fetches the raw bytes stored under a key.
// Implementations return an error wrapping ErrNotFound for unknown keys.
type Source interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}

type config struct {
	logger  *slog.Logger
	maxSize int
}

// Option configures a loader created by New.
type Option func(*config)

// WithLogger sets the structured logger. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxSize rejects assets larger than n bytes with ErrTooLarge.
func WithMaxSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxSize = n
		}
	}
}

// New returns a Loader that classifies the key, fetches its bytes from src
// and decodes them into the matching resource type.
func New(src Source, opts ...Option) rescache.Loader {
	cfg := config{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(ctx context.Context, key string) (rescache.Resource, error) {
		kind, err := Classify(key)
		if err != nil {
			return nil, err
		}

		data, err := src.Fetch(ctx, key)
		if err != nil {
			return nil, err
		}
		if cfg.maxSize > 0 && len(data) > cfg.maxSize {
			return nil, fmt.Errorf("%w: %q is %d bytes, limit %d", ErrTooLarge, key, len(data), cfg.maxSize)
		}

		var r rescache.Resource
		switch kind {
		case rescache.KindTexture:
			r, err = DecodeTexture(key, data)
		case rescache.KindSound:
			r, err = DecodeSound(key, data)
		}
		if err != nil {
			return nil, err
		}

		cfg.logger.DebugContext(ctx, "asset decoded",
			"key", key,
			"kind", kind.String(),
			"bytes", len(data),
		)
		return r, nil
	}
}

// Static returns a Loader serving a fixed set of resources.
// The map is copied; later changes to it are not observed.
func Static(resources map[string]rescache.Resource) rescache.Loader {
	m := make(map[string]rescache.Resource, len(resources))
	for k, v := range resources {
		m[k] = v
	}
	return func(_ context.Context, key string) (rescache.Resource, error) {
		r, ok := m[key]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
		}
		return r, nil
	}
}
