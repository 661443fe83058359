package rescache_test

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bjaus/rescache"
)

func suffixLoader(_ context.Context, key string) (rescache.Resource, error) {
	switch {
	case strings.HasSuffix(key, ".png"):
		return &rescache.Texture{Key: key, Width: 64, Height: 32}, nil
	case strings.HasSuffix(key, ".wav"):
		return &rescache.Sound{Key: key, SampleRate: 44100, Channels: 2, BitsPerSample: 16}, nil
	default:
		return nil, errors.New("unknown resource type")
	}
}

func ExampleCache() {
	ctx := context.Background()
	cache, err := rescache.New(128, suffixLoader)
	if err != nil {
		panic(err)
	}

	h, err := cache.Get(ctx, "hero.png")
	if err != nil {
		panic(err)
	}
	defer h.Release()

	fmt.Println(h.Value().Kind())
	// Output: texture
}

func ExampleGetTyped() {
	ctx := context.Background()
	cache, _ := rescache.New(128, suffixLoader)

	tex, err := rescache.GetTyped[*rescache.Texture](ctx, cache, "hero.png")
	if err != nil {
		panic(err)
	}
	defer tex.Release()
	fmt.Printf("%dx%d\n", tex.Value().Width, tex.Value().Height)

	_, err = rescache.GetTyped[*rescache.Sound](ctx, cache, "hero.png")
	fmt.Println(errors.Is(err, rescache.ErrTypeMismatch))

	// Output:
	// 64x32
	// true
}

func ExampleOnEvict() {
	ctx := context.Background()
	cache, _ := rescache.New(2, suffixLoader,
		rescache.OnEvict(func(key string, r rescache.Resource) {
			fmt.Printf("evicted: %s (%s)\n", key, r.Kind())
		}),
	)

	for _, key := range []string{"a.png", "b.wav", "a.png", "c.png"} {
		h, _ := cache.Get(ctx, key)
		h.Release()
	}

	// Output: evicted: b.wav (sound)
}

func ExampleCache_Stats() {
	ctx := context.Background()
	cache, _ := rescache.New(8, suffixLoader)

	for _, key := range []string{"a.png", "a.png", "notes.txt"} {
		if h, err := cache.Get(ctx, key); err == nil {
			h.Release()
		}
	}

	stats := cache.Stats()
	fmt.Printf("hits: %d, misses: %d, failures: %d\n",
		stats.Hits, stats.Misses, stats.LoadFailures)

	// Output: hits: 1, misses: 2, failures: 1
}
