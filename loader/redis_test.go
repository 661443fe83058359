package loader

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/rescache"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisSource(t *testing.T) {
	_, client := newRedis(t)
	src := NewRedisSource(client, "assets:")
	ctx := context.Background()

	require.NoError(t, src.Put(ctx, "a.png", []byte("bytes")))

	got, err := client.Get(ctx, "assets:a.png").Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("bytes"), got)

	data, err := src.Fetch(ctx, "a.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("bytes"), data)

	_, err = src.Fetch(ctx, "b.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisSource_ServerDown(t *testing.T) {
	mr, client := newRedis(t)
	src := NewRedisSource(client, "")
	mr.Close()

	_, err := src.Fetch(context.Background(), "a.png")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestRedisSource_WithCache(t *testing.T) {
	_, client := newRedis(t)
	src := NewRedisSource(client, "assets:")
	ctx := context.Background()
	require.NoError(t, src.Put(ctx, "jump.wav", wavBytes(11025, 1, 8, make([]byte, 11025))))

	cache, err := rescache.New(4, New(src))
	require.NoError(t, err)

	snd, err := rescache.GetTyped[*rescache.Sound](ctx, cache, "jump.wav")
	require.NoError(t, err)
	defer snd.Release()
	assert.Equal(t, time.Second, snd.Value().Duration())
}

func TestConnectRedis(t *testing.T) {
	mr, _ := newRedis(t)

	client, err := ConnectRedis(context.Background(), RedisConfig{
		URL:           "redis://" + mr.Addr() + "/0",
		RetryAttempts: 2,
		RetryInterval: 10 * time.Millisecond,
	})
	require.NoError(t, err)
	defer client.Close()
	assert.NoError(t, client.Ping(context.Background()).Err())
}

func TestConnectRedis_BadURL(t *testing.T) {
	_, err := ConnectRedis(context.Background(), RedisConfig{URL: "not-a-url"})
	require.Error(t, err)
}

func TestConnectRedis_NotReady(t *testing.T) {
	mr, _ := newRedis(t)
	addr := mr.Addr()
	mr.Close()

	_, err := ConnectRedis(context.Background(), RedisConfig{
		URL:           "redis://" + addr + "/0",
		RetryAttempts: 2,
		RetryInterval: 5 * time.Millisecond,
	})
	assert.ErrorIs(t, err, ErrRedisNotReady)
}

func TestConnectRedis_LastAttemptReturnsCause(t *testing.T) {
	mr, _ := newRedis(t)
	addr := mr.Addr()
	mr.Close()

	start := time.Now()
	_, err := ConnectRedis(context.Background(), RedisConfig{
		URL:           "redis://" + addr + "/0",
		RetryAttempts: 1,
		RetryInterval: time.Hour,
	})
	require.ErrorIs(t, err, ErrRedisNotReady)
	assert.Contains(t, err.Error(), addr)
	assert.Less(t, time.Since(start), time.Minute)
}
