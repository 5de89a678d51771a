package cache

import (
	"context"
	"testing"
	"time"

	"github.com/shopizer/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryCache_GetSet(t *testing.T) {
	c := NewInMemoryCache()
	defer c.Close()

	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		v, ok, err := c.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("stored value is returned", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "languages", []byte(`["en"]`), time.Hour))

		v, ok, err := c.Get(ctx, "languages")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `["en"]`, string(v))
	})

	t.Run("caller mutation does not leak into cache", func(t *testing.T) {
		buf := []byte("abc")
		require.NoError(t, c.Set(ctx, "k", buf, 0))
		buf[0] = 'z'

		v, _, _ := c.Get(ctx, "k")
		assert.Equal(t, "abc", string(v))
	})

	t.Run("expired value is not returned", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "short", []byte("x"), 10*time.Millisecond))
		time.Sleep(20 * time.Millisecond)

		_, ok, err := c.Get(ctx, "short")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestInMemoryCache_Delete(t *testing.T) {
	c := NewInMemoryCache()
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), 0))
	require.NoError(t, c.Delete(ctx, "a", "b", "c"))
	assert.Equal(t, 0, c.Size())
}

func TestInMemoryCache_Cleanup(t *testing.T) {
	c := NewInMemoryCache()
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "old", []byte("1"), time.Millisecond))
	require.NoError(t, c.Set(ctx, "keep", []byte("2"), 0))
	time.Sleep(5 * time.Millisecond)

	c.cleanup()
	assert.Equal(t, 1, c.Size())
}

func TestInMemoryCache_CloseTwice(t *testing.T) {
	c := NewInMemoryCache()
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}

func TestFactory_CreateCache_NoRedisConfigured(t *testing.T) {
	f := NewFactory(config.RedisConfig{})
	c, err := f.CreateCache()
	require.NoError(t, err)
	defer c.Close()

	_, isMemory := c.(*InMemoryCache)
	assert.True(t, isMemory)
}

func TestFactory_CreateCache_FallbackDisabled(t *testing.T) {
	f := NewFactory(config.RedisConfig{Host: "127.0.0.1", Port: 1}, WithInMemoryFallback(false))
	_, err := f.CreateCache()
	assert.Error(t, err)
}
