package localcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) *Cache {
	t.Helper()
	c, err := New(t.Context(), time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCache_SetGetDelete(t *testing.T) {
	ctx := t.Context()
	c := newCache(t)

	require.NoError(t, c.Set(ctx, "vehicles:search:{}", []byte("payload"), time.Minute))

	value, ok, err := c.Get(ctx, "vehicles:search:{}")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("payload"), value)

	require.NoError(t, c.Delete(ctx, "vehicles:search:{}"))
	require.NoError(t, c.Delete(ctx, "vehicles:search:{}"), "deleting a missing key is not an error")

	_, ok, err = c.Get(ctx, "vehicles:search:{}")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_EntryExpires(t *testing.T) {
	ctx := t.Context()
	c := newCache(t)
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 10*time.Second))

	clock = clock.Add(9 * time.Second)
	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	clock = clock.Add(time.Second)
	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_TTLIsCappedAtLifeWindow(t *testing.T) {
	ctx := t.Context()
	c := newCache(t)
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Hour))

	clock = clock.Add(time.Minute)
	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_DeleteByPrefix(t *testing.T) {
	ctx := t.Context()
	c := newCache(t)

	for _, key := range []string{"routes:search:a", "routes:search:b", "routes:pending", "shipments:search:a"} {
		require.NoError(t, c.Set(ctx, key, []byte(key), time.Minute))
	}

	require.NoError(t, c.DeleteByPrefix(ctx, "routes:"))

	for _, key := range []string{"routes:search:a", "routes:search:b", "routes:pending"} {
		_, ok, err := c.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, key)
	}
	value, ok, err := c.Get(ctx, "shipments:search:a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("shipments:search:a"), value)
}

func TestNew_RejectsNonPositiveLifeWindow(t *testing.T) {
	_, err := New(t.Context(), 0)
	require.Error(t, err)
}
