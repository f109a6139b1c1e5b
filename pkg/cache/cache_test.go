package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type page struct {
	Items []string `json:"items"`
	Total int      `json:"total"`
}

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "k", page{Items: []string{"a"}, Total: 1}, time.Minute))

	var got page
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, page{Items: []string{"a"}, Total: 1}, got)

	found, err = c.Get(ctx, "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", 1, time.Hour))

	var v int
	found, _ := c.Get(ctx, "k", &v)
	assert.True(t, found)

	now = now.Add(time.Hour)
	found, _ = c.Get(ctx, "k", &v)
	assert.False(t, found)
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_DeletePattern(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "courses:list:page=1", 1, 0))
	require.NoError(t, c.Set(ctx, "courses:list:page=2:q=ml", 2, 0))
	require.NoError(t, c.Set(ctx, "cart:abc:items", 3, 0))

	require.NoError(t, c.DeletePattern(ctx, "courses:list:*"))

	var v int
	found, _ := c.Get(ctx, "courses:list:page=1", &v)
	assert.False(t, found)
	found, _ = c.Get(ctx, "courses:list:page=2:q=ml", &v)
	assert.False(t, found)
	found, _ = c.Get(ctx, "cart:abc:items", &v)
	assert.True(t, found)
}

func TestMemoryCache_DeletePatternCrossesSlashes(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "courses:list:page=1:q=ai/ml:cat=*:low=0", 1, 0))
	require.NoError(t, c.Set(ctx, "courses:list:page=1:q=a/b/c:cat=2:low=1", 2, 0))

	require.NoError(t, c.DeletePattern(ctx, "courses:list:*"))
	assert.Equal(t, 0, c.Len())
}

func TestGlobMatch(t *testing.T) {
	cases := []struct {
		pattern string
		key     string
		want    bool
	}{
		{"courses:list:*", "courses:list:", true},
		{"courses:list:*", "courses:list:q=ai/ml", true},
		{"courses:list:*", "courses:lis", false},
		{"*", "", true},
		{"a*b*c", "axxbyyc", true},
		{"a*b*c", "axxbyy", false},
		{"h?llo", "hello", true},
		{"h?llo", "hllo", false},
		{"h[ae]llo", "hallo", true},
		{"h[ae]llo", "hillo", false},
		{"h[^e]llo", "hallo", true},
		{"h[^e]llo", "hello", false},
		{"h[a-c]llo", "hbllo", true},
		{"h[a-c]llo", "hdllo", false},
		{`h\*llo`, "h*llo", true},
		{`h\*llo`, "hello", false},
		{"h[llo", "h[llo", true},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, globMatch(tc.pattern, tc.key), "%q ~ %q", tc.pattern, tc.key)
	}
}

func TestGetOrCompute_HitSkipsProducer(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	calls := 0
	producer := func(ctx context.Context) (page, error) {
		calls++
		return page{Items: []string{"x"}, Total: 1}, nil
	}

	first, err := GetOrCompute(ctx, c, "key", time.Minute, producer)
	require.NoError(t, err)
	second, err := GetOrCompute(ctx, c, "key", time.Minute, producer)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestGetOrCompute_ErrorIsNotCached(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	storeDown := errors.New("store unavailable")

	_, err := GetOrCompute(ctx, c, "key", time.Minute, func(ctx context.Context) (page, error) {
		return page{}, storeDown
	})
	assert.ErrorIs(t, err, storeDown)
	assert.Equal(t, 0, c.Len())

	got, err := GetOrCompute(ctx, c, "key", time.Minute, func(ctx context.Context) (page, error) {
		return page{Total: 7}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, got.Total)
}

type brokenCache struct{ MemoryCache }

func (b *brokenCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, errors.New("connection refused")
}

func (b *brokenCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return errors.New("connection refused")
}

func TestGetOrCompute_BrokenCacheFallsBackToProducer(t *testing.T) {
	c := &brokenCache{}
	got, err := GetOrCompute(context.Background(), c, "key", time.Minute, func(ctx context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}
