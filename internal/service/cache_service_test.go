package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	Count int `json:"count"`
}

func TestCacheServiceRememberAndForget(t *testing.T) {
	repo := newMemoryCache()
	metrics := NewMetricsService()
	cache := NewCacheService(repo, metrics, time.Minute, nil, true)
	ctx := context.Background()

	fills := 0
	fill := func(dest *snapshot) func(context.Context) error {
		return func(context.Context) error {
			fills++
			dest.Count = 7
			return nil
		}
	}

	var first snapshot
	hit, err := cache.Remember(ctx, "stats", 0, &first, fill(&first))
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 7, first.Count)
	assert.Contains(t, repo.entries, "article-site:stats")

	var second snapshot
	hit, err = cache.Remember(ctx, "stats", 0, &second, fill(&second))
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 7, second.Count)
	assert.Equal(t, 1, fills)

	cache.Forget(ctx, "stats")
	assert.NotContains(t, repo.entries, "article-site:stats")

	snap := metrics.Snapshot()
	assert.EqualValues(t, 1, snap.CacheHits)
	assert.EqualValues(t, 1, snap.CacheMisses)
}

func TestCacheServiceDisabledAlwaysFills(t *testing.T) {
	repo := newMemoryCache()
	for _, cache := range []*CacheService{nil, NewCacheService(repo, nil, time.Minute, nil, false)} {
		var dest snapshot
		hit, err := cache.Remember(context.Background(), "stats", 0, &dest, func(context.Context) error {
			dest.Count = 3
			return nil
		})
		require.NoError(t, err)
		assert.False(t, hit)
		assert.Equal(t, 3, dest.Count)
		cache.Forget(context.Background(), "stats")
	}
	assert.Empty(t, repo.entries)
}

func TestCacheServiceFillErrorIsNotCached(t *testing.T) {
	repo := newMemoryCache()
	cache := NewCacheService(repo, nil, time.Minute, nil, true)

	var dest snapshot
	_, err := cache.Remember(context.Background(), "stats", 0, &dest, func(context.Context) error {
		return errors.New("db down")
	})
	assert.EqualError(t, err, "db down")
	assert.Empty(t, repo.entries)
}
