package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/Burkhanovich/article-site/pkg/errors"
)

const cacheNamespace = "article-site:"

// CacheRepository stores JSON snapshots. *repository.CacheRepository satisfies it.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// CacheService serves read snapshots that may be slightly stale. Keys are namespaced so the
// Redis database can be shared with the realtime publisher. A nil or disabled service
// always computes.
type CacheService struct {
	repo       CacheRepository
	metrics    *MetricsService
	defaultTTL time.Duration
	logger     *zap.Logger
	enabled    bool
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, defaultTTL time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, defaultTTL: defaultTTL, logger: logger.Named("cache"), enabled: enabled}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// Remember decodes the snapshot stored under key into dest, or runs fill to populate dest and
// stores the result for ttl. It reports whether dest came from the cache. Cache failures are
// logged and never surface; only fill errors are returned.
func (s *CacheService) Remember(ctx context.Context, key string, ttl time.Duration, dest interface{}, fill func(context.Context) error) (bool, error) {
	if !s.Enabled() {
		return false, fill(ctx)
	}
	key = cacheNamespace + key

	start := time.Now()
	err := s.repo.Get(ctx, key, dest)
	s.metrics.RecordCacheOperation(err == nil, time.Since(start))
	switch {
	case err == nil:
		return true, nil
	case !errors.Is(err, appErrors.ErrCacheMiss):
		s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}

	if err := fill(ctx); err != nil {
		return false, err
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	if err := s.repo.Set(ctx, key, dest, ttl); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return false, nil
}

// Forget drops the snapshots stored under keys.
func (s *CacheService) Forget(ctx context.Context, keys ...string) {
	if !s.Enabled() || len(keys) == 0 {
		return
	}
	namespaced := make([]string, len(keys))
	for i, k := range keys {
		namespaced[i] = cacheNamespace + k
	}
	if err := s.repo.Delete(ctx, namespaced...); err != nil {
		s.logger.Warn("cache delete failed", zap.Strings("keys", namespaced), zap.Error(err))
	}
}
