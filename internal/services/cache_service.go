package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleetflow/pkg/logger"
)

// ErrCacheDisabled is returned by every operation when no backend is
// configured. Callers treat it like a miss.
var ErrCacheDisabled = errors.New("cache disabled")

// CacheService is the caching surface the repositories depend on.
// Values are JSON round-tripped by the backend.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	Increment(ctx context.Context, key string) (int64, error)
	Ping(ctx context.Context) error
}

// CacheBackend is satisfied by cache.RedisCache.
type CacheBackend interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	Increment(ctx context.Context, key string) (int64, error)
	SetExpire(ctx context.Context, key string, expiration time.Duration) error
	Ping(ctx context.Context) error
}

type cacheService struct {
	backend    CacheBackend
	logger     *logger.Logger
	keyPrefix  string
	defaultTTL time.Duration
}

// NewCacheService wraps a backend with key prefixing and a default TTL.
// A nil backend yields a service whose reads always miss, so the app
// runs without Redis.
func NewCacheService(backend CacheBackend, log *logger.Logger, keyPrefix string, defaultTTL time.Duration) CacheService {
	return &cacheService{
		backend:    backend,
		logger:     log,
		keyPrefix:  keyPrefix,
		defaultTTL: defaultTTL,
	}
}

func (s *cacheService) buildKey(key string) string {
	if s.keyPrefix == "" {
		return key
	}
	return fmt.Sprintf("%s:%s", s.keyPrefix, key)
}

func (s *cacheService) Get(ctx context.Context, key string, dest interface{}) error {
	if s.backend == nil {
		return ErrCacheDisabled
	}

	if err := s.backend.Get(ctx, s.buildKey(key), dest); err != nil {
		return fmt.Errorf("failed to get cache key %s: %w", key, err)
	}

	s.logger.WithField("cache_key", key).Debug("Cache hit")
	return nil
}

func (s *cacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if s.backend == nil {
		return ErrCacheDisabled
	}

	if expiration == 0 {
		expiration = s.defaultTTL
	}

	if err := s.backend.Set(ctx, s.buildKey(key), value, expiration); err != nil {
		return fmt.Errorf("failed to set cache key %s: %w", key, err)
	}

	s.logger.WithField("cache_key", key).
		WithField("expiration", expiration).
		Debug("Cache set")

	return nil
}

func (s *cacheService) Delete(ctx context.Context, keys ...string) error {
	if s.backend == nil {
		return ErrCacheDisabled
	}

	fullKeys := make([]string, len(keys))
	for i, key := range keys {
		fullKeys[i] = s.buildKey(key)
	}

	if err := s.backend.Delete(ctx, fullKeys...); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}

	s.logger.WithField("cache_keys", keys).Debug("Cache keys deleted")
	return nil
}

func (s *cacheService) Exists(ctx context.Context, key string) (bool, error) {
	if s.backend == nil {
		return false, nil
	}

	exists, err := s.backend.Exists(ctx, s.buildKey(key))
	if err != nil {
		return false, fmt.Errorf("failed to check cache key existence: %w", err)
	}

	return exists, nil
}

func (s *cacheService) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	if s.backend == nil {
		return false, ErrCacheDisabled
	}

	if expiration == 0 {
		expiration = s.defaultTTL
	}

	acquired, err := s.backend.SetNX(ctx, s.buildKey(key), value, expiration)
	if err != nil {
		return false, fmt.Errorf("failed to set cache key if not exists: %w", err)
	}

	return acquired, nil
}

func (s *cacheService) Increment(ctx context.Context, key string) (int64, error) {
	if s.backend == nil {
		return 0, ErrCacheDisabled
	}

	result, err := s.backend.Increment(ctx, s.buildKey(key))
	if err != nil {
		return 0, fmt.Errorf("failed to increment cache key: %w", err)
	}

	return result, nil
}

func (s *cacheService) Ping(ctx context.Context) error {
	if s.backend == nil {
		return ErrCacheDisabled
	}
	return s.backend.Ping(ctx)
}
