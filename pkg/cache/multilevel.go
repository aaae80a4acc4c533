package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/duccv/shop-admin/config"
	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Loader reads through memory, then Redis, then the source of truth.
// Concurrent misses for one key share a single fetch.
type Loader struct {
	mem          Cache
	redis        redis.UniversalClient
	memTTL       int
	redisTTL     time.Duration
	redisTimeout time.Duration
	group        singleflight.Group
}

// NewLoader builds a Loader. rdb may be nil, in which case only the memory
// layer is used.
func NewLoader(mem Cache, rdb redis.UniversalClient, cfg config.CacheConfig) *Loader {
	l := &Loader{
		mem:          mem,
		redis:        rdb,
		memTTL:       cfg.DefaultTTL,
		redisTTL:     time.Duration(cfg.RedisTTL) * time.Second,
		redisTimeout: time.Duration(cfg.RedisTimeout) * time.Millisecond,
	}
	if l.memTTL <= 0 {
		l.memTTL = 30
	}
	if l.redisTimeout <= 0 {
		l.redisTimeout = 50 * time.Millisecond
	}
	return l
}

// Load returns the cached value for key, calling fetch on a full miss.
// Values found in a lower layer are written back to the upper ones.
func Load[T any](ctx context.Context, l *Loader, key string, fetch func(context.Context) (T, error)) (T, error) {
	if val, ok := l.mem.Get(key); ok {
		if typed, ok := val.(T); ok {
			return typed, nil
		}
	}

	result, err, _ := l.group.Do(key, func() (any, error) {
		if val, ok := l.mem.Get(key); ok {
			if typed, ok := val.(T); ok {
				return typed, nil
			}
		}

		if typed, ok := getRedis[T](ctx, l, key); ok {
			l.mem.SetWithTTL(key, typed, l.memTTL)
			return typed, nil
		}

		fetched, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		l.mem.SetWithTTL(key, fetched, l.memTTL)
		l.setRedis(ctx, key, fetched)
		return fetched, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	typed, ok := result.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache: unexpected type %T for key %q", result, key)
	}
	return typed, nil
}

func getRedis[T any](ctx context.Context, l *Loader, key string) (T, bool) {
	var out T
	if l.redis == nil {
		return out, false
	}

	ctx, cancel := context.WithTimeout(ctx, l.redisTimeout)
	defer cancel()

	raw, err := l.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zap.L().Warn("Redis cache read failed", zap.String("key", key), zap.Error(err))
		}
		return out, false
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		zap.L().Warn("Redis cache entry undecodable", zap.String("key", key), zap.Error(err))
		return out, false
	}
	return out, true
}

func (l *Loader) setRedis(ctx context.Context, key string, value any) {
	if l.redis == nil || l.redisTTL <= 0 {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		zap.L().Warn("Redis cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.redisTimeout)
	defer cancel()

	if err := l.redis.Set(ctx, key, data, l.redisTTL).Err(); err != nil {
		zap.L().Warn("Redis cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops key from both layers.
func (l *Loader) Invalidate(ctx context.Context, key string) {
	l.mem.Delete(key)
	if l.redis == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, l.redisTimeout)
	defer cancel()

	if err := l.redis.Del(ctx, key).Err(); err != nil {
		zap.L().Warn("Redis cache delete failed", zap.String("key", key), zap.Error(err))
	}
}
