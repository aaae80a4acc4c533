package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/duccv/shop-admin/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient connects to Redis as configured. It returns a nil client
// and no error when Redis is disabled.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (redis.UniversalClient, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	var client redis.UniversalClient
	switch strings.ToUpper(cfg.Type) {
	case "", "NORMAL":
		client = redis.NewClient(&redis.Options{
			Addr:     cfg.Addrs,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	case "SENTINEL":
		client = redis.NewFailoverClient(&redis.FailoverOptions{
			SentinelAddrs: strings.Fields(cfg.Addrs),
			MasterName:    cfg.MasterName,
			Password:      cfg.Password,
			DB:            cfg.DB,
			ReadTimeout:   100 * time.Millisecond,
		})
	default:
		return nil, fmt.Errorf("invalid redis type %q: must be NORMAL or SENTINEL", cfg.Type)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	zap.L().Info("Connected to Redis", zap.String("type", cfg.Type), zap.String("addrs", cfg.Addrs))
	return client, nil
}
