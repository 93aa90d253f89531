// file: database/redis.go
package database

import (
	"context"
	"fmt"
	"time"

	"MYR/config"

	"github.com/redis/go-redis/v9"
)

// NewRedis returns nil when redis is disabled; callers treat a nil client as "no cache".
func NewRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if !cfg.RedisEnabled {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		PoolSize: 100,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
	}
	return rdb, nil
}
