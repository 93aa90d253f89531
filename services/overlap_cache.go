// file: services/overlap_cache.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"MYR/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	overlapEpochKey   = "overlap:epoch"
	overlapGridPrefix = "overlap:grid:"
)

// OverlapCache stores computed grids. Implementations never fail the caller: a miss
// and a backend error both mean "recompute".
//
// Lookup hands out the epoch current at read time; Store writes under that epoch, so
// a grid computed before an invalidation can never be served after it.
type OverlapCache interface {
	Lookup(ctx context.Context, teamID uint32) (grid models.OverlapGrid, epoch string, ok bool)
	Store(ctx context.Context, teamID uint32, epoch string, grid models.OverlapGrid)
	InvalidateAll(ctx context.Context)
}

type NopOverlapCache struct{}

func (NopOverlapCache) Lookup(context.Context, uint32) (models.OverlapGrid, string, bool) {
	return models.OverlapGrid{}, "", false
}
func (NopOverlapCache) Store(context.Context, uint32, string, models.OverlapGrid) {}
func (NopOverlapCache) InvalidateAll(context.Context)                             {}

// RedisOverlapCache keeps grids under overlap:grid:<epoch>:<teamID> with a short TTL.
type RedisOverlapCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

// NewOverlapCache falls back to a no-op cache when rdb is nil or ttl is not positive.
func NewOverlapCache(rdb *redis.Client, ttl time.Duration, log *zap.Logger) OverlapCache {
	if rdb == nil || ttl <= 0 {
		return NopOverlapCache{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisOverlapCache{rdb: rdb, ttl: ttl, log: log}
}

func overlapGridKey(epoch string, teamID uint32) string {
	return fmt.Sprintf("%s%s:%d", overlapGridPrefix, epoch, teamID)
}

func (c *RedisOverlapCache) epoch(ctx context.Context) (string, error) {
	e, err := c.rdb.Get(ctx, overlapEpochKey).Result()
	if err == redis.Nil {
		return "0", nil
	}
	return e, err
}

func (c *RedisOverlapCache) Lookup(ctx context.Context, teamID uint32) (models.OverlapGrid, string, bool) {
	var grid models.OverlapGrid
	epoch, err := c.epoch(ctx)
	if err != nil {
		c.log.Warn("overlap cache epoch read failed", zap.Error(err))
		return grid, "", false
	}
	val, err := c.rdb.Get(ctx, overlapGridKey(epoch, teamID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("overlap cache read failed", zap.Uint32("team_id", teamID), zap.Error(err))
		}
		return grid, epoch, false
	}
	if err := json.Unmarshal(val, &grid); err != nil {
		return grid, epoch, false
	}
	return grid, epoch, true
}

func (c *RedisOverlapCache) Store(ctx context.Context, teamID uint32, epoch string, grid models.OverlapGrid) {
	if epoch == "" {
		return
	}
	data, err := json.Marshal(grid)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, overlapGridKey(epoch, teamID), data, c.ttl).Err(); err != nil {
		c.log.Warn("overlap cache write failed", zap.Uint32("team_id", teamID), zap.Error(err))
	}
}

func (c *RedisOverlapCache) InvalidateAll(ctx context.Context) {
	if err := c.rdb.Incr(ctx, overlapEpochKey).Err(); err != nil {
		c.log.Warn("overlap cache epoch bump failed", zap.Error(err))
	}
	// Old-epoch grids are unreachable now; dropping them just frees memory early.
	keys, err := c.rdb.Keys(ctx, overlapGridPrefix+"*").Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("overlap cache cleanup failed", zap.Error(err))
		return
	}
	c.log.Debug("cleared overlap cache", zap.Int("keys", len(keys)))
}
