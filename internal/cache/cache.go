// Package cache is an optional Redis read-through layer over the
// persistence store. Reads are served from Redis inside the TTL; every
// write drops the location's cached entries.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"openhours/internal/model"
)

// Store is the persistence contract the cache decorates.
type Store interface {
	GetWeeklySchedule(ctx context.Context, locationID int64) (model.WeeklySchedule, error)
	ReplaceWeeklySchedule(ctx context.Context, locationID int64, week model.WeeklySchedule) (model.WeeklySchedule, error)
	ListOverrides(ctx context.Context, locationID int64) ([]model.Override, error)
	CreateOverride(ctx context.Context, locationID int64, p model.OverridePayload) (*model.Override, error)
	DeleteOverride(ctx context.Context, locationID, overrideID int64) error
}

// Cached wraps a Store with Redis caching.
type Cached struct {
	store  Store
	redis  *redis.Client
	ttl    time.Duration
	logger *zerolog.Logger
}

// New builds the caching decorator.
func New(store Store, redisClient *redis.Client, ttl time.Duration, logger *zerolog.Logger) *Cached {
	return &Cached{store: store, redis: redisClient, ttl: ttl, logger: logger}
}

func weekKey(locationID int64) string      { return fmt.Sprintf("hours:week:%d", locationID) }
func overridesKey(locationID int64) string { return fmt.Sprintf("hours:overrides:%d", locationID) }

// GetWeeklySchedule serves the weekly schedule from cache when present.
func (c *Cached) GetWeeklySchedule(ctx context.Context, locationID int64) (model.WeeklySchedule, error) {
	var week model.WeeklySchedule
	if c.readCache(ctx, weekKey(locationID), &week) {
		return week, nil
	}

	week, err := c.store.GetWeeklySchedule(ctx, locationID)
	if err != nil {
		return model.WeeklySchedule{}, err
	}
	c.writeCache(ctx, weekKey(locationID), week)
	return week, nil
}

// ReplaceWeeklySchedule writes through and invalidates the location.
func (c *Cached) ReplaceWeeklySchedule(ctx context.Context, locationID int64, week model.WeeklySchedule) (model.WeeklySchedule, error) {
	saved, err := c.store.ReplaceWeeklySchedule(ctx, locationID, week)
	if err != nil {
		return model.WeeklySchedule{}, err
	}
	c.invalidate(ctx, weekKey(locationID))
	return saved, nil
}

// ListOverrides serves the override list from cache when present.
func (c *Cached) ListOverrides(ctx context.Context, locationID int64) ([]model.Override, error) {
	var overrides []model.Override
	if c.readCache(ctx, overridesKey(locationID), &overrides) {
		return overrides, nil
	}

	overrides, err := c.store.ListOverrides(ctx, locationID)
	if err != nil {
		return nil, err
	}
	c.writeCache(ctx, overridesKey(locationID), overrides)
	return overrides, nil
}

// CreateOverride writes through and invalidates the override list.
func (c *Cached) CreateOverride(ctx context.Context, locationID int64, p model.OverridePayload) (*model.Override, error) {
	created, err := c.store.CreateOverride(ctx, locationID, p)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, overridesKey(locationID))
	return created, nil
}

// DeleteOverride writes through and invalidates the override list.
func (c *Cached) DeleteOverride(ctx context.Context, locationID, overrideID int64) error {
	if err := c.store.DeleteOverride(ctx, locationID, overrideID); err != nil {
		return err
	}
	c.invalidate(ctx, overridesKey(locationID))
	return nil
}

func (c *Cached) readCache(ctx context.Context, key string, out any) bool {
	if c.redis == nil || c.ttl <= 0 {
		return false
	}
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return false
	}
	return true
}

func (c *Cached) writeCache(ctx context.Context, key string, v any) {
	if c.redis == nil || c.ttl <= 0 {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil && c.logger != nil {
		c.logger.Debug().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func (c *Cached) invalidate(ctx context.Context, keys ...string) {
	if c.redis == nil {
		return
	}
	if err := c.redis.Del(ctx, keys...).Err(); err != nil && c.logger != nil {
		c.logger.Debug().Err(err).Strs("keys", keys).Msg("cache invalidation failed")
	}
}
