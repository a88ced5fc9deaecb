package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/segyhp/rental-engine/internal/domain"
)

const settingsKey = "rental-engine:settings"

// store is the subset of the Redis client the cache needs
type store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// SettingsCache keeps the resolved application settings in Redis as JSON
type SettingsCache struct {
	client store
	ttl    time.Duration
}

func NewSettingsCache(client store, ttl time.Duration) *SettingsCache {
	return &SettingsCache{client: client, ttl: ttl}
}

// Get returns false without an error when nothing is cached.
func (c *SettingsCache) Get(ctx context.Context) (*domain.AppSettings, bool, error) {
	raw, err := c.client.Get(ctx, settingsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cached settings: %w", err)
	}

	var settings domain.AppSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil, false, fmt.Errorf("decode cached settings: %w", err)
	}
	return &settings, true, nil
}

func (c *SettingsCache) Set(ctx context.Context, settings *domain.AppSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := c.client.Set(ctx, settingsKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache settings: %w", err)
	}
	return nil
}

func (c *SettingsCache) Delete(ctx context.Context) error {
	if err := c.client.Del(ctx, settingsKey).Err(); err != nil {
		return fmt.Errorf("drop cached settings: %w", err)
	}
	return nil
}

// NewClient opens a Redis client and checks it answers within timeout.
func NewClient(ctx context.Context, addr, password string, db int, timeout time.Duration) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}
