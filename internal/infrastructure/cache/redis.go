// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/port"
)

// RedisCache shares cached values between instances
type RedisCache struct {
	client *redis.Client
}

// Get implements the Cache interface
func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached value: %w", err)
	}
	return true, nil
}

// Set implements the Cache interface
func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cached value: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// NewRedisCache connects to the redis server of the URL, e.g. redis://localhost:6379/0
func NewRedisCache(ctx context.Context, url string) (port.Cache, error) {
	if url == "" {
		url = "redis://localhost:6379/0"
		slog.WarnContext(ctx, "REDIS_URL not set, using default", "url", url)
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	slog.InfoContext(ctx, "redis cache connected", "addr", opts.Addr)
	return &RedisCache{client: client}, nil
}
