// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/port"
)

// MemoryCache is a size bounded in-process cache. Entries expire after the
// TTL given at creation; the per call TTL is ignored.
type MemoryCache struct {
	lru *expirable.LRU[string, []byte]
}

// Get implements the Cache interface
func (c *MemoryCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, ok := c.lru.Get(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.lru.Remove(key)
		return false, fmt.Errorf("failed to decode cached value: %w", err)
	}
	return true, nil
}

// Set implements the Cache interface
func (c *MemoryCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cached value: %w", err)
	}
	c.lru.Add(key, raw)
	return nil
}

// NewMemoryCache creates a cache holding at most size entries for ttl
func NewMemoryCache(size int, ttl time.Duration) port.Cache {
	if size <= 0 {
		size = 1024
	}
	return &MemoryCache{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}
