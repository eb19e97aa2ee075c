// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/port"

	"golang.org/x/sync/singleflight"
)

const keyPrefix = "blockplus:"

// propertyEntry caches misses too, so unknown sort keys are not looked up
// on every render
type propertyEntry struct {
	Found    bool            `json:"found"`
	Property *model.Property `json:"property,omitempty"`
}

// CachingCatalog caches the catalog definitions read while rendering:
// properties, resource templates and assets. Errors are never cached and a
// failing cache falls through to the catalog. Concurrent misses of the same
// key share one catalog request.
type CachingCatalog struct {
	port.Catalog
	cache port.Cache
	ttl   time.Duration
	group singleflight.Group
}

// FindProperty implements the PropertyFinder interface
func (c *CachingCatalog) FindProperty(ctx context.Context, term string) (*model.Property, error) {
	key := keyPrefix + "property:" + term

	var entry propertyEntry
	if c.lookup(ctx, key, &entry) {
		return entry.Property, nil
	}

	read, err := c.shared(ctx, key, func(ctx context.Context) (any, error) {
		property, err := c.Catalog.FindProperty(ctx, term)
		if err != nil {
			return nil, err
		}
		c.store(ctx, key, propertyEntry{Found: property != nil, Property: property})
		return property, nil
	})
	if err != nil {
		return nil, err
	}
	return read.(*model.Property), nil
}

// ReadResourceTemplate implements the ResourceTemplateReader interface
func (c *CachingCatalog) ReadResourceTemplate(ctx context.Context, id int) (*model.ResourceTemplate, error) {
	key := fmt.Sprintf("%sresource_template:%d", keyPrefix, id)

	var resourceTemplate model.ResourceTemplate
	if c.lookup(ctx, key, &resourceTemplate) {
		return &resourceTemplate, nil
	}

	read, err := c.shared(ctx, key, func(ctx context.Context) (any, error) {
		read, err := c.Catalog.ReadResourceTemplate(ctx, id)
		if err != nil {
			return nil, err
		}
		c.store(ctx, key, read)
		return read, nil
	})
	if err != nil {
		return nil, err
	}
	return read.(*model.ResourceTemplate), nil
}

// ReadAsset implements the ResourceReader interface
func (c *CachingCatalog) ReadAsset(ctx context.Context, id int) (*model.Asset, error) {
	key := fmt.Sprintf("%sasset:%d", keyPrefix, id)

	var asset model.Asset
	if c.lookup(ctx, key, &asset) {
		return &asset, nil
	}

	read, err := c.shared(ctx, key, func(ctx context.Context) (any, error) {
		read, err := c.Catalog.ReadAsset(ctx, id)
		if err != nil {
			return nil, err
		}
		c.store(ctx, key, read)
		return read, nil
	})
	if err != nil {
		return nil, err
	}
	return read.(*model.Asset), nil
}

// shared runs read once for concurrent callers of the same key. read gets a
// context that outlives the cancellation of the caller which started it, so
// one cancelled request does not fail the others; each caller still returns
// when its own context is done.
func (c *CachingCatalog) shared(ctx context.Context, key string, read func(ctx context.Context) (any, error)) (any, error) {
	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		return read(detached)
	})
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *CachingCatalog) lookup(ctx context.Context, key string, dest any) bool {
	found, err := c.cache.Get(ctx, key, dest)
	if err != nil {
		slog.WarnContext(ctx, "catalog cache read failed", "key", key, "error", err)
		return false
	}
	if found {
		slog.DebugContext(ctx, "catalog cache hit", "key", key)
	}
	return found
}

func (c *CachingCatalog) store(ctx context.Context, key string, value any) {
	if err := c.cache.Set(ctx, key, value, c.ttl); err != nil {
		slog.WarnContext(ctx, "catalog cache write failed", "key", key, "error", err)
	}
}

// NewCachingCatalog wraps a catalog with a cache
func NewCachingCatalog(catalog port.Catalog, cache port.Cache, ttl time.Duration) port.Catalog {
	return &CachingCatalog{
		Catalog: catalog,
		cache:   cache,
		ttl:     ttl,
	}
}
