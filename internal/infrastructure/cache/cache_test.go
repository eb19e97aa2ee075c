// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/infrastructure/mock"
	pkgerrors "github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingCache struct{}

func (failingCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	return false, errors.New("cache down")
}

func (failingCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return errors.New("cache down")
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(2, time.Minute)

	require.NoError(t, cache.Set(ctx, "a", model.Property{ID: 1, Term: "dcterms:title"}, 0))

	var property model.Property
	found, err := cache.Get(ctx, "a", &property)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "dcterms:title", property.Term)

	found, err = cache.Get(ctx, "missing", &property)
	require.NoError(t, err)
	assert.False(t, found)

	// least recently used entry is evicted past the size
	require.NoError(t, cache.Set(ctx, "b", 2, 0))
	require.NoError(t, cache.Set(ctx, "c", 3, 0))
	found, _ = cache.Get(ctx, "a", &property)
	assert.False(t, found)
}

func TestCachingCatalog(t *testing.T) {
	ctx := context.Background()
	backend := mock.NewMockCatalog()
	catalog := NewCachingCatalog(backend, NewMemoryCache(16, time.Minute), time.Minute)

	for i := 0; i < 3; i++ {
		property, err := catalog.FindProperty(ctx, "dcterms:title")
		require.NoError(t, err)
		assert.Equal(t, "Title", property.Label)

		missing, err := catalog.FindProperty(ctx, "bogus:key")
		require.NoError(t, err)
		assert.Nil(t, missing)

		resourceTemplate, err := catalog.ReadResourceTemplate(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, "Report name", resourceTemplate.TemplateProperty(1).AlternateLabel)

		asset, err := catalog.ReadAsset(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "logo.png", asset.Name)
	}
	assert.Equal(t, 4, backend.Lookups(), "only the first round reaches the catalog")

	_, err := catalog.ReadResourceTemplate(ctx, 404)
	assert.True(t, pkgerrors.IsNotFound(err))
	_, err = catalog.ReadResourceTemplate(ctx, 404)
	assert.True(t, pkgerrors.IsNotFound(err))
	assert.Equal(t, 6, backend.Lookups(), "errors are not cached")

	// reads of records go straight to the catalog
	_, err = catalog.ReadResource(ctx, model.ResourceTypeItems, 1)
	require.NoError(t, err)
	assert.Equal(t, 7, backend.Lookups())
}

func TestCachingCatalogFallsThroughFailingCache(t *testing.T) {
	ctx := context.Background()
	backend := mock.NewMockCatalog()
	catalog := NewCachingCatalog(backend, failingCache{}, time.Minute)

	property, err := catalog.FindProperty(ctx, "dcterms:date")
	require.NoError(t, err)
	assert.Equal(t, "Date", property.Label)
	assert.Equal(t, 1, backend.Lookups())
}

// slowCatalog holds property lookups until released
type slowCatalog struct {
	*mock.MockCatalog
	entered chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (s *slowCatalog) FindProperty(ctx context.Context, term string) (*model.Property, error) {
	if s.calls.Add(1) == 1 {
		close(s.entered)
	}
	select {
	case <-s.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return s.MockCatalog.FindProperty(ctx, term)
}

func TestCachingCatalogSharesConcurrentMisses(t *testing.T) {
	ctx := context.Background()
	backend := &slowCatalog{
		MockCatalog: mock.NewMockCatalog(),
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	catalog := NewCachingCatalog(backend, NewMemoryCache(16, time.Minute), time.Minute)

	var wg sync.WaitGroup
	labels := make([]string, 5)
	for i := range labels {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			property, err := catalog.FindProperty(ctx, "dcterms:title")
			if err == nil && property != nil {
				labels[i] = property.Label
			}
		}(i)
	}

	<-backend.entered
	// let the other lookups join the one in flight
	time.Sleep(100 * time.Millisecond)
	close(backend.release)
	wg.Wait()

	assert.Equal(t, int32(1), backend.calls.Load())
	for _, label := range labels {
		assert.Equal(t, "Title", label)
	}
}

func TestCachingCatalogSharedMissSurvivesCancelledCaller(t *testing.T) {
	backend := &slowCatalog{
		MockCatalog: mock.NewMockCatalog(),
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	catalog := NewCachingCatalog(backend, NewMemoryCache(16, time.Minute), time.Minute)

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := catalog.FindProperty(firstCtx, "dcterms:title")
		firstErr <- err
	}()
	<-backend.entered

	var wg sync.WaitGroup
	labels := make([]string, 3)
	for i := range labels {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			property, err := catalog.FindProperty(context.Background(), "dcterms:title")
			if err == nil && property != nil {
				labels[i] = property.Label
			}
		}(i)
	}
	time.Sleep(100 * time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(backend.release)
	wg.Wait()

	assert.Equal(t, int32(1), backend.calls.Load())
	for _, label := range labels {
		assert.Equal(t, "Title", label)
	}
}
