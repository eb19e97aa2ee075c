// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/infrastructure/auth"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/infrastructure/cache"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/infrastructure/i18n"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/infrastructure/mock"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/infrastructure/nats"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/infrastructure/omeka"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/infrastructure/opensearch"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/infrastructure/render"
)

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envDuration(key, fallback string) time.Duration {
	value := envOr(key, fallback)
	duration, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("invalid %s duration %s: %v", key, value, err)
	}
	return duration
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("invalid %s value %s: %v", key, value, err)
	}
	return n
}

// catalogClient builds the catalog REST client shared by the omeka searcher
// and catalog
func catalogClient(ctx context.Context) *omeka.Client {
	config, err := omeka.NewConfig(
		envOr("CATALOG_URL", "http://localhost:8081"),
		os.Getenv("CATALOG_KEY_IDENTITY"),
		os.Getenv("CATALOG_KEY_CREDENTIAL"),
		envOr("CATALOG_TIMEOUT", "10s"),
		envInt("CATALOG_MAX_RETRIES", 3),
		envOr("CATALOG_RETRY_DELAY", "1s"),
	)
	if err != nil {
		log.Fatalf("failed to create catalog configuration: %v", err)
	}

	slog.InfoContext(ctx, "initializing catalog client",
		"base_url", config.BaseURL,
		"timeout", config.Timeout,
		"max_retries", config.MaxRetries,
	)
	return omeka.NewClient(config)
}

// SearcherImpl injects the resource searcher implementation
func SearcherImpl(ctx context.Context) port.ResourceSearcher {

	var (
		resourceSearcher port.ResourceSearcher
		err              error
	)

	searchSource := envOr("SEARCH_SOURCE", "omeka")

	switch searchSource {
	case "mock":
		slog.InfoContext(ctx, "initializing mock resource searcher")
		resourceSearcher = mock.NewMockResourceSearcher()

	case "omeka":
		slog.InfoContext(ctx, "initializing catalog API resource searcher")
		resourceSearcher = omeka.NewResourceSearcher(catalogClient(ctx))

	case "opensearch":
		opensearchConfig := opensearch.Config{
			URL:   envOr("OPENSEARCH_URL", "http://localhost:9200"),
			Index: envOr("OPENSEARCH_INDEX", "resources"),
		}
		slog.InfoContext(ctx, "initializing opensearch resource searcher",
			"url", opensearchConfig.URL,
			"index", opensearchConfig.Index,
		)

		resourceSearcher, err = opensearch.NewSearcher(ctx, opensearchConfig)
		if err != nil {
			log.Fatalf("failed to initialize OpenSearch searcher: %v", err)
		}

	default:
		log.Fatalf("unsupported search implementation: %s", searchSource)
	}

	return resourceSearcher
}

// CatalogImpl injects the catalog implementation, wrapped in a lookup cache
// when CATALOG_CACHE is set
func CatalogImpl(ctx context.Context) port.Catalog {

	var catalog port.Catalog

	catalogSource := envOr("CATALOG_SOURCE", "omeka")

	switch catalogSource {
	case "mock":
		slog.InfoContext(ctx, "initializing mock catalog")
		catalog = mock.NewMockCatalog()

	case "omeka":
		catalog = omeka.NewCatalog(catalogClient(ctx))

	default:
		log.Fatalf("unsupported catalog implementation: %s", catalogSource)
	}

	ttl := envDuration("CATALOG_CACHE_TTL", "5m")
	cacheSource := envOr("CATALOG_CACHE", "memory")

	switch cacheSource {
	case "none":
		return catalog

	case "memory":
		size := envInt("CATALOG_CACHE_SIZE", 1024)
		slog.InfoContext(ctx, "initializing in-memory catalog cache",
			"size", size,
			"ttl", ttl,
		)
		return cache.NewCachingCatalog(catalog, cache.NewMemoryCache(size, ttl), ttl)

	case "redis":
		redisCache, err := cache.NewRedisCache(ctx, os.Getenv("REDIS_URL"))
		if err != nil {
			log.Fatalf("failed to initialize redis catalog cache: %v", err)
		}
		slog.InfoContext(ctx, "initializing redis catalog cache", "ttl", ttl)
		return cache.NewCachingCatalog(catalog, redisCache, ttl)

	default:
		log.Fatalf("unsupported catalog cache implementation: %s", cacheSource)
	}

	return catalog
}

// SiteStoreImpl injects the site store implementation
func SiteStoreImpl(ctx context.Context) port.SiteStore {

	var siteStore port.SiteStore

	siteStoreSource := envOr("SITE_STORE_SOURCE", "nats")

	switch siteStoreSource {
	case "mock":
		slog.InfoContext(ctx, "initializing mock site store")
		siteStore = mock.NewMockSiteStore()

	case "nats":
		natsConfig := nats.Config{
			URL:           envOr("NATS_URL", "nats://localhost:4222"),
			Timeout:       envDuration("NATS_TIMEOUT", "10s"),
			MaxReconnect:  envInt("NATS_MAX_RECONNECT", 3),
			ReconnectWait: envDuration("NATS_RECONNECT_WAIT", "2s"),
			Bucket:        envOr("NATS_KV_BUCKET", "blockplus-sites"),
		}
		slog.InfoContext(ctx, "initializing NATS site store",
			"url", natsConfig.URL,
			"bucket", natsConfig.Bucket,
		)

		client, err := nats.NewClient(ctx, natsConfig)
		if err != nil {
			log.Fatalf("failed to initialize NATS site store: %v", err)
		}
		siteStore = nats.NewSiteStore(client)

	default:
		log.Fatalf("unsupported site store implementation: %s", siteStoreSource)
	}

	return siteStore
}

// AuthServiceImpl injects the authenticator of the admin endpoints
func AuthServiceImpl(ctx context.Context) port.Authenticator {

	if principal := os.Getenv("JWT_AUTH_DISABLED_MOCK_LOCAL_PRINCIPAL"); principal != "" {
		slog.WarnContext(ctx, "JWT authentication is disabled, using the local principal", "principal", principal)
		return mock.NewMockAuthenticator(principal)
	}

	jwtAuth, err := auth.NewJWTAuth(auth.JWTAuthConfig{
		JWKSURL:  os.Getenv("JWKS_URL"),
		Audience: os.Getenv("AUDIENCE"),
	})
	if err != nil {
		log.Fatalf("failed to initialize JWT authentication: %v", err)
	}
	return jwtAuth
}

// TranslatorImpl injects the translator, loading LOCALE_DIR catalogs
func TranslatorImpl(ctx context.Context) port.Translator {
	translator, err := i18n.NewTranslator(ctx, os.Getenv("LOCALE_DIR"))
	if err != nil {
		log.Fatalf("failed to load translations: %v", err)
	}
	return translator
}

// RendererImpl injects the renderer, loading THEME_TEMPLATE_DIR templates
func RendererImpl(ctx context.Context) *render.TemplateRenderer {
	renderer, err := render.NewRenderer(ctx, os.Getenv("THEME_TEMPLATE_DIR"))
	if err != nil {
		log.Fatalf("failed to load templates: %v", err)
	}
	return renderer
}

// ThemeWatcherImpl starts reloading the theme templates on change when
// THEME_TEMPLATE_WATCH is true. It returns nil when disabled.
func ThemeWatcherImpl(ctx context.Context, renderer *render.TemplateRenderer) *render.ThemeWatcher {
	themeDir := os.Getenv("THEME_TEMPLATE_DIR")
	if themeDir == "" || os.Getenv("THEME_TEMPLATE_WATCH") != "true" {
		return nil
	}

	watcher, err := render.NewThemeWatcher(renderer)
	if err != nil {
		log.Fatalf("failed to create theme watcher: %v", err)
	}
	if err := watcher.Start(ctx); err != nil {
		log.Fatalf("failed to watch theme templates in %s: %v", themeDir, err)
	}
	return watcher
}

// DefaultLocale is the locale of sites without one
func DefaultLocale() string {
	return envOr("LOCALE", "en")
}
