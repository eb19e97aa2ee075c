// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/errors"
)

// MockSiteStore is an in-memory SiteStore seeded with a demo site
type MockSiteStore struct {
	mu           sync.RWMutex
	sites        map[string]model.Site
	saveError    error
	isReadyError error
}

// NewMockSiteStore creates a new mock site store holding the demo site
func NewMockSiteStore() *MockSiteStore {
	m := &MockSiteStore{sites: map[string]model.Site{}}
	m.AddSite(DemoSite())
	return m
}

// DemoSite returns the site used by local runs and tests
func DemoSite() model.Site {
	return model.Site{
		ID:    1,
		Slug:  "demo",
		Title: "Demo site",
		Settings: model.SiteSettings{
			BrowseAttachedItems: true,
			Locale:              "en",
		},
		Pages: []model.Page{
			{
				ID:    1,
				Slug:  "home",
				Title: "Home",
				Blocks: []model.Block{
					{Layout: constants.LayoutPageMetadata, Data: model.BlockData{"type": "home"}},
					{Layout: constants.LayoutBrowsePreview, Data: model.BlockData{
						"resource_type": "items",
						"query":         "sort_by=title&sort_order=asc",
						"limit":         2,
						"heading":       "Latest items",
						"link-text":     "Browse all",
					}},
				},
			},
			{
				ID:    2,
				Slug:  "catalog",
				Title: "Catalog",
				Blocks: []model.Block{
					{Layout: constants.LayoutPageMetadata, Data: model.BlockData{"type": "listing"}},
					{Layout: constants.LayoutSearchResults, Data: model.BlockData{
						"resource_type": "items",
						"query":         map[string]any{"search": ""},
						"limit":         2,
						"pagination":    true,
						"heading":       "Catalog",
						"sort_headings": []any{"created", "dcterms:title", "resource_class_label"},
					}},
				},
			},
			{
				ID:    3,
				Slug:  "partners",
				Title: "Partners",
				Blocks: []model.Block{
					{Layout: constants.LayoutPageMetadata, Data: model.BlockData{"type": "listing"}},
					{Layout: constants.LayoutAssets, Data: model.BlockData{
						"heading": "Partners",
						"assets":  []any{map[string]any{"id": 3, "url": "https://example.org", "label": "Example"}},
					}},
					{Layout: constants.LayoutItemShowcase, Data: model.BlockData{
						"heading":     "Highlights",
						"attachments": []any{map[string]any{"item": 1, "media": 20, "caption": "Our report"}},
					}},
				},
			},
		},
	}
}

// GetSite implements the SiteStore interface. The site is deep copied so
// callers never share block data with the store.
func (m *MockSiteStore) GetSite(ctx context.Context, slug string) (*model.Site, error) {
	m.mu.RLock()
	site, ok := m.sites[slug]
	m.mu.RUnlock()

	if !ok {
		return nil, errors.NewNotFound(fmt.Sprintf("site %q not found", slug))
	}
	return deepCopy(site)
}

// SavePageBlocks implements the SiteStore interface
func (m *MockSiteStore) SavePageBlocks(ctx context.Context, siteSlug, pageSlug string, blocks []model.Block) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveError != nil {
		return m.saveError
	}
	site, ok := m.sites[siteSlug]
	if !ok {
		return errors.NewNotFound(fmt.Sprintf("site %q not found", siteSlug))
	}
	page, ok := site.Page(pageSlug)
	if !ok {
		return errors.NewNotFound(fmt.Sprintf("page %q not found in site %q", pageSlug, siteSlug))
	}
	page.Blocks = blocks
	m.sites[siteSlug] = site
	return nil
}

// IsReady implements the SiteStore interface
func (m *MockSiteStore) IsReady(ctx context.Context) error {
	return m.isReadyError
}

// Close implements the SiteStore interface
func (m *MockSiteStore) Close() error {
	return nil
}

// AddSite adds or replaces a site
func (m *MockSiteStore) AddSite(site model.Site) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sites[site.Slug] = site
}

// SetSaveError sets the mock error for SavePageBlocks calls
func (m *MockSiteStore) SetSaveError(err error) {
	m.saveError = err
}

// SetIsReadyError sets the mock error for IsReady calls
func (m *MockSiteStore) SetIsReadyError(err error) {
	m.isReadyError = err
}

// deepCopy round trips the site through JSON, the way the stores persist it
func deepCopy(site model.Site) (*model.Site, error) {
	raw, err := json.Marshal(site)
	if err != nil {
		return nil, errors.NewUnexpected("failed to copy site", err)
	}
	var clone model.Site
	if err := json.Unmarshal(raw, &clone); err != nil {
		return nil, errors.NewUnexpected("failed to copy site", err)
	}
	return &clone, nil
}

var _ port.SiteStore = (*MockSiteStore)(nil)
