// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
)

// SiteStore persists sites with their pages and block lists
type SiteStore interface {
	// GetSite returns the site with the given slug, or a NotFound error
	GetSite(ctx context.Context, slug string) (*model.Site, error)

	// SavePageBlocks replaces the block list of a page
	SavePageBlocks(ctx context.Context, siteSlug, pageSlug string, blocks []model.Block) error

	// IsReady checks if the store is ready
	IsReady(ctx context.Context) error

	// Close releases the store connection
	Close() error
}
