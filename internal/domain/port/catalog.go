// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
)

// PropertyFinder looks up property definitions
type PropertyFinder interface {
	// FindProperty returns the property with the given term, or nil when none exists
	FindProperty(ctx context.Context, term string) (*model.Property, error)
}

// ResourceTemplateReader reads resource templates
type ResourceTemplateReader interface {
	// ReadResourceTemplate returns the template, or a NotFound error when the id is stale
	ReadResourceTemplate(ctx context.Context, id int) (*model.ResourceTemplate, error)
}

// ResourceReader reads single catalog records
type ResourceReader interface {
	// ReadResource returns a single item, item set or media
	ReadResource(ctx context.Context, resourceType model.ResourceType, id int) (*model.Resource, error)

	// ReadAsset returns a site asset
	ReadAsset(ctx context.Context, id int) (*model.Asset, error)
}

// Catalog groups the lookups of the catalog API used while rendering blocks
type Catalog interface {
	PropertyFinder
	ResourceTemplateReader
	ResourceReader

	// IsReady checks if the catalog API is reachable
	IsReady(ctx context.Context) error
}
