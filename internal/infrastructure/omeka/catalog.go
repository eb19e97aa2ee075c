// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package omeka

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/port"
)

// Catalog implements the port.Catalog interface using the catalog API
type Catalog struct {
	client *Client
}

// FindProperty returns the property with the given term, nil when none exists
func (c *Catalog) FindProperty(ctx context.Context, term string) (*model.Property, error) {
	return c.client.Property(ctx, term)
}

// ReadResourceTemplate returns a resource template, NotFound when the id is stale
func (c *Catalog) ReadResourceTemplate(ctx context.Context, id int) (*model.ResourceTemplate, error) {
	return c.client.ResourceTemplate(ctx, id)
}

// ReadResource returns a single item, item set or media
func (c *Catalog) ReadResource(ctx context.Context, resourceType model.ResourceType, id int) (*model.Resource, error) {
	return c.client.Resource(ctx, resourceType, id)
}

// ReadAsset returns a site asset
func (c *Catalog) ReadAsset(ctx context.Context, id int) (*model.Asset, error) {
	return c.client.Asset(ctx, id)
}

// IsReady checks if the catalog API is reachable
func (c *Catalog) IsReady(ctx context.Context) error {
	return c.client.IsReady(ctx)
}

// NewCatalog creates a new catalog API backed catalog
func NewCatalog(client *Client) port.Catalog {
	return &Catalog{client: client}
}
