// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package omeka

import (
	"context"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/port"
)

// ResourceSearcher implements the port.ResourceSearcher interface using the catalog API
type ResourceSearcher struct {
	client *Client
}

// Search runs the query against the catalog search endpoint of the collection
func (s *ResourceSearcher) Search(ctx context.Context, resourceType model.ResourceType, query model.Query) (*model.SearchResult, error) {
	slog.DebugContext(ctx, "searching resources via catalog API",
		"resource_type", resourceType,
	)

	resources, total, err := s.client.Search(ctx, resourceType, query)
	if err != nil {
		slog.ErrorContext(ctx, "error searching resources", "error", err)
		return nil, err
	}

	slog.DebugContext(ctx, "catalog search completed",
		"resource_type", resourceType,
		"returned", len(resources),
		"total", total,
	)

	return &model.SearchResult{
		Resources:    resources,
		TotalResults: total,
	}, nil
}

// IsReady checks if the catalog API is reachable
func (s *ResourceSearcher) IsReady(ctx context.Context) error {
	return s.client.IsReady(ctx)
}

// NewResourceSearcher creates a new catalog backed searcher
func NewResourceSearcher(client *Client) port.ResourceSearcher {
	return &ResourceSearcher{client: client}
}
