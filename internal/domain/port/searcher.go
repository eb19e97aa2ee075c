// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
)

// ResourceSearcher defines the behavior of the resource search API
// This abstraction allows different search implementations (catalog API, OpenSearch, etc.)
// without the domain layer knowing about specific implementations
type ResourceSearcher interface {
	// Search returns the resources of the given type matching the query
	Search(ctx context.Context, resourceType model.ResourceType, query model.Query) (*model.SearchResult, error)

	// IsReady checks if the search service is ready
	IsReady(ctx context.Context) error
}
