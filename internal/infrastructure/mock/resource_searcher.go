// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/constants"
)

// MockResourceSearcher is a mock implementation of ResourceSearcher for testing
type MockResourceSearcher struct {
	mu           sync.Mutex
	resources    []model.Resource
	queries      []model.Query
	searchError  error
	isReadyError error
}

// NewMockResourceSearcher creates a new mock searcher with some sample data
func NewMockResourceSearcher() *MockResourceSearcher {
	return &MockResourceSearcher{
		resources: []model.Resource{
			{
				ID:                 1,
				Type:               model.ResourceTypeItems,
				Title:              "Annual Report 2023",
				ResourceClassLabel: "Text",
				Created:            "2024-01-10T09:00:00+00:00",
				Thumbnails: map[string]string{
					"large":  "https://catalog.example.org/files/large/report.jpg",
					"medium": "https://catalog.example.org/files/medium/report.jpg",
					"square": "https://catalog.example.org/files/square/report.jpg",
				},
			},
			{
				ID:                 2,
				Type:               model.ResourceTypeItems,
				Title:              "Board Meeting Photo",
				ResourceClassLabel: "Image",
				Created:            "2024-03-02T14:30:00+00:00",
				Thumbnails: map[string]string{
					"square": "https://catalog.example.org/files/square/board.jpg",
				},
			},
			{
				ID:                 3,
				Type:               model.ResourceTypeItems,
				Title:              "Community Survey",
				ResourceClassLabel: "Dataset",
				Created:            "2024-05-21T08:15:00+00:00",
			},
			{
				ID:      10,
				Type:    model.ResourceTypeItemSets,
				Title:   "Governance Archive",
				Created: "2023-11-01T00:00:00+00:00",
			},
			{
				ID:      20,
				Type:    model.ResourceTypeMedia,
				Title:   "report.pdf",
				Source:  "report.pdf",
				Created: "2024-01-10T09:05:00+00:00",
				Thumbnails: map[string]string{
					"large": "https://catalog.example.org/files/large/report-pdf.jpg",
				},
			},
		},
	}
}

// Search implements the ResourceSearcher interface with mock data
func (m *MockResourceSearcher) Search(ctx context.Context, resourceType model.ResourceType, query model.Query) (*model.SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	slog.DebugContext(ctx, "executing mock search", "resource_type", resourceType, "query", query.Encode())

	m.queries = append(m.queries, query.Clone())
	if m.searchError != nil {
		return nil, m.searchError
	}

	text := strings.ToLower(query.Value(constants.QueryKeySearch))
	var matched []model.Resource
	for _, resource := range m.resources {
		if resource.Type != resourceType {
			continue
		}
		if text != "" && !strings.Contains(strings.ToLower(resource.Title), text) {
			continue
		}
		matched = append(matched, resource)
	}

	sortResources(matched, query.Value(constants.QueryKeySortBy), query.Value(constants.QueryKeySortOrder))

	total := len(matched)
	offset, size := window(query, total)
	if offset > total {
		offset = total
	}
	end := total
	if size > 0 && offset+size < total {
		end = offset + size
	}

	return &model.SearchResult{
		Resources:    matched[offset:end],
		TotalResults: total,
	}, nil
}

// window returns the offset and size requested by the paging keys of a query
func window(query model.Query, total int) (int, int) {
	if perPage, ok := query.PositiveInt(constants.QueryKeyPerPage); ok {
		page, ok := query.PositiveInt(constants.QueryKeyPage)
		if !ok {
			page = 1
		}
		return (page - 1) * perPage, perPage
	}
	if limit, ok := query.PositiveInt(constants.QueryKeyLimit); ok {
		return 0, limit
	}
	return 0, total
}

func sortResources(resources []model.Resource, sortBy, sortOrder string) {
	key := func(r model.Resource) string {
		switch sortBy {
		case "title", "dcterms:title":
			return strings.ToLower(r.Title)
		case constants.SortByResourceClassLabel:
			return r.ResourceClassLabel
		default:
			return r.Created
		}
	}
	sort.SliceStable(resources, func(i, j int) bool {
		if sortOrder == "asc" {
			return key(resources[i]) < key(resources[j])
		}
		return key(resources[i]) > key(resources[j])
	})
}

// IsReady implements the ResourceSearcher interface (always ready for mock)
func (m *MockResourceSearcher) IsReady(ctx context.Context) error {
	return m.isReadyError
}

// AddResource adds a resource to the mock data (useful for testing)
func (m *MockResourceSearcher) AddResource(resource model.Resource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resources = append(m.resources, resource)
}

// ClearResources clears all resources (useful for testing)
func (m *MockResourceSearcher) ClearResources() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resources = nil
}

// Queries returns the queries received so far
func (m *MockResourceSearcher) Queries() []model.Query {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Query(nil), m.queries...)
}

// LastQuery returns the last query received, nil when none
func (m *MockResourceSearcher) LastQuery() model.Query {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queries) == 0 {
		return nil
	}
	return m.queries[len(m.queries)-1]
}

// SetSearchError sets the mock error for Search calls
func (m *MockResourceSearcher) SetSearchError(err error) {
	m.searchError = err
}

// SetIsReadyError sets the mock error for IsReady calls
func (m *MockResourceSearcher) SetIsReadyError(err error) {
	m.isReadyError = err
}
