// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"text/template"
	"time"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/errors"

	"github.com/opensearch-project/opensearch-go/v4"
	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"
)

// maxWindow is the largest result window of an index
const maxWindow = 10000

var queryResourceTemplate = template.Must(
	template.New("queryResource").
		Funcs(template.FuncMap{
			"quote": jsonQuote,
		}).
		Parse(queryResourceSource))

func jsonQuote(s string) (string, error) {
	b, err := json.Marshal(s)
	return string(b), err
}

// OpenSearchSearcher implements the ResourceSearcher interface for OpenSearch
type OpenSearchSearcher struct {
	client OpenSearchClientRetriever
	index  string
}

// OpenSearchClientRetriever defines the interface for OpenSearch operations
// This allows for easy mocking and testing
type OpenSearchClientRetriever interface {
	Search(ctx context.Context, index string, query []byte) (*SearchResponse, error)
	IsReady(ctx context.Context) error
}

// propertyFilter is a property clause of the catalog query notation
type propertyFilter struct {
	Field  string
	Text   string
	Match  string
	Negate bool
}

// queryData is the template view of a catalog query
type queryData struct {
	ResourceType     string
	Search           string
	HasSite          bool
	SiteID           string
	AttachedOnly     bool
	ResourceClassIDs []string
	ItemSetIDs       []string
	Properties       []propertyFilter
	SortField        string
	SortOrder        string
	From             int
	Size             int
}

// Search implements the ResourceSearcher interface
func (os *OpenSearchSearcher) Search(ctx context.Context, resourceType model.ResourceType, query model.Query) (*model.SearchResult, error) {
	slog.DebugContext(ctx, "executing opensearch query",
		"resource_type", resourceType,
		"query", query.Encode(),
	)

	body, err := os.Render(ctx, resourceType, query)
	if err != nil {
		return nil, errors.NewValidation("failed to render query", err)
	}

	response, err := os.client.Search(ctx, os.index, body)
	if err != nil {
		return nil, errors.NewServiceUnavailable("opensearch search failed", err)
	}

	result := os.convertResponse(ctx, resourceType, response)

	slog.DebugContext(ctx, "opensearch search completed",
		"results_count", len(result.Resources),
		"total", result.TotalResults,
	)
	return result, nil
}

// Render generates the OpenSearch query of a catalog query
func (os *OpenSearchSearcher) Render(ctx context.Context, resourceType model.ResourceType, query model.Query) ([]byte, error) {
	var buf bytes.Buffer
	if err := queryResourceTemplate.Execute(&buf, newQueryData(resourceType, query)); err != nil {
		slog.ErrorContext(ctx, "failed to render query template", "error", err)
		return nil, err
	}
	if !json.Valid(buf.Bytes()) {
		return nil, fmt.Errorf("rendered query is not valid JSON")
	}
	return buf.Bytes(), nil
}

func newQueryData(resourceType model.ResourceType, query model.Query) queryData {
	data := queryData{
		ResourceType:     string(resourceType),
		Search:           strings.TrimSpace(query.Value(constants.QueryKeySearch)),
		SiteID:           query.Value(constants.QueryKeySiteID),
		AttachedOnly:     query.Value(constants.QueryKeySiteAttachmentsOnly) == "1",
		ResourceClassIDs: scalars(query["resource_class_id"]),
		ItemSetIDs:       scalars(query["item_set_id"]),
		Properties:       propertyFilters(query[constants.QueryKeyProperty]),
		SortField:        sortField(query.Value(constants.QueryKeySortBy)),
		SortOrder:        "desc",
	}
	data.HasSite = data.SiteID != ""
	if query.Value(constants.QueryKeySortOrder) == "asc" {
		data.SortOrder = "asc"
	}

	switch perPage, paged := query.PositiveInt(constants.QueryKeyPerPage); {
	case paged:
		page, ok := query.PositiveInt(constants.QueryKeyPage)
		if !ok {
			page = 1
		}
		data.From, data.Size = maxWindow, perPage
		if page-1 <= maxWindow/perPage {
			data.From = (page - 1) * perPage
		}
	default:
		data.Size = maxWindow
		if limit, ok := query.PositiveInt(constants.QueryKeyLimit); ok {
			data.Size = limit
		}
	}
	// pages past the window fetch no hits but still count the matches
	data.From = min(data.From, maxWindow)
	data.Size = min(data.Size, maxWindow-data.From)
	return data
}

// sortField maps a sort key to an indexed field
func sortField(sortBy string) string {
	switch sortBy {
	case "", constants.DefaultSortBy:
		return "created"
	case "title", "dcterms:title":
		return "title.keyword"
	case constants.SortByResourceClassLabel:
		return "resource_class_label.keyword"
	default:
		return "values." + sortBy + ".keyword"
	}
}

func scalars(v any) []string {
	var out []string
	switch values := v.(type) {
	case nil:
	case []any:
		for _, value := range values {
			if s := model.Query(map[string]any{"v": value}).Value("v"); s != "" {
				out = append(out, s)
			}
		}
	default:
		if s := model.Query(map[string]any{"v": values}).Value("v"); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// propertyFilters reads property[n][property|type|text] clauses
func propertyFilters(v any) []propertyFilter {
	list, ok := v.([]any)
	if !ok {
		return nil
	}

	var filters []propertyFilter
	for _, entry := range list {
		clause, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		q := model.Query(clause)
		term := q.Value("property")
		filter := propertyFilter{
			Field: "values." + term,
			Text:  q.Value("text"),
		}
		if term == "" {
			filter.Field = "fulltext"
		}

		switch q.Value("type") {
		case "eq":
			filter.Match = "match_phrase"
		case "neq":
			filter.Match, filter.Negate = "match_phrase", true
		case "in", "":
			filter.Match = "match"
		case "nin":
			filter.Match, filter.Negate = "match", true
		case "ex":
			filter.Match = "exists"
		case "nex":
			filter.Match, filter.Negate = "exists", true
		default:
			continue
		}
		if filter.Match != "exists" && filter.Text == "" {
			continue
		}
		if filter.Match == "exists" && term == "" {
			continue
		}
		filters = append(filters, filter)
	}
	return filters
}

// convertResponse converts OpenSearch response to domain objects
func (os *OpenSearchSearcher) convertResponse(ctx context.Context, resourceType model.ResourceType, response *SearchResponse) *model.SearchResult {
	result := &model.SearchResult{
		Resources:    make([]model.Resource, 0, len(response.Hits.Hits)),
		TotalResults: response.Hits.Total.Value,
	}

	for _, hit := range response.Hits.Hits {
		var doc resourceDocument
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			// Log error but continue processing other hits
			slog.ErrorContext(ctx, "failed to convert hit", "hit_id", hit.ID, "error", err)
			continue
		}
		result.Resources = append(result.Resources, model.Resource{
			ID:                 doc.ID,
			Type:               resourceType,
			Title:              doc.Title,
			ResourceClassLabel: doc.ResourceClassLabel,
			Created:            doc.Created,
			Source:             doc.Source,
			Thumbnails:         doc.Thumbnails,
			Data:               doc.Data,
		})
	}
	return result
}

// IsReady checks if the OpenSearch cluster answers
func (os *OpenSearchSearcher) IsReady(ctx context.Context) error {
	if err := os.client.IsReady(ctx); err != nil {
		return errors.NewServiceUnavailable("opensearch is not ready", err)
	}
	return nil
}

// NewSearcher returns a new OpenSearchSearcher implementation
func NewSearcher(ctx context.Context, config Config) (port.ResourceSearcher, error) {

	if config.URL == "" {
		slog.ErrorContext(ctx, "opensearch URL is required")
		return nil, fmt.Errorf("opensearch URL is required")
	}
	if config.Index == "" {
		slog.ErrorContext(ctx, "opensearch index is required")
		return nil, fmt.Errorf("opensearch index is required")
	}

	opensearchClient, errOpensearchClient := opensearchapi.NewClient(opensearchapi.Config{
		Client: opensearch.Config{
			Addresses: []string{config.URL},
			Transport: &http.Transport{
				MaxIdleConnsPerHost:   10,
				ResponseHeaderTimeout: 5 * time.Second,
				DialContext:           (&net.Dialer{Timeout: 3 * time.Second}).DialContext,
			},
		},
	})
	if errOpensearchClient != nil {
		slog.ErrorContext(ctx, "failed to create OpenSearch client", "error", errOpensearchClient)
		return nil, fmt.Errorf("failed to create OpenSearch client: %w", errOpensearchClient)
	}

	return &OpenSearchSearcher{
		client: &httpClient{client: opensearchClient},
		index:  config.Index,
	}, nil
}
