// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/constants"
)

type pagingMode int

const (
	pagingUnbounded pagingMode = iota
	pagingCapped
	pagingPaged
)

// ListingRequest holds the inputs of a listing for one render
type ListingRequest struct {
	// Settings of the block
	Settings model.SearchResultsSettings
	// Params of the incoming request query string
	Params model.Query
	// Flags of the site owning the page
	Flags model.SiteFlags
	// SiteID scopes the search to the site
	SiteID int
	// Locale used for sort heading labels
	Locale string
}

// assembledQuery is the effective query with the paging it was built with
type assembledQuery struct {
	query       model.Query
	mode        pagingMode
	limit       int
	currentPage int
}

// ListingQueryBuilder merges block settings, request parameters and site
// flags into a search query, runs it and resolves the sort headings
type ListingQueryBuilder struct {
	searcher   port.ResourceSearcher
	properties port.PropertyFinder
	templates  port.ResourceTemplateReader
	translator port.Translator
}

// Build runs the listing of a search results block. Search errors are
// returned; lookups made for sort headings never fail the listing.
func (b *ListingQueryBuilder) Build(ctx context.Context, req ListingRequest) (*model.Listing, error) {

	assembled := assembleQuery(req.Settings, req.Params, req.Flags, req.SiteID)

	slog.DebugContext(ctx, "running listing query",
		"resource_type", req.Settings.ResourceType,
		"query", assembled.query.Encode(),
	)

	result, err := b.searcher.Search(ctx, req.Settings.ResourceType, assembled.query)
	if err != nil {
		return nil, fmt.Errorf("listing search failed: %w", err)
	}

	listing := &model.Listing{
		Heading:      req.Settings.Heading,
		ResourceType: req.Settings.ResourceType,
		Query:        assembled.query,
		Resources:    result.Resources,
		SortHeadings: b.sortHeadings(ctx, req.Settings, req.Locale),
		Template:     req.Settings.Template,
	}
	if listing.Template == "" {
		listing.Template = constants.TemplateSearchResults
	}

	if assembled.mode == pagingPaged {
		listing.Pagination = &model.Pagination{
			TotalCount:  result.TotalResults,
			CurrentPage: assembled.currentPage,
			Limit:       assembled.limit,
		}
	}

	return listing, nil
}

// assembleQuery builds the effective query. The result holds either limit
// or page and per_page, never both, and always the site id.
func assembleQuery(settings model.SearchResultsSettings, params model.Query, flags model.SiteFlags, siteID int) assembledQuery {

	base := settings.Query.Clone()
	if !base.Has(constants.QueryKeySearch) {
		base[constants.QueryKeySearch] = ""
	}

	query := base.Overlay(params).Without(
		constants.QueryKeyLimit,
		constants.QueryKeyPage,
		constants.QueryKeyPerPage,
	)

	if flags.AttachedItemsOnly {
		query[constants.QueryKeySiteAttachmentsOnly] = true
	}
	query[constants.QueryKeySiteID] = siteID

	assembled := assembledQuery{
		query: query,
		limit: constants.DefaultListingLimit,
	}
	if settings.Limit != nil {
		assembled.limit = *settings.Limit
	}

	switch {
	case assembled.limit > 0 && settings.Pagination:
		assembled.mode = pagingPaged
		assembled.currentPage = 1
		if page, ok := params.PositiveInt(constants.QueryKeyPage); ok {
			assembled.currentPage = page
		}
		query[constants.QueryKeyPage] = assembled.currentPage
		query[constants.QueryKeyPerPage] = assembled.limit
	case assembled.limit > 0:
		assembled.mode = pagingCapped
		query[constants.QueryKeyLimit] = assembled.limit
	default:
		assembled.mode = pagingUnbounded
	}

	query[constants.QueryKeySortBy] = firstNonEmpty(
		params.Value(constants.QueryKeySortBy),
		settings.Query.Value(constants.QueryKeySortBy),
		constants.DefaultSortBy,
	)
	query[constants.QueryKeySortOrder] = firstNonEmpty(
		params.Value(constants.QueryKeySortOrder),
		settings.Query.Value(constants.QueryKeySortOrder),
		constants.DefaultSortOrder,
	)

	return assembled
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// NewListingQueryBuilder creates a new ListingQueryBuilder instance
func NewListingQueryBuilder(searcher port.ResourceSearcher,
	properties port.PropertyFinder,
	templates port.ResourceTemplateReader,
	translator port.Translator,
) *ListingQueryBuilder {
	return &ListingQueryBuilder{
		searcher:   searcher,
		properties: properties,
		templates:  templates,
		translator: translator,
	}
}
