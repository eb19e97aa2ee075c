// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/constants"
)

var searchResultsFields = []fieldSpec{
	{key: "heading", kind: FieldText, label: "Heading"},
	{key: "resource_type", kind: FieldSelect, label: "Resource type", options: resourceTypeOptions},
	{key: "query", kind: FieldText, label: "Query", info: "Display resources using this search query"},
	{key: "limit", kind: FieldNumber, label: "Limit", info: "Maximum number of resources to display. Set 0 for no limit."},
	{key: "pagination", kind: FieldCheckbox, label: "Pagination", info: "Show pagination to browse all resources on the same page."},
	{key: "sort_headings", kind: FieldTextList, label: "Sort headings", info: "Property terms, or created and resource_class_label, one by line."},
	{key: "resource_template", kind: FieldNumber, label: "Resource template for sort headings", info: "The alternative labels of this template are used."},
	{key: "template", kind: FieldText, label: "Template to display", info: "Templates are in folder common/block-layout of the theme."},
}

// searchResults lists resources matching a stored query merged with the
// request parameters
type searchResults struct {
	builder    *ListingQueryBuilder
	renderer   port.Renderer
	translator port.Translator
	defaults   model.BlockData
}

func (s *searchResults) Name() string {
	return constants.LayoutSearchResults
}

func (s *searchResults) Label() string {
	return "Search form and results"
}

// Hydrate decodes the query string into a mapping and checks the template override
func (s *searchResults) Hydrate(ctx context.Context, data model.BlockData, errs *ErrorStore) model.BlockData {
	data = data.Clone()

	if raw, ok := data["query"].(string); ok {
		data["query"] = map[string]any(model.ParseQuery(raw))
	}
	if raw, ok := data["sort_headings"].(string); ok {
		data["sort_headings"] = splitLines(raw)
	}
	if raw, ok := data["resource_template"].(string); ok && strings.TrimSpace(raw) == "" {
		data["resource_template"] = nil
	}

	settings, err := model.SearchResultsSettingsFromData(data)
	if err != nil {
		errs.AddError("settings", err)
		return data
	}
	data["resource_type"] = string(settings.ResourceType)

	if settings.Template != "" && !s.renderer.Has(settings.Template) {
		errs.Add("template", fmt.Sprintf("template %q not found", settings.Template))
	}
	return data
}

func (s *searchResults) Form(ctx context.Context, site *model.Site, page *model.Page, block *model.Block) Fieldset {
	return buildFieldset(s, searchResultsFields, s.defaults, block, func(key string, data model.BlockData) any {
		if key != "query" {
			return data[key]
		}
		switch q := data[key].(type) {
		case map[string]any:
			return model.Query(q).Encode()
		case model.Query:
			return q.Encode()
		case []any:
			return ""
		default:
			return q
		}
	})
}

func (s *searchResults) Render(ctx context.Context, req RenderRequest, block model.Block) (template.HTML, error) {
	settings, err := model.SearchResultsSettingsFromData(block.Data)
	if err != nil {
		return "", err
	}

	listing, err := s.builder.Build(ctx, ListingRequest{
		Settings: settings,
		Params:   req.Params,
		Flags:    req.Site.Settings.Flags(),
		SiteID:   req.Site.ID,
		Locale:   req.Locale,
	})
	if err != nil {
		return "", err
	}

	pager, err := renderPager(ctx, s.renderer, s.translator, listing.Pagination, req.Params, req.Locale)
	if err != nil {
		return "", err
	}

	view := SearchResultsView{
		Heading:      listing.Heading,
		ResourceType: listing.ResourceType.Singular(),
		Resources:    listing.Resources,
		Query:        listing.Query,
		SortBy:       listing.Query.Value(constants.QueryKeySortBy),
		SortOrder:    listing.Query.Value(constants.QueryKeySortOrder),
		SortHeadings: sortLinks(listing, req.Params),
		Pager:        pager,
	}

	name := templateOr(ctx, s.renderer, listing.Template, constants.TemplateSearchResults)
	return s.renderer.Render(ctx, name, view)
}

func splitLines(raw string) []any {
	lines := []any{}
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// NewSearchResultsLayout creates the searchResults layout
func NewSearchResultsLayout(builder *ListingQueryBuilder, renderer port.Renderer, translator port.Translator, defaults BlockDefaults) BlockLayout {
	return &searchResults{
		builder:    builder,
		renderer:   renderer,
		translator: translator,
		defaults:   defaults.For(constants.LayoutSearchResults),
	}
}
