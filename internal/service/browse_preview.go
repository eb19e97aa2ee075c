// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/constants"
)

var browsePreviewFields = []fieldSpec{
	{key: "heading", kind: FieldText, label: "Heading"},
	{key: "resource_type", kind: FieldSelect, label: "Resource type", options: resourceTypeOptions},
	{key: "query", kind: FieldText, label: "Query", info: "Display resources using this search query"},
	{key: "limit", kind: FieldNumber, label: "Limit", info: "Maximum number of resources to display in the preview."},
	{key: "link-text", kind: FieldText, label: "Link text", info: "Text for link to full browse view, if any."},
	{key: "partial", kind: FieldText, label: "Template to display"},
}

// browsePreview shows a capped sample of a stored query with a link to the
// full browse page
type browsePreview struct {
	searcher   port.ResourceSearcher
	renderer   port.Renderer
	translator port.Translator
	defaults   model.BlockData
}

func (b *browsePreview) Name() string {
	return constants.LayoutBrowsePreview
}

func (b *browsePreview) Label() string {
	return "Browse preview"
}

func (b *browsePreview) Hydrate(ctx context.Context, data model.BlockData, errs *ErrorStore) model.BlockData {
	data = data.Clone()
	if raw, ok := data["query"].(string); ok {
		data["query"] = strings.TrimLeft(raw, "? ")
	}

	settings, err := model.BrowsePreviewSettingsFromData(data)
	if err != nil {
		errs.AddError("settings", err)
		return data
	}
	data["resource_type"] = string(settings.ResourceType)

	if settings.Partial != "" && !b.renderer.Has(settings.Partial) {
		errs.Add("partial", fmt.Sprintf("template %q not found", settings.Partial))
	}
	return data
}

func (b *browsePreview) Form(ctx context.Context, site *model.Site, page *model.Page, block *model.Block) Fieldset {
	return buildFieldset(b, browsePreviewFields, b.defaults, block, nil)
}

func (b *browsePreview) Render(ctx context.Context, req RenderRequest, block model.Block) (template.HTML, error) {
	settings, err := model.BrowsePreviewSettingsFromData(block.Data)
	if err != nil {
		return "", err
	}

	query := model.ParseQuery(settings.Query)
	if req.Site.Settings.Flags().AttachedItemsOnly {
		query[constants.QueryKeySiteAttachmentsOnly] = true
	}
	query[constants.QueryKeySiteID] = req.Site.ID
	if settings.Limit > 0 {
		query[constants.QueryKeyLimit] = settings.Limit
	}
	if query.Value(constants.QueryKeySortBy) == "" {
		query[constants.QueryKeySortBy] = constants.DefaultSortBy
	}
	if query.Value(constants.QueryKeySortOrder) == "" {
		query[constants.QueryKeySortOrder] = constants.DefaultSortOrder
	}

	slog.DebugContext(ctx, "running browse preview query",
		"resource_type", settings.ResourceType,
		"query", query.Encode(),
	)

	result, err := b.searcher.Search(ctx, settings.ResourceType, query)
	if err != nil {
		return "", fmt.Errorf("browse preview search failed: %w", err)
	}

	view := BrowsePreviewView{
		Heading:      settings.Heading,
		ResourceType: settings.ResourceType.Singular(),
		Resources:    result.Resources,
		BrowseURL:    browseURL(req.Site.Slug, settings.ResourceType, settings.Query),
	}
	if settings.LinkText != "" {
		view.LinkText = b.translator.Translate(req.Locale, settings.LinkText)
	}

	name := templateOr(ctx, b.renderer, settings.Partial, constants.TemplateBrowsePreview)
	return b.renderer.Render(ctx, name, view)
}

// browseURL links to the public browse page of a resource type, carrying
// the stored query as written by the editor
func browseURL(siteSlug string, resourceType model.ResourceType, rawQuery string) string {
	url := fmt.Sprintf("/s/%s/%s", siteSlug, resourceType.Singular())
	if rawQuery = strings.TrimLeft(rawQuery, "? "); rawQuery != "" {
		url += "?" + rawQuery
	}
	return url
}

// NewBrowsePreviewLayout creates the browsePreview layout
func NewBrowsePreviewLayout(searcher port.ResourceSearcher, renderer port.Renderer, translator port.Translator, defaults BlockDefaults) BlockLayout {
	return &browsePreview{
		searcher:   searcher,
		renderer:   renderer,
		translator: translator,
		defaults:   defaults.For(constants.LayoutBrowsePreview),
	}
}
