// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"testing"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/infrastructure/mock"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLayouts struct {
	layouts  *Layouts
	searcher *mock.MockResourceSearcher
	catalog  *mock.MockCatalog
	renderer *mock.MockRenderer
}

func newTestLayouts() testLayouts {
	searcher := mock.NewMockResourceSearcher()
	catalog := mock.NewMockCatalog()
	translator := mock.NewMockTranslator()
	renderer := mock.NewMockRenderer(
		constants.TemplateAssets,
		constants.TemplateBrowsePreview,
		constants.TemplateItemShowcase,
		constants.TemplateSearchResults,
		constants.TemplatePagination,
		constants.TemplatePage,
		"common/block-layout/search-results-table",
	)
	defaults := DefaultBlockSettings()
	builder := NewListingQueryBuilder(searcher, catalog, catalog, translator)

	return testLayouts{
		layouts: NewLayouts(
			NewSearchResultsLayout(builder, renderer, translator, defaults),
			NewBrowsePreviewLayout(searcher, renderer, translator, defaults),
			NewAssetsLayout(catalog, renderer, defaults),
			NewItemShowcaseLayout(catalog, renderer, defaults),
			NewPageMetadataLayout(defaults),
		),
		searcher: searcher,
		catalog:  catalog,
		renderer: renderer,
	}
}

func demoRequest(params model.Query) RenderRequest {
	site := mock.DemoSite()
	page, _ := site.Page("catalog")
	return RenderRequest{Site: &site, Page: page, Params: params, Locale: "en"}
}

func TestLayoutsRegistry(t *testing.T) {
	tl := newTestLayouts()

	names := []string{}
	for _, layout := range tl.layouts.All() {
		names = append(names, layout.Name())
	}
	assert.Equal(t, []string{"assets", "browsePreview", "itemShowCase", "pageMetadata", "searchResults"}, names)

	_, ok := tl.layouts.Get("searchResults")
	assert.True(t, ok)
	_, ok = tl.layouts.Get("unknown")
	assert.False(t, ok)
}

func TestSearchResultsHydrate(t *testing.T) {
	tests := []struct {
		name          string
		data          model.BlockData
		expectedQuery any
		expectedSort  any
		expectedError bool
	}{
		{
			name: "query string is decoded",
			data: model.BlockData{
				"query":         "?search=report&property[0][property]=dcterms:title&property[0][type]=in&resource_class_id[]=3",
				"sort_headings": "created\n dcterms:title \n\n",
			},
			expectedQuery: map[string]any{
				"search": "report",
				"property": []any{
					map[string]any{"property": "dcterms:title", "type": "in"},
				},
				"resource_class_id": []any{"3"},
			},
			expectedSort: []any{"created", "dcterms:title"},
		},
		{
			name:          "empty query",
			data:          model.BlockData{"query": ""},
			expectedQuery: map[string]any{},
		},
		{
			name:          "unknown template",
			data:          model.BlockData{"query": "", "template": "common/block-layout/missing"},
			expectedQuery: map[string]any{},
			expectedError: true,
		},
		{
			name:          "negative limit",
			data:          model.BlockData{"query": "", "limit": "-3"},
			expectedQuery: map[string]any{},
			expectedError: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tl := newTestLayouts()
			layout, _ := tl.layouts.Get(constants.LayoutSearchResults)

			errs := &ErrorStore{}
			data := layout.Hydrate(context.Background(), tc.data, errs)

			assert.Equal(t, tc.expectedError, errs.HasErrors())
			assert.Equal(t, tc.expectedQuery, data["query"])
			if tc.expectedSort != nil {
				assert.Equal(t, tc.expectedSort, data["sort_headings"])
			}
		})
	}
}

func TestSearchResultsForm(t *testing.T) {
	tl := newTestLayouts()
	layout, _ := tl.layouts.Get(constants.LayoutSearchResults)

	block := &model.Block{Layout: constants.LayoutSearchResults, Data: model.BlockData{
		"query":   map[string]any{"search": "report", "resource_class_id": []any{"3"}},
		"heading": "Reports",
	}}
	fieldset := layout.Form(context.Background(), nil, nil, block)

	values := map[string]any{}
	for _, field := range fieldset.Fields {
		values[field.Key] = field.Value
	}
	assert.Equal(t, "searchResults", fieldset.Layout)
	assert.Equal(t, "resource_class_id%5B0%5D=3&search=report", values["query"])
	assert.Equal(t, "Reports", values["heading"])
	// defaults fill what the block does not set
	assert.Equal(t, 12, values["limit"])
	assert.Equal(t, true, values["pagination"])
	assert.Equal(t, "o:block[__blockIndex__][o:data][query]", fieldset.Fields[2].Name)

	empty := layout.Form(context.Background(), nil, nil, nil)
	for _, field := range empty.Fields {
		if field.Key == "query" {
			assert.Equal(t, "", field.Value)
		}
	}
}

func TestSearchResultsRender(t *testing.T) {
	tl := newTestLayouts()
	layout, _ := tl.layouts.Get(constants.LayoutSearchResults)

	block := model.Block{Layout: constants.LayoutSearchResults, Data: model.BlockData{
		"resource_type": "items",
		"query":         map[string]any{},
		"limit":         2,
		"pagination":    true,
		"heading":       "Catalog",
		"sort_headings": []any{"created", "dcterms:title"},
	}}

	html, err := layout.Render(context.Background(), demoRequest(model.Query{"page": "2", "sort_by": "created", "sort_order": "asc"}), block)
	require.NoError(t, err)
	assert.Equal(t, "<common/block-layout/search-results>", string(html))

	query := tl.searcher.LastQuery()
	assert.Equal(t, true, query["site_attachments_only"])
	assert.Equal(t, 1, query["site_id"])
	assert.Equal(t, 2, query["page"])
	assert.Equal(t, 2, query["per_page"])

	calls := tl.renderer.Calls()
	require.Len(t, calls, 2)

	pager, ok := calls[0].Data.(PagerView)
	require.True(t, ok)
	assert.Equal(t, constants.TemplatePagination, calls[0].Name)
	assert.Equal(t, 2, pager.CurrentPage)
	assert.Equal(t, 2, pager.TotalPages)
	assert.Equal(t, "?page=1&sort_by=created&sort_order=asc", pager.PreviousURL)
	assert.Empty(t, pager.NextURL)
	assert.Equal(t, "Page 2 of 2", pager.Summary)

	view, ok := calls[1].Data.(SearchResultsView)
	require.True(t, ok)
	assert.Equal(t, "Catalog", view.Heading)
	assert.Equal(t, "item", view.ResourceType)
	assert.Len(t, view.Resources, 1)
	assert.Equal(t, "<common/pagination>", string(view.Pager))
	require.Len(t, view.SortHeadings, 2)
	assert.True(t, view.SortHeadings[0].Active)
	assert.Equal(t, "?sort_by=created&sort_order=desc", view.SortHeadings[0].URL)
	assert.False(t, view.SortHeadings[1].Active)
	assert.Equal(t, "?sort_by=dcterms%3Atitle&sort_order=asc", view.SortHeadings[1].URL)
}

func TestSearchResultsRenderTemplateFallback(t *testing.T) {
	tl := newTestLayouts()
	layout, _ := tl.layouts.Get(constants.LayoutSearchResults)

	for template, expected := range map[string]string{
		"common/block-layout/search-results-table": "common/block-layout/search-results-table",
		"common/block-layout/removed":              constants.TemplateSearchResults,
	} {
		block := model.Block{Layout: constants.LayoutSearchResults, Data: model.BlockData{
			"query":    map[string]any{},
			"limit":    0,
			"template": template,
		}}
		_, err := layout.Render(context.Background(), demoRequest(nil), block)
		require.NoError(t, err)

		call, ok := tl.renderer.LastCall()
		require.True(t, ok)
		assert.Equal(t, expected, call.Name)
	}
}

func TestBrowsePreviewRender(t *testing.T) {
	tl := newTestLayouts()
	layout, _ := tl.layouts.Get(constants.LayoutBrowsePreview)

	block := model.Block{Layout: constants.LayoutBrowsePreview, Data: model.BlockData{
		"resource_type": "items",
		"query":         "?search=report&sort_order=asc",
		"limit":         "1",
		"heading":       "Preview",
		"link-text":     "Browse all",
	}}
	_, err := layout.Render(context.Background(), demoRequest(model.Query{"page": "4"}), block)
	require.NoError(t, err)

	assert.Equal(t, model.Query{
		"search":                "report",
		"site_attachments_only": true,
		"site_id":               1,
		"limit":                 1,
		"sort_by":               "created",
		"sort_order":            "asc",
	}, tl.searcher.LastQuery())

	call, _ := tl.renderer.LastCall()
	assert.Equal(t, constants.TemplateBrowsePreview, call.Name)
	view := call.Data.(BrowsePreviewView)
	assert.Equal(t, "/s/demo/item?search=report&sort_order=asc", view.BrowseURL)
	assert.Equal(t, "Browse all", view.LinkText)
	assert.Len(t, view.Resources, 1)
}

func TestAssetsRenderSkipsMissingAssets(t *testing.T) {
	tl := newTestLayouts()
	layout, _ := tl.layouts.Get(constants.LayoutAssets)

	block := model.Block{Layout: constants.LayoutAssets, Data: model.BlockData{
		"heading": "Partners",
		"assets": []any{
			map[string]any{"id": 3, "url": "https://example.org", "caption": "Logo"},
			map[string]any{"id": 99},
		},
	}}
	_, err := layout.Render(context.Background(), demoRequest(nil), block)
	require.NoError(t, err)

	call, _ := tl.renderer.LastCall()
	view := call.Data.(AssetsView)
	require.Len(t, view.Assets, 1)
	assert.Equal(t, "logo.png", view.Assets[0].Asset.Name)
	assert.Equal(t, "https://example.org", view.Assets[0].URL)
	assert.Equal(t, "Logo", view.Assets[0].Caption)
}

func TestItemShowcaseRender(t *testing.T) {
	tests := []struct {
		name              string
		data              model.BlockData
		expectedTitles    []string
		expectedThumbnail []string
	}{
		{
			name: "item titles with media thumbnail",
			data: model.BlockData{
				"thumbnail_type": "large",
				"attachments": []any{
					map[string]any{"item": 1, "media": 20},
					map[string]any{"item": 404},
					map[string]any{"item": 2},
				},
			},
			expectedTitles: []string{"Annual Report 2023", "Board Meeting Photo"},
			expectedThumbnail: []string{
				"https://catalog.example.org/files/large/report-pdf.jpg",
				"",
			},
		},
		{
			name: "file names fall back to item thumbnails",
			data: model.BlockData{
				"show_title_option": "file_name",
				"attachments": []any{
					map[string]any{"item": 1, "media": 20},
					map[string]any{"item": 2, "media": 404},
				},
			},
			expectedTitles: []string{"report.pdf", ""},
			expectedThumbnail: []string{
				"https://catalog.example.org/files/square/report.jpg",
				"https://catalog.example.org/files/square/board.jpg",
			},
		},
		{
			name: "no titles",
			data: model.BlockData{
				"show_title_option": "no_title",
				"attachments":       []any{map[string]any{"item": 3}},
			},
			expectedTitles:    []string{""},
			expectedThumbnail: []string{""},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tl := newTestLayouts()
			layout, _ := tl.layouts.Get(constants.LayoutItemShowcase)

			_, err := layout.Render(context.Background(), demoRequest(nil), model.Block{Layout: constants.LayoutItemShowcase, Data: tc.data})
			require.NoError(t, err)

			call, _ := tl.renderer.LastCall()
			view := call.Data.(ItemShowcaseView)
			titles := []string{}
			thumbnails := []string{}
			for _, item := range view.Items {
				titles = append(titles, item.Title)
				thumbnails = append(thumbnails, item.ThumbnailURL)
			}
			assert.Equal(t, tc.expectedTitles, titles)
			assert.Equal(t, tc.expectedThumbnail, thumbnails)
		})
	}
}

func TestItemShowcaseHydrate(t *testing.T) {
	tl := newTestLayouts()
	layout, _ := tl.layouts.Get(constants.LayoutItemShowcase)

	errs := &ErrorStore{}
	data := layout.Hydrate(context.Background(), model.BlockData{"attachments": []any{}}, errs)
	assert.False(t, errs.HasErrors())
	assert.Equal(t, "square", data["thumbnail_type"])
	assert.Equal(t, "item_title", data["show_title_option"])

	layout.Hydrate(context.Background(), model.BlockData{"thumbnail_type": "huge"}, errs)
	assert.True(t, errs.HasErrors())
}

func TestPagesMetadata(t *testing.T) {
	site := mock.DemoSite()
	site.Pages[2].Blocks = append(site.Pages[2].Blocks, model.Block{
		Layout: constants.LayoutPageMetadata,
		Data:   model.BlockData{"type": "listing", "extra": "second"},
	})

	blocks := PagesMetadata(&site, "listing")
	require.Len(t, blocks, 2)
	assert.Contains(t, blocks, "catalog")
	assert.Contains(t, blocks, "partners")
	assert.False(t, blocks["partners"].Data.Has("extra"), "first matching block wins")

	assert.Empty(t, PagesMetadata(&site, "event"))
	assert.Empty(t, PagesMetadata(nil, "listing"))
}

func TestPageMetadataRendersNothing(t *testing.T) {
	tl := newTestLayouts()
	layout, _ := tl.layouts.Get(constants.LayoutPageMetadata)

	html, err := layout.Render(context.Background(), demoRequest(nil), model.Block{Layout: constants.LayoutPageMetadata})
	require.NoError(t, err)
	assert.Empty(t, html)
	assert.Empty(t, tl.renderer.Calls())

	data := layout.Hydrate(context.Background(), model.BlockData{"type": " event "}, &ErrorStore{})
	assert.Equal(t, "event", data["type"])
}
