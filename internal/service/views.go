// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"html/template"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
)

// Views are the data handed to templates. Labels are translated before
// rendering so templates stay locale agnostic.

// PageView is the data of the page template
type PageView struct {
	Site   *model.Site
	Page   *model.Page
	Blocks []template.HTML
}

// PagerView is the data of the pagination template
type PagerView struct {
	CurrentPage   int
	TotalPages    int
	TotalCount    int
	PreviousURL   string
	NextURL       string
	PreviousLabel string
	NextLabel     string
	Summary       string
}

// SortLinkView is a sort heading rendered as a link
type SortLinkView struct {
	Label  string
	Value  string
	URL    string
	Active bool
	// Order of the current sort when active
	Order string
}

// SearchResultsView is the data of the search results template
type SearchResultsView struct {
	Heading      string
	ResourceType string
	Resources    []model.Resource
	Query        model.Query
	SortBy       string
	SortOrder    string
	SortHeadings []SortLinkView
	Pager        template.HTML
}

// BrowsePreviewView is the data of the browse preview template
type BrowsePreviewView struct {
	Heading      string
	LinkText     string
	BrowseURL    string
	ResourceType string
	Resources    []model.Resource
}

// AssetView is an asset of an assets block
type AssetView struct {
	Asset   *model.Asset
	URL     string
	Label   string
	Caption string
}

// AssetsView is the data of the assets template
type AssetsView struct {
	Heading string
	Assets  []AssetView
}

// ShowcaseItemView is an attachment of an item showcase block
type ShowcaseItemView struct {
	Item         *model.Resource
	Media        *model.Resource
	Title        string
	Caption      string
	ThumbnailURL string
}

// ItemShowcaseView is the data of the item showcase template
type ItemShowcaseView struct {
	Heading       string
	ThumbnailType string
	Items         []ShowcaseItemView
}
