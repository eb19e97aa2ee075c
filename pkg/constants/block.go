// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// Block layout names, as persisted in each block of a page.
const (
	LayoutAssets        = "assets"
	LayoutBrowsePreview = "browsePreview"
	LayoutItemShowcase  = "itemShowCase"
	LayoutPageMetadata  = "pageMetadata"
	LayoutSearchResults = "searchResults"
)

// Default rendering templates of each block layout.
const (
	TemplateAssets        = "common/block-layout/assets"
	TemplateBrowsePreview = "common/block-layout/browse-preview"
	TemplateItemShowcase  = "common/block-layout/item-showcase"
	TemplateSearchResults = "common/block-layout/search-results"
	TemplatePagination    = "common/pagination"
	TemplatePage          = "site/page"
)

const (
	// DefaultListingLimit applies when a listing block does not define a limit
	DefaultListingLimit = 12

	// DefaultSortBy and DefaultSortOrder apply when neither the request nor the block sorts
	DefaultSortBy    = "created"
	DefaultSortOrder = "desc"

	// SortByResourceClassLabel is the pseudo-property sorting on the resource class label
	SortByResourceClassLabel = "resource_class_label"

	// FormBlockIndexPlaceholder is replaced client-side by the position of the block on the page
	FormBlockIndexPlaceholder = "__blockIndex__"
)
