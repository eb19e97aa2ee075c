// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// Keys of the search query understood by the resource search API.
const (
	QueryKeySearch              = "search"
	QueryKeySiteID              = "site_id"
	QueryKeySiteAttachmentsOnly = "site_attachments_only"
	QueryKeySortBy              = "sort_by"
	QueryKeySortOrder           = "sort_order"
	QueryKeyLimit               = "limit"
	QueryKeyPage                = "page"
	QueryKeyPerPage             = "per_page"
	QueryKeyProperty            = "property"
	QueryKeyTerm                = "term"
)
