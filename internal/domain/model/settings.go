// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"fmt"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/errors"
)

// SearchResultsSettings configures a search results block
type SearchResultsSettings struct {
	// Collection to search
	ResourceType ResourceType
	// Stored filter, decoded at hydration
	Query Query
	// Limit is nil when unset (default applies); zero means unlimited
	Limit *int
	// Pagination pages the listing instead of capping it
	Pagination bool
	// Heading displayed above the listing
	Heading string
	// Sort keys offered as column headings
	SortHeadings []string
	// ResourceTemplate renames property labels of sort headings when set
	ResourceTemplate *int
	// Template overrides the rendering template
	Template string
}

// SearchResultsSettingsFromData validates the persisted data of a search results block
func SearchResultsSettingsFromData(data BlockData) (SearchResultsSettings, error) {
	var (
		settings SearchResultsSettings
		err      error
	)

	settings.ResourceType, err = ParseResourceType(data.String("resource_type"))
	if err != nil {
		return settings, errors.NewValidation("invalid resource_type", err)
	}

	switch q := data["query"].(type) {
	case nil:
		settings.Query = Query{}
	case map[string]any:
		settings.Query = Query(q)
	case Query:
		settings.Query = q
	case string:
		// data saved before hydration decoded the query
		settings.Query = ParseQuery(q)
	case []any:
		// an empty mapping serialized as a list
		if len(q) > 0 {
			return settings, errors.NewValidation("invalid query", fmt.Errorf("query must be a mapping"))
		}
		settings.Query = Query{}
	default:
		return settings, errors.NewValidation("invalid query", fmt.Errorf("query must be a mapping"))
	}

	limit, ok, errLimit := data.Int("limit")
	if errLimit != nil {
		return settings, errors.NewValidation("invalid limit", errLimit)
	}
	if ok {
		if limit < 0 {
			return settings, errors.NewValidation("invalid limit", fmt.Errorf("limit must not be negative"))
		}
		settings.Limit = &limit
	}

	settings.Pagination = data.Bool("pagination")
	settings.Heading = data.String("heading")
	settings.Template = data.String("template")

	settings.SortHeadings, err = data.Strings("sort_headings")
	if err != nil {
		return settings, errors.NewValidation("invalid sort_headings", err)
	}

	templateID, ok, errTemplate := data.Int("resource_template")
	if errTemplate != nil {
		return settings, errors.NewValidation("invalid resource_template", errTemplate)
	}
	if ok && templateID > 0 {
		settings.ResourceTemplate = &templateID
	}

	return settings, nil
}

// BrowsePreviewSettings configures a browse preview block
type BrowsePreviewSettings struct {
	ResourceType ResourceType
	// Query is kept as the raw query string
	Query    string
	Limit    int
	Heading  string
	LinkText string
	Partial  string
}

// BrowsePreviewSettingsFromData validates the persisted data of a browse preview block
func BrowsePreviewSettingsFromData(data BlockData) (BrowsePreviewSettings, error) {
	settings := BrowsePreviewSettings{
		Query:    data.String("query"),
		Heading:  data.String("heading"),
		LinkText: data.String("link-text"),
		Partial:  data.String("partial"),
	}

	var err error
	settings.ResourceType, err = ParseResourceType(data.String("resource_type"))
	if err != nil {
		return settings, errors.NewValidation("invalid resource_type", err)
	}

	limit, ok, errLimit := data.Int("limit")
	switch {
	case errLimit != nil:
		return settings, errors.NewValidation("invalid limit", errLimit)
	case !ok:
		settings.Limit = constants.DefaultListingLimit
	case limit < 0:
		return settings, errors.NewValidation("invalid limit", fmt.Errorf("limit must not be negative"))
	default:
		settings.Limit = limit
	}

	return settings, nil
}

// AssetAttachment references an asset shown by an assets block
type AssetAttachment struct {
	AssetID int
	URL     string
	Label   string
	Caption string
}

// AssetsSettings configures an assets block
type AssetsSettings struct {
	Heading string
	Assets  []AssetAttachment
	Partial string
}

// AssetsSettingsFromData validates the persisted data of an assets block
func AssetsSettingsFromData(data BlockData) (AssetsSettings, error) {
	settings := AssetsSettings{
		Heading: data.String("heading"),
		Partial: data.String("partial"),
	}

	records, err := data.Records("assets")
	if err != nil {
		return settings, errors.NewValidation("invalid assets", err)
	}
	for i, record := range records {
		id, ok, errID := record.Int("id")
		if errID != nil || !ok || id <= 0 {
			return settings, errors.NewValidation(fmt.Sprintf("invalid asset at position %d", i), errID)
		}
		settings.Assets = append(settings.Assets, AssetAttachment{
			AssetID: id,
			URL:     record.String("url"),
			Label:   record.String("label"),
			Caption: record.String("caption"),
		})
	}

	return settings, nil
}

// Thumbnail types of an item showcase
const (
	ThumbnailLarge  = "large"
	ThumbnailMedium = "medium"
	ThumbnailSquare = "square"
)

// Title options of an item showcase
const (
	ShowTitleItemTitle = "item_title"
	ShowTitleFileName  = "file_name"
	ShowTitleNone      = "no_title"
)

// ItemAttachment references an item, and optionally one of its media
type ItemAttachment struct {
	ItemID  int
	MediaID *int
	Caption string
}

// ItemShowcaseSettings configures an item showcase block
type ItemShowcaseSettings struct {
	Attachments     []ItemAttachment
	ThumbnailType   string
	ShowTitleOption string
	Heading         string
	Partial         string
}

// ItemShowcaseSettingsFromData validates the persisted data of an item showcase block
func ItemShowcaseSettingsFromData(data BlockData) (ItemShowcaseSettings, error) {
	settings := ItemShowcaseSettings{
		ThumbnailType:   data.String("thumbnail_type"),
		ShowTitleOption: data.String("show_title_option"),
		Heading:         data.String("heading"),
		Partial:         data.String("partial"),
	}

	switch settings.ThumbnailType {
	case "":
		settings.ThumbnailType = ThumbnailSquare
	case ThumbnailLarge, ThumbnailMedium, ThumbnailSquare:
	default:
		return settings, errors.NewValidation(fmt.Sprintf("invalid thumbnail_type %q", settings.ThumbnailType))
	}

	switch settings.ShowTitleOption {
	case "":
		settings.ShowTitleOption = ShowTitleItemTitle
	case ShowTitleItemTitle, ShowTitleFileName, ShowTitleNone:
	default:
		return settings, errors.NewValidation(fmt.Sprintf("invalid show_title_option %q", settings.ShowTitleOption))
	}

	records, err := data.Records("attachments")
	if err != nil {
		return settings, errors.NewValidation("invalid attachments", err)
	}
	for i, record := range records {
		itemID, ok, errItem := record.Int("item")
		if errItem != nil || !ok || itemID <= 0 {
			return settings, errors.NewValidation(fmt.Sprintf("invalid item at position %d", i), errItem)
		}
		attachment := ItemAttachment{
			ItemID:  itemID,
			Caption: record.String("caption"),
		}
		mediaID, ok, errMedia := record.Int("media")
		if errMedia != nil {
			return settings, errors.NewValidation(fmt.Sprintf("invalid media at position %d", i), errMedia)
		}
		if ok && mediaID > 0 {
			attachment.MediaID = &mediaID
		}
		settings.Attachments = append(settings.Attachments, attachment)
	}

	return settings, nil
}
