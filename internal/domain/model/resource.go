// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
)

// ResourceType is a searchable catalog collection
type ResourceType string

// Searchable catalog collections
const (
	ResourceTypeItems    ResourceType = "items"
	ResourceTypeItemSets ResourceType = "item_sets"
	ResourceTypeMedia    ResourceType = "media"
)

// Valid reports whether t names a catalog collection
func (t ResourceType) Valid() bool {
	switch t {
	case ResourceTypeItems, ResourceTypeItemSets, ResourceTypeMedia:
		return true
	}
	return false
}

// Singular returns the name used for links and CSS classes of a single resource
func (t ResourceType) Singular() string {
	switch t {
	case ResourceTypeItems:
		return "item"
	case ResourceTypeItemSets:
		return "item-set"
	default:
		return string(t)
	}
}

// ParseResourceType validates a resource type, defaulting to items when empty
func ParseResourceType(s string) (ResourceType, error) {
	if s == "" {
		return ResourceTypeItems, nil
	}
	t := ResourceType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unsupported resource type %q", s)
	}
	return t, nil
}

// Resource is a catalog record (item, item set or media)
type Resource struct {
	// Catalog identifier
	ID int `json:"id"`
	// Collection the resource belongs to
	Type ResourceType `json:"type"`
	// Display title
	Title string `json:"title"`
	// Label of the resource class, if any
	ResourceClassLabel string `json:"resource_class_label,omitempty"`
	// Creation date as provided by the catalog
	Created string `json:"created,omitempty"`
	// Original file name, for media
	Source string `json:"source,omitempty"`
	// Thumbnail URLs keyed by type (large, medium, square)
	Thumbnails map[string]string `json:"thumbnails,omitempty"`
	// Raw record as returned by the catalog, for templates
	Data map[string]any `json:"data,omitempty"`
}

// Thumbnail returns the thumbnail URL of the given type, or an empty string
func (r Resource) Thumbnail(thumbnailType string) string {
	return r.Thumbnails[thumbnailType]
}

// SearchResult contains the results of a resource search
type SearchResult struct {
	// Resources found
	Resources []Resource
	// Total number of matches, ignoring paging
	TotalResults int
}
