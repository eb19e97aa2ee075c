// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

// Property is a metadata field definition identified by a namespaced term, e.g. dcterms:title
type Property struct {
	ID    int    `json:"id"`
	Term  string `json:"term"`
	Label string `json:"label"`
}

// ResourceTemplate is an editor-defined overlay able to rename property labels
type ResourceTemplate struct {
	ID         int                `json:"id"`
	Label      string             `json:"label"`
	Properties []TemplateProperty `json:"properties"`
}

// TemplateProperty returns the template settings of a property, nil when the
// template does not define it
func (rt *ResourceTemplate) TemplateProperty(propertyID int) *TemplateProperty {
	if rt == nil {
		return nil
	}
	for i := range rt.Properties {
		if rt.Properties[i].PropertyID == propertyID {
			return &rt.Properties[i]
		}
	}
	return nil
}

// TemplateProperty is a property as defined inside a resource template
type TemplateProperty struct {
	PropertyID     int    `json:"property_id"`
	AlternateLabel string `json:"alternate_label,omitempty"`
}

// Asset is a file uploaded to the site outside of the catalog
type Asset struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	MediaType string `json:"media_type,omitempty"`
	AltText   string `json:"alt_text,omitempty"`
}
