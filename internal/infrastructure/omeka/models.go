// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package omeka

import (
	"encoding/json"
	"strings"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
)

// Representations of the catalog API, JSON-LD with "o:" prefixed keys

type reference struct {
	ID int `json:"o:id"`
}

type valueObject struct {
	Value string `json:"@value"`
}

type resourceRecord struct {
	ID          int               `json:"o:id"`
	Type        json.RawMessage   `json:"@type"`
	Title       string            `json:"o:title"`
	Created     valueObject       `json:"o:created"`
	Source      string            `json:"o:source"`
	Thumbnails  map[string]string `json:"thumbnail_display_urls"`
	ClassLabel string            `json:"o:resource_class_label"`
}

type propertyRecord struct {
	ID    int    `json:"o:id"`
	Term  string `json:"o:term"`
	Label string `json:"o:label"`
}

type templatePropertyRecord struct {
	Property       reference `json:"o:property"`
	AlternateLabel string    `json:"o:alternate_label"`
}

type resourceTemplateRecord struct {
	ID         int                      `json:"o:id"`
	Label      string                   `json:"o:label"`
	Properties []templatePropertyRecord `json:"o:resource_template_property"`
}

type assetRecord struct {
	ID        int    `json:"o:id"`
	Name      string `json:"o:name"`
	URL       string `json:"o:asset_url"`
	MediaType string `json:"o:media_type"`
	AltText   string `json:"o:alt_text"`
}

// classLabel falls back to the local name of the JSON-LD type, e.g. dctype:Text
func (r resourceRecord) classLabel() string {
	if r.ClassLabel != "" {
		return r.ClassLabel
	}
	var types []string
	if err := json.Unmarshal(r.Type, &types); err != nil {
		var single string
		if json.Unmarshal(r.Type, &single) != nil {
			return ""
		}
		types = []string{single}
	}
	for _, t := range types {
		if strings.HasPrefix(t, "o:") {
			continue
		}
		if _, local, ok := strings.Cut(t, ":"); ok {
			return local
		}
		return t
	}
	return ""
}

func (r resourceRecord) toDomain(resourceType model.ResourceType, raw json.RawMessage) model.Resource {
	resource := model.Resource{
		ID:                 r.ID,
		Type:               resourceType,
		Title:              r.Title,
		ResourceClassLabel: r.classLabel(),
		Created:            r.Created.Value,
		Source:             r.Source,
		Thumbnails:         r.Thumbnails,
	}
	if len(raw) > 0 {
		var data map[string]any
		if json.Unmarshal(raw, &data) == nil {
			resource.Data = data
		}
	}
	return resource
}

func (p propertyRecord) toDomain() *model.Property {
	return &model.Property{
		ID:    p.ID,
		Term:  p.Term,
		Label: p.Label,
	}
}

func (t resourceTemplateRecord) toDomain() *model.ResourceTemplate {
	resourceTemplate := &model.ResourceTemplate{
		ID:         t.ID,
		Label:      t.Label,
		Properties: make([]model.TemplateProperty, 0, len(t.Properties)),
	}
	for _, p := range t.Properties {
		resourceTemplate.Properties = append(resourceTemplate.Properties, model.TemplateProperty{
			PropertyID:     p.Property.ID,
			AlternateLabel: p.AlternateLabel,
		})
	}
	return resourceTemplate
}

func (a assetRecord) toDomain() *model.Asset {
	return &model.Asset{
		ID:        a.ID,
		Name:      a.Name,
		URL:       a.URL,
		MediaType: a.MediaType,
		AltText:   a.AltText,
	}
}
