// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/constants"
)

// sortHeadings resolves the configured sort keys to labelled headings.
// Keys that resolve to no property are dropped; order is preserved.
func (b *ListingQueryBuilder) sortHeadings(ctx context.Context, settings model.SearchResultsSettings, locale string) []model.SortHeading {
	if len(settings.SortHeadings) == 0 {
		return nil
	}

	resourceTemplate := b.resourceTemplate(ctx, settings.ResourceTemplate)

	headings := make([]model.SortHeading, 0, len(settings.SortHeadings))
	for _, key := range settings.SortHeadings {
		label, ok := b.sortLabel(ctx, key, resourceTemplate)
		if !ok {
			continue
		}
		headings = append(headings, model.SortHeading{
			Label: b.translator.Translate(locale, label),
			Value: key,
		})
	}
	return headings
}

// sortLabel returns the untranslated label of a sort key
func (b *ListingQueryBuilder) sortLabel(ctx context.Context, key string, resourceTemplate *model.ResourceTemplate) (string, bool) {
	switch key {
	case constants.DefaultSortBy:
		return "Created", true
	case constants.SortByResourceClassLabel:
		return "Class", true
	}

	property, err := b.properties.FindProperty(ctx, key)
	if err != nil || property == nil {
		return "", false
	}

	if templateProperty := resourceTemplate.TemplateProperty(property.ID); templateProperty != nil && templateProperty.AlternateLabel != "" {
		return templateProperty.AlternateLabel, true
	}
	return property.Label, true
}

// resourceTemplate reads the configured template. A stale or unreadable
// template is treated as no template so the page still renders.
func (b *ListingQueryBuilder) resourceTemplate(ctx context.Context, id *int) *model.ResourceTemplate {
	if id == nil {
		return nil
	}
	resourceTemplate, err := b.templates.ReadResourceTemplate(ctx, *id)
	if err != nil {
		return nil
	}
	return resourceTemplate
}
