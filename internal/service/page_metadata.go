// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"html/template"
	"strings"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/constants"
)

var pageMetadataFields = []fieldSpec{
	{key: "type", kind: FieldText, label: "Page type", info: "Pages sharing a type can be listed together, e.g. event or article."},
}

// pageMetadata stores data about its page and renders nothing
type pageMetadata struct {
	defaults model.BlockData
}

func (p *pageMetadata) Name() string {
	return constants.LayoutPageMetadata
}

func (p *pageMetadata) Label() string {
	return "Page metadata"
}

func (p *pageMetadata) Hydrate(ctx context.Context, data model.BlockData, errs *ErrorStore) model.BlockData {
	data = data.Clone()
	data["type"] = strings.TrimSpace(data.String("type"))
	return data
}

func (p *pageMetadata) Form(ctx context.Context, site *model.Site, page *model.Page, block *model.Block) Fieldset {
	return buildFieldset(p, pageMetadataFields, p.defaults, block, nil)
}

func (p *pageMetadata) Render(ctx context.Context, req RenderRequest, block model.Block) (template.HTML, error) {
	return "", nil
}

// PagesMetadata returns, for each page of the site, its first page metadata
// block of the given type, keyed by page slug
func PagesMetadata(site *model.Site, pageType string) map[string]model.Block {
	blocks := make(map[string]model.Block)
	if site == nil {
		return blocks
	}
	for _, page := range site.Pages {
		for _, block := range page.Blocks {
			if block.Layout == constants.LayoutPageMetadata && block.Data.String("type") == pageType {
				blocks[page.Slug] = block
				break
			}
		}
	}
	return blocks
}

// PagesMetadataService exposes the page metadata of stored sites
type PagesMetadataService struct {
	store port.SiteStore
}

// PagesMetadata returns the page metadata blocks of a site for a page type
func (s *PagesMetadataService) PagesMetadata(ctx context.Context, siteSlug, pageType string) (map[string]model.Block, error) {
	site, err := s.store.GetSite(ctx, siteSlug)
	if err != nil {
		return nil, err
	}
	return PagesMetadata(site, pageType), nil
}

// NewPageMetadataLayout creates the pageMetadata layout
func NewPageMetadataLayout(defaults BlockDefaults) BlockLayout {
	return &pageMetadata{
		defaults: defaults.For(constants.LayoutPageMetadata),
	}
}

// NewPagesMetadataService creates a new PagesMetadataService instance
func NewPagesMetadataService(store port.SiteStore) *PagesMetadataService {
	return &PagesMetadataService{store: store}
}
