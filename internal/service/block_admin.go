// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/errors"
)

// LayoutSummary names a registered layout
type LayoutSummary struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// BlockAdmin builds block forms and saves hydrated blocks
type BlockAdmin struct {
	store   port.SiteStore
	layouts *Layouts
}

// Layouts lists the registered layouts
func (a *BlockAdmin) Layouts() []LayoutSummary {
	all := a.layouts.All()
	summaries := make([]LayoutSummary, 0, len(all))
	for _, layout := range all {
		summaries = append(summaries, LayoutSummary{Name: layout.Name(), Label: layout.Label()})
	}
	return summaries
}

// BlockForm returns the form of an existing block of a page
func (a *BlockAdmin) BlockForm(ctx context.Context, siteSlug, pageSlug string, index int) (*Fieldset, error) {
	site, page, err := a.page(ctx, siteSlug, pageSlug)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(page.Blocks) {
		return nil, errors.NewNotFound(fmt.Sprintf("block %d not found in page %q", index, pageSlug))
	}

	block := &page.Blocks[index]
	layout, ok := a.layouts.Get(block.Layout)
	if !ok {
		return nil, errors.NewNotFound(fmt.Sprintf("layout %q not found", block.Layout))
	}

	fieldset := layout.Form(ctx, site, page, block)
	return &fieldset, nil
}

// LayoutForm returns the form of a new block of the given layout
func (a *BlockAdmin) LayoutForm(ctx context.Context, siteSlug, layoutName string) (*Fieldset, error) {
	site, err := a.store.GetSite(ctx, siteSlug)
	if err != nil {
		return nil, err
	}
	layout, ok := a.layouts.Get(layoutName)
	if !ok {
		return nil, errors.NewNotFound(fmt.Sprintf("layout %q not found", layoutName))
	}

	fieldset := layout.Form(ctx, site, nil, nil)
	return &fieldset, nil
}

// SaveBlocks hydrates the submitted blocks and replaces the blocks of the
// page. Nothing is saved when any block is invalid.
func (a *BlockAdmin) SaveBlocks(ctx context.Context, siteSlug, pageSlug string, blocks []model.Block) ([]model.Block, error) {
	if _, _, err := a.page(ctx, siteSlug, pageSlug); err != nil {
		return nil, err
	}

	errs := &ErrorStore{}
	hydrated := make([]model.Block, 0, len(blocks))
	for i, block := range blocks {
		blockErrs := errs.WithPrefix(fmt.Sprintf("blocks[%d].", i))

		layout, ok := a.layouts.Get(block.Layout)
		if !ok {
			blockErrs.Add("layout", fmt.Sprintf("unknown layout %q", block.Layout))
			continue
		}

		data := block.Data
		if data == nil {
			data = model.BlockData{}
		}
		hydrated = append(hydrated, model.Block{
			Layout: block.Layout,
			Data:   layout.Hydrate(ctx, data, blockErrs),
		})
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	if err := a.store.SavePageBlocks(ctx, siteSlug, pageSlug, hydrated); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "page blocks saved",
		"site", siteSlug,
		"page", pageSlug,
		"blocks", len(hydrated),
	)
	return hydrated, nil
}

func (a *BlockAdmin) page(ctx context.Context, siteSlug, pageSlug string) (*model.Site, *model.Page, error) {
	site, err := a.store.GetSite(ctx, siteSlug)
	if err != nil {
		return nil, nil, err
	}
	page, ok := site.Page(pageSlug)
	if !ok {
		return nil, nil, errors.NewNotFound(fmt.Sprintf("page %q not found in site %q", pageSlug, siteSlug))
	}
	return site, page, nil
}

// NewBlockAdmin creates a new BlockAdmin instance
func NewBlockAdmin(store port.SiteStore, layouts *Layouts) *BlockAdmin {
	return &BlockAdmin{
		store:   store,
		layouts: layouts,
	}
}
