// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/errors"
)

// PageRenderer renders the blocks of a site page in order
type PageRenderer struct {
	store         port.SiteStore
	layouts       *Layouts
	renderer      port.Renderer
	defaultLocale string
}

// RenderPage renders a page. Blocks of unknown layouts are skipped; any
// other block failure fails the whole page.
func (p *PageRenderer) RenderPage(ctx context.Context, siteSlug, pageSlug string, params model.Query) (template.HTML, error) {

	site, err := p.store.GetSite(ctx, siteSlug)
	if err != nil {
		return "", err
	}

	page, ok := site.Page(pageSlug)
	if !ok {
		return "", errors.NewNotFound(fmt.Sprintf("page %q not found in site %q", pageSlug, siteSlug))
	}

	req := RenderRequest{
		Site:   site,
		Page:   page,
		Params: params,
		Locale: site.Settings.Locale,
	}
	if req.Locale == "" {
		req.Locale = p.defaultLocale
	}

	view := PageView{
		Site:   site,
		Page:   page,
		Blocks: make([]template.HTML, 0, len(page.Blocks)),
	}
	for i, block := range page.Blocks {
		layout, ok := p.layouts.Get(block.Layout)
		if !ok {
			slog.WarnContext(ctx, "skipping block of unknown layout",
				"site", siteSlug,
				"page", pageSlug,
				"layout", block.Layout,
			)
			continue
		}

		html, errRender := layout.Render(ctx, req, block)
		if errRender != nil {
			slog.ErrorContext(ctx, "failed to render block",
				"site", siteSlug,
				"page", pageSlug,
				"index", i,
				"layout", block.Layout,
				"error", errRender,
			)
			return "", fmt.Errorf("block %d (%s): %w", i, block.Layout, errRender)
		}
		view.Blocks = append(view.Blocks, html)
	}

	return p.renderer.Render(ctx, constants.TemplatePage, view)
}

// NewPageRenderer creates a new PageRenderer instance
func NewPageRenderer(store port.SiteStore, layouts *Layouts, renderer port.Renderer, defaultLocale string) *PageRenderer {
	return &PageRenderer{
		store:         store,
		layouts:       layouts,
		renderer:      renderer,
		defaultLocale: defaultLocale,
	}
}
