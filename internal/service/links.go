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
)

// pageURL keeps the request query string, replacing the page
func pageURL(params model.Query, page int) string {
	query := params.Without(constants.QueryKeyPage)
	query[constants.QueryKeyPage] = page
	return "?" + query.Encode()
}

// sortURL keeps the request query string, replacing the sort and going
// back to the first page
func sortURL(params model.Query, sortBy, sortOrder string) string {
	query := params.Without(constants.QueryKeyPage)
	query[constants.QueryKeySortBy] = sortBy
	query[constants.QueryKeySortOrder] = sortOrder
	return "?" + query.Encode()
}

// sortLinks turns the sort headings of a listing into links. The active
// heading toggles the order; others start ascending.
func sortLinks(listing *model.Listing, params model.Query) []SortLinkView {
	if len(listing.SortHeadings) == 0 {
		return nil
	}
	currentBy := listing.Query.Value(constants.QueryKeySortBy)
	currentOrder := listing.Query.Value(constants.QueryKeySortOrder)

	links := make([]SortLinkView, 0, len(listing.SortHeadings))
	for _, heading := range listing.SortHeadings {
		link := SortLinkView{
			Label: heading.Label,
			Value: heading.Value,
		}
		nextOrder := "asc"
		if heading.Value == currentBy {
			link.Active = true
			link.Order = currentOrder
			if currentOrder == "asc" {
				nextOrder = "desc"
			}
		}
		link.URL = sortURL(params, heading.Value, nextOrder)
		links = append(links, link)
	}
	return links
}

// renderPager renders the pagination of a paged listing, nothing otherwise
func renderPager(ctx context.Context, renderer port.Renderer, translator port.Translator, pagination *model.Pagination, params model.Query, locale string) (template.HTML, error) {
	if pagination == nil {
		return "", nil
	}

	view := PagerView{
		CurrentPage:   pagination.CurrentPage,
		TotalPages:    pagination.TotalPages(),
		TotalCount:    pagination.TotalCount,
		PreviousLabel: translator.Translate(locale, "Previous"),
		NextLabel:     translator.Translate(locale, "Next"),
	}
	view.Summary = fmt.Sprintf(translator.Translate(locale, "Page %d of %d"), view.CurrentPage, view.TotalPages)
	if pagination.HasPrevious() {
		view.PreviousURL = pageURL(params, pagination.CurrentPage-1)
	}
	if pagination.HasNext() {
		view.NextURL = pageURL(params, pagination.CurrentPage+1)
	}

	return renderer.Render(ctx, constants.TemplatePagination, view)
}

// templateOr returns name when the renderer knows it, fallback otherwise
func templateOr(ctx context.Context, renderer port.Renderer, name, fallback string) string {
	if name == "" || name == fallback {
		return fallback
	}
	if !renderer.Has(name) {
		slog.WarnContext(ctx, "template not found, using default", "template", name, "default", fallback)
		return fallback
	}
	return name
}
