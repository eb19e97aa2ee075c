// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/middleware"
	usecase "github.com/linuxfoundation/lfx-v2-blockplus-service/internal/service"

	goahttp "goa.design/goa/v3/http"
	"golang.org/x/sync/errgroup"
)

// Mount describes a mounted HTTP endpoint
type Mount struct {
	Method  string
	Verb    string
	Pattern string
}

// readinessChecker is implemented by every backend of the service
type readinessChecker interface {
	IsReady(ctx context.Context) error
}

// BlockPlusSvc serves the rendered pages and the block administration.
type BlockPlusSvc struct {
	pages    *usecase.PageRenderer
	admin    *usecase.BlockAdmin
	metadata *usecase.PagesMetadataService
	backends map[string]readinessChecker
	vars     func(*http.Request) map[string]string

	Mounts []*Mount
}

// Mount registers the endpoints on mux. Admin endpoints require an
// authenticated principal.
func (s *BlockPlusSvc) Mount(mux goahttp.Muxer, authenticator port.Authenticator) {
	s.vars = mux.Vars
	authenticated := middleware.AuthMiddleware(authenticator)

	s.handle(mux, "Livez", http.MethodGet, "/livez", s.Livez)
	s.handle(mux, "Readyz", http.MethodGet, "/readyz", s.Readyz)
	s.handle(mux, "Layouts", http.MethodGet, "/block-layouts", s.Layouts)
	s.handle(mux, "RenderPage", http.MethodGet, "/s/{site_slug}/page/{page_slug}", s.RenderPage)
	s.handle(mux, "PagesMetadata", http.MethodGet, "/s/{site_slug}/pages-metadata", s.PagesMetadata)
	s.handle(mux, "BlockForm", http.MethodGet, "/admin/s/{site_slug}/page/{page_slug}/blocks/{index}/form",
		authenticated(http.HandlerFunc(s.BlockForm)).ServeHTTP)
	s.handle(mux, "LayoutForm", http.MethodGet, "/admin/s/{site_slug}/layouts/{layout}/form",
		authenticated(http.HandlerFunc(s.LayoutForm)).ServeHTTP)
	s.handle(mux, "SaveBlocks", http.MethodPut, "/admin/s/{site_slug}/page/{page_slug}/blocks",
		authenticated(http.HandlerFunc(s.SaveBlocks)).ServeHTTP)
}

func (s *BlockPlusSvc) handle(mux goahttp.Muxer, method, verb, pattern string, h http.HandlerFunc) {
	mux.Handle(verb, pattern, h)
	s.Mounts = append(s.Mounts, &Mount{Method: method, Verb: verb, Pattern: pattern})
}

// Livez checks if the service is alive.
func (s *BlockPlusSvc) Livez(w http.ResponseWriter, r *http.Request) {
	// This always returns as long as the service is still running.
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("OK\n"))
}

// Readyz checks if the service is able to take inbound requests.
func (s *BlockPlusSvc) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// backends are checked concurrently, the first failure is reported
	eg, egCtx := errgroup.WithContext(ctx)
	for name, backend := range s.backends {
		eg.Go(func() error {
			if err := backend.IsReady(egCtx); err != nil {
				slog.ErrorContext(ctx, "blockplus.readyz failed",
					"backend", name,
					"error", err,
				)
				return err
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		writeError(ctx, w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("OK\n"))
}

// Layouts lists the block layouts available to page editors.
func (s *BlockPlusSvc) Layouts(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, &LayoutsResult{Layouts: s.admin.Layouts()})
}

// RenderPage renders the blocks of a site page. The query string is handed
// to the blocks as request params.
func (s *BlockPlusSvc) RenderPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := s.vars(r)

	slog.DebugContext(ctx, "blockplus.render-page",
		"site", vars["site_slug"],
		"page", vars["page_slug"],
	)

	html, err := s.pages.RenderPage(ctx, vars["site_slug"], vars["page_slug"], requestToParams(r))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// PagesMetadata returns the metadata block of every page of the given type.
func (s *BlockPlusSvc) PagesMetadata(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	siteSlug := s.vars(r)["site_slug"]
	pageType := r.URL.Query().Get("type")

	blocks, err := s.metadata.PagesMetadata(ctx, siteSlug, pageType)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, domainPagesMetadataToResponse(pageType, blocks))
}

// BlockForm returns the populated form of an existing block.
func (s *BlockPlusSvc) BlockForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := s.vars(r)

	index, err := pathToBlockIndex(vars["index"])
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	fieldset, err := s.admin.BlockForm(ctx, vars["site_slug"], vars["page_slug"], index)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, fieldset)
}

// LayoutForm returns the form of a new block of a layout.
func (s *BlockPlusSvc) LayoutForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := s.vars(r)

	fieldset, err := s.admin.LayoutForm(ctx, vars["site_slug"], vars["layout"])
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, fieldset)
}

// SaveBlocks hydrates and persists the block list of a page.
func (s *BlockPlusSvc) SaveBlocks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := s.vars(r)

	payload, err := requestToSaveBlocksPayload(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var principal string
	if editor, ok := middleware.EditorFromContext(ctx); ok {
		principal = editor.Principal
	}
	slog.InfoContext(ctx, "blockplus.save-blocks",
		"site", vars["site_slug"],
		"page", vars["page_slug"],
		"principal", principal,
	)

	blocks, err := s.admin.SaveBlocks(ctx, vars["site_slug"], vars["page_slug"], payload.Blocks)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, &BlocksResult{Blocks: blocks})
}

// NewBlockPlusSvc wires the block layouts and the page services.
func NewBlockPlusSvc(searcher port.ResourceSearcher,
	catalog port.Catalog,
	store port.SiteStore,
	renderer port.Renderer,
	translator port.Translator,
	defaultLocale string,
) *BlockPlusSvc {
	defaults := usecase.DefaultBlockSettings()
	builder := usecase.NewListingQueryBuilder(searcher, catalog, catalog, translator)

	layouts := usecase.NewLayouts(
		usecase.NewSearchResultsLayout(builder, renderer, translator, defaults),
		usecase.NewBrowsePreviewLayout(searcher, renderer, translator, defaults),
		usecase.NewAssetsLayout(catalog, renderer, defaults),
		usecase.NewItemShowcaseLayout(catalog, renderer, defaults),
		usecase.NewPageMetadataLayout(defaults),
	)

	return &BlockPlusSvc{
		pages:    usecase.NewPageRenderer(store, layouts, renderer, defaultLocale),
		admin:    usecase.NewBlockAdmin(store, layouts),
		metadata: usecase.NewPagesMetadataService(store),
		backends: map[string]readinessChecker{
			"searcher":   searcher,
			"catalog":    catalog,
			"site_store": store,
		},
	}
}
