// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"html/template"
	"sort"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
)

// RenderRequest carries what a layout needs to render a block of a page
type RenderRequest struct {
	Site   *model.Site
	Page   *model.Page
	Params model.Query
	Locale string
}

// BlockLayout defines how a block of a given layout is configured and rendered
type BlockLayout interface {
	// Name is the identifier stored in the block
	Name() string
	// Label is the human readable name of the layout
	Label() string
	// Hydrate normalizes submitted data, recording problems in errs
	Hydrate(ctx context.Context, data model.BlockData, errs *ErrorStore) model.BlockData
	// Form returns the fieldset editing the block, populated with its data
	Form(ctx context.Context, site *model.Site, page *model.Page, block *model.Block) Fieldset
	// Render returns the markup of the block
	Render(ctx context.Context, req RenderRequest, block model.Block) (template.HTML, error)
}

// Layouts is the registry of block layouts, keyed by name
type Layouts struct {
	byName map[string]BlockLayout
}

// Get returns the layout with the given name
func (l *Layouts) Get(name string) (BlockLayout, bool) {
	layout, ok := l.byName[name]
	return layout, ok
}

// All returns the registered layouts sorted by name
func (l *Layouts) All() []BlockLayout {
	all := make([]BlockLayout, 0, len(l.byName))
	for _, layout := range l.byName {
		all = append(all, layout)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Name() < all[j].Name()
	})
	return all
}

// NewLayouts creates a registry holding the given layouts
func NewLayouts(layouts ...BlockLayout) *Layouts {
	byName := make(map[string]BlockLayout, len(layouts))
	for _, layout := range layouts {
		byName[layout.Name()] = layout
	}
	return &Layouts{byName: byName}
}
