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

var assetsFields = []fieldSpec{
	{key: "heading", kind: FieldText, label: "Heading"},
	{key: "assets", kind: FieldRecords, label: "Assets", info: "Each asset has an id, and optionally a url, a label and a caption."},
	{key: "partial", kind: FieldText, label: "Template to display"},
}

// assets displays site assets with optional links and captions
type assets struct {
	reader   port.ResourceReader
	renderer port.Renderer
	defaults model.BlockData
}

func (a *assets) Name() string {
	return constants.LayoutAssets
}

func (a *assets) Label() string {
	return "Assets"
}

func (a *assets) Hydrate(ctx context.Context, data model.BlockData, errs *ErrorStore) model.BlockData {
	data = data.Clone()
	settings, err := model.AssetsSettingsFromData(data)
	if err != nil {
		errs.AddError("settings", err)
		return data
	}
	if settings.Partial != "" && !a.renderer.Has(settings.Partial) {
		errs.Add("partial", fmt.Sprintf("template %q not found", settings.Partial))
	}
	return data
}

func (a *assets) Form(ctx context.Context, site *model.Site, page *model.Page, block *model.Block) Fieldset {
	return buildFieldset(a, assetsFields, a.defaults, block, nil)
}

func (a *assets) Render(ctx context.Context, req RenderRequest, block model.Block) (template.HTML, error) {
	settings, err := model.AssetsSettingsFromData(block.Data)
	if err != nil {
		return "", err
	}

	view := AssetsView{
		Heading: settings.Heading,
		Assets:  make([]AssetView, 0, len(settings.Assets)),
	}
	for _, attachment := range settings.Assets {
		asset, errRead := a.reader.ReadAsset(ctx, attachment.AssetID)
		if errRead != nil {
			if errors.IsNotFound(errRead) {
				slog.DebugContext(ctx, "skipping missing asset", "asset_id", attachment.AssetID)
				continue
			}
			return "", errRead
		}
		view.Assets = append(view.Assets, AssetView{
			Asset:   asset,
			URL:     attachment.URL,
			Label:   attachment.Label,
			Caption: attachment.Caption,
		})
	}

	name := templateOr(ctx, a.renderer, settings.Partial, constants.TemplateAssets)
	return a.renderer.Render(ctx, name, view)
}

// NewAssetsLayout creates the assets layout
func NewAssetsLayout(reader port.ResourceReader, renderer port.Renderer, defaults BlockDefaults) BlockLayout {
	return &assets{
		reader:   reader,
		renderer: renderer,
		defaults: defaults.For(constants.LayoutAssets),
	}
}
