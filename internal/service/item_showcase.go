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

var itemShowcaseFields = []fieldSpec{
	{key: "heading", kind: FieldText, label: "Heading"},
	{key: "attachments", kind: FieldRecords, label: "Attachments", info: "Each attachment has an item id, and optionally a media id and a caption."},
	{key: "thumbnail_type", kind: FieldSelect, label: "Thumbnail type", options: []FieldOption{
		{Value: model.ThumbnailLarge, Label: "Large"},
		{Value: model.ThumbnailMedium, Label: "Medium"},
		{Value: model.ThumbnailSquare, Label: "Square"},
	}},
	{key: "show_title_option", kind: FieldSelect, label: "Show attachment title", options: []FieldOption{
		{Value: model.ShowTitleItemTitle, Label: "Item title"},
		{Value: model.ShowTitleFileName, Label: "File name"},
		{Value: model.ShowTitleNone, Label: "No title"},
	}},
	{key: "partial", kind: FieldText, label: "Template to display"},
}

// itemShowcase displays attached items, each with an optional media
type itemShowcase struct {
	reader   port.ResourceReader
	renderer port.Renderer
	defaults model.BlockData
}

func (s *itemShowcase) Name() string {
	return constants.LayoutItemShowcase
}

func (s *itemShowcase) Label() string {
	return "Item showcase"
}

func (s *itemShowcase) Hydrate(ctx context.Context, data model.BlockData, errs *ErrorStore) model.BlockData {
	data = data.Clone()
	settings, err := model.ItemShowcaseSettingsFromData(data)
	if err != nil {
		errs.AddError("settings", err)
		return data
	}
	data["thumbnail_type"] = settings.ThumbnailType
	data["show_title_option"] = settings.ShowTitleOption

	if settings.Partial != "" && !s.renderer.Has(settings.Partial) {
		errs.Add("partial", fmt.Sprintf("template %q not found", settings.Partial))
	}
	return data
}

func (s *itemShowcase) Form(ctx context.Context, site *model.Site, page *model.Page, block *model.Block) Fieldset {
	return buildFieldset(s, itemShowcaseFields, s.defaults, block, nil)
}

func (s *itemShowcase) Render(ctx context.Context, req RenderRequest, block model.Block) (template.HTML, error) {
	settings, err := model.ItemShowcaseSettingsFromData(block.Data)
	if err != nil {
		return "", err
	}

	view := ItemShowcaseView{
		Heading:       settings.Heading,
		ThumbnailType: settings.ThumbnailType,
		Items:         make([]ShowcaseItemView, 0, len(settings.Attachments)),
	}
	for _, attachment := range settings.Attachments {
		item, errItem := s.reader.ReadResource(ctx, model.ResourceTypeItems, attachment.ItemID)
		if errItem != nil {
			if errors.IsNotFound(errItem) {
				slog.DebugContext(ctx, "skipping missing item", "item_id", attachment.ItemID)
				continue
			}
			return "", errItem
		}

		var media *model.Resource
		if attachment.MediaID != nil {
			media, err = s.reader.ReadResource(ctx, model.ResourceTypeMedia, *attachment.MediaID)
			switch {
			case errors.IsNotFound(err):
				media = nil
			case err != nil:
				return "", err
			}
		}

		view.Items = append(view.Items, showcaseItem(item, media, attachment.Caption, settings))
	}

	name := templateOr(ctx, s.renderer, settings.Partial, constants.TemplateItemShowcase)
	return s.renderer.Render(ctx, name, view)
}

func showcaseItem(item, media *model.Resource, caption string, settings model.ItemShowcaseSettings) ShowcaseItemView {
	view := ShowcaseItemView{
		Item:    item,
		Media:   media,
		Caption: caption,
	}

	switch settings.ShowTitleOption {
	case model.ShowTitleItemTitle:
		view.Title = item.Title
	case model.ShowTitleFileName:
		if media != nil {
			view.Title = media.Source
		}
	}

	if media != nil {
		view.ThumbnailURL = media.Thumbnail(settings.ThumbnailType)
	}
	if view.ThumbnailURL == "" {
		view.ThumbnailURL = item.Thumbnail(settings.ThumbnailType)
	}
	return view
}

// NewItemShowcaseLayout creates the itemShowCase layout
func NewItemShowcaseLayout(reader port.ResourceReader, renderer port.Renderer, defaults BlockDefaults) BlockLayout {
	return &itemShowcase{
		reader:   reader,
		renderer: renderer,
		defaults: defaults.For(constants.LayoutItemShowcase),
	}
}
