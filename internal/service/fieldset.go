// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/constants"
)

// Field types of block forms
const (
	FieldText     = "text"
	FieldNumber   = "number"
	FieldCheckbox = "checkbox"
	FieldSelect   = "select"
	FieldTextList = "text-list"
	FieldRecords  = "records"
)

// FieldOption is a choice of a select field
type FieldOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field is an input of a block form
type Field struct {
	Name    string        `json:"name"`
	Key     string        `json:"key"`
	Type    string        `json:"type"`
	Label   string        `json:"label"`
	Info    string        `json:"info,omitempty"`
	Options []FieldOption `json:"options,omitempty"`
	Value   any           `json:"value"`
}

// Fieldset is the form editing one block
type Fieldset struct {
	Layout string  `json:"layout"`
	Label  string  `json:"label"`
	Fields []Field `json:"fields"`
}

// fieldSpec describes a field independently of the block it edits
type fieldSpec struct {
	key     string
	kind    string
	label   string
	info    string
	options []FieldOption
}

// fieldName returns the input name of a block data key. The block index is
// left as a placeholder replaced client side.
func fieldName(key string) string {
	return fmt.Sprintf("o:block[%s][o:data][%s]", constants.FormBlockIndexPlaceholder, key)
}

// buildFieldset populates the field specs with the block data overlaid on
// the layout defaults
func buildFieldset(layout BlockLayout, specs []fieldSpec, defaults model.BlockData, block *model.Block, value func(key string, data model.BlockData) any) Fieldset {
	data := defaults.Clone()
	if block != nil {
		data = block.Data.WithDefaults(defaults)
	}

	fieldset := Fieldset{
		Layout: layout.Name(),
		Label:  layout.Label(),
		Fields: make([]Field, 0, len(specs)),
	}
	for _, spec := range specs {
		field := Field{
			Name:    fieldName(spec.key),
			Key:     spec.key,
			Type:    spec.kind,
			Label:   spec.label,
			Info:    spec.info,
			Options: spec.options,
			Value:   data[spec.key],
		}
		if value != nil {
			field.Value = value(spec.key, data)
		}
		fieldset.Fields = append(fieldset.Fields, field)
	}
	return fieldset
}

var resourceTypeOptions = []FieldOption{
	{Value: string(model.ResourceTypeItems), Label: "Items"},
	{Value: string(model.ResourceTypeItemSets), Label: "Item sets"},
	{Value: string(model.ResourceTypeMedia), Label: "Media"},
}
