// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
)

//go:embed block_settings.yaml
var blockSettingsYAML []byte

// BlockDefaults holds the default data of each layout, keyed by layout name
type BlockDefaults map[string]model.BlockData

// For returns a copy of the defaults of a layout, empty when unknown
func (d BlockDefaults) For(layout string) model.BlockData {
	defaults, ok := d[layout]
	if !ok {
		return model.BlockData{}
	}
	return defaults.Clone()
}

// ParseBlockDefaults decodes a YAML document of per-layout defaults
func ParseBlockDefaults(raw []byte) (BlockDefaults, error) {
	var decoded map[string]map[string]any
	if err := yaml.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode block settings: %w", err)
	}

	defaults := make(BlockDefaults, len(decoded))
	for layout, data := range decoded {
		if data == nil {
			data = map[string]any{}
		}
		defaults[layout] = model.BlockData(data)
	}
	return defaults, nil
}

// DefaultBlockSettings returns the embedded per-layout defaults
func DefaultBlockSettings() BlockDefaults {
	defaults, err := ParseBlockDefaults(blockSettingsYAML)
	if err != nil {
		// the embedded document is fixed at build time
		panic(err)
	}
	return defaults
}
