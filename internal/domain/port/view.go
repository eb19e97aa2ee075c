// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"
	"html/template"
)

// Renderer renders named templates to HTML
type Renderer interface {
	// Render executes the named template with the given data
	Render(ctx context.Context, name string, data any) (template.HTML, error)

	// Has reports whether a template with the given name exists
	Has(name string) bool
}

// Translator translates interface strings
type Translator interface {
	// Translate returns the translation of msg in the given locale, or msg itself
	Translate(locale, msg string) string
}
