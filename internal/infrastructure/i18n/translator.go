// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package i18n

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/port"
)

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// Translator translates messages from per-locale YAML catalogs. A locale
// such as fr_CA falls back to fr, then to the message itself.
type Translator struct {
	catalogs map[string]map[string]string
}

// Translate implements the Translator interface
func (t *Translator) Translate(locale, msg string) string {
	for _, candidate := range candidates(locale) {
		if translated, ok := t.catalogs[candidate][msg]; ok && translated != "" {
			return translated
		}
	}
	return msg
}

// Locales returns the loaded locale names
func (t *Translator) Locales() []string {
	locales := make([]string, 0, len(t.catalogs))
	for locale := range t.catalogs {
		locales = append(locales, locale)
	}
	return locales
}

func candidates(locale string) []string {
	locale = normalize(locale)
	if locale == "" {
		return nil
	}
	if language, _, ok := strings.Cut(locale, "_"); ok {
		return []string{locale, language}
	}
	return []string{locale}
}

func normalize(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(locale), "-", "_")
}

// load merges every *.yaml catalog of the file system, later entries win
func (t *Translator) load(fsys fs.FS) error {
	matches, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return err
	}
	for _, name := range matches {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("failed to read locale %s: %w", name, err)
		}
		var messages map[string]string
		if err := yaml.Unmarshal(raw, &messages); err != nil {
			return fmt.Errorf("failed to decode locale %s: %w", name, err)
		}

		locale := normalize(strings.TrimSuffix(path.Base(name), ".yaml"))
		if t.catalogs[locale] == nil {
			t.catalogs[locale] = make(map[string]string, len(messages))
		}
		for msg, translated := range messages {
			t.catalogs[locale][msg] = translated
		}
	}
	return nil
}

// NewTranslator loads the built-in catalogs, then the catalogs of dir when set
func NewTranslator(ctx context.Context, dir string) (port.Translator, error) {
	t := &Translator{catalogs: map[string]map[string]string{}}

	builtin, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		return nil, err
	}
	if err := t.load(builtin); err != nil {
		return nil, err
	}

	if dir != "" {
		if err := t.load(os.DirFS(dir)); err != nil {
			return nil, err
		}
	}

	slog.InfoContext(ctx, "translations loaded",
		"locales", t.Locales(),
		"dir", dir,
	)
	return t, nil
}
