// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/errors"
)

const templateExt = ".gohtml"

//go:embed templates
var embeddedTemplates embed.FS

var funcs = template.FuncMap{
	"thumbnail": func(r model.Resource, thumbnailType string) string {
		return r.Thumbnail(thumbnailType)
	},
}

// TemplateRenderer renders named html templates. A template is named by its
// path relative to the template root, without extension, for example
// common/block-layout/assets.
type TemplateRenderer struct {
	mu        sync.RWMutex
	themeDir  string
	templates map[string]*template.Template
}

// Render implements the Renderer interface
func (r *TemplateRenderer) Render(ctx context.Context, name string, data any) (template.HTML, error) {
	r.mu.RLock()
	tmpl, ok := r.templates[name]
	r.mu.RUnlock()
	if !ok {
		return "", errors.NewNotFound(fmt.Sprintf("template %q not found", name))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		slog.ErrorContext(ctx, "template execution failed",
			"template", name,
			"error", err,
		)
		return "", errors.NewUnexpected(fmt.Sprintf("failed to render template %q", name), err)
	}
	// the output was escaped by html/template
	return template.HTML(buf.String()), nil
}

// Has implements the Renderer interface
func (r *TemplateRenderer) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.templates[name]
	return ok
}

// Names returns the loaded template names
func (r *TemplateRenderer) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	return names
}

// Reload parses the built-in and theme templates again. The loaded
// templates are kept when parsing fails.
func (r *TemplateRenderer) Reload(ctx context.Context) error {
	templates := map[string]*template.Template{}

	builtin, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return err
	}
	if err := load(templates, builtin); err != nil {
		return err
	}
	if r.themeDir != "" {
		if err := load(templates, os.DirFS(r.themeDir)); err != nil {
			return err
		}
	}

	r.mu.Lock()
	r.templates = templates
	r.mu.Unlock()

	slog.InfoContext(ctx, "templates loaded",
		"count", len(templates),
		"theme_dir", r.themeDir,
	)
	return nil
}

// load parses every template file of the file system, replacing templates
// of the same name
func load(templates map[string]*template.Template, fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, templateExt) {
			return nil
		}

		raw, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", path, err)
		}
		name := strings.TrimSuffix(path, templateExt)
		tmpl, err := template.New(name).Funcs(funcs).Parse(string(raw))
		if err != nil {
			return fmt.Errorf("failed to parse template %s: %w", path, err)
		}
		templates[name] = tmpl
		return nil
	})
}

// NewRenderer loads the built-in templates, then the theme templates of dir
// when set. A theme template overrides the built-in one of the same name and
// may add templates referenced by a block partial or template setting.
func NewRenderer(ctx context.Context, themeDir string) (*TemplateRenderer, error) {
	r := &TemplateRenderer{themeDir: themeDir}
	if err := r.Reload(ctx); err != nil {
		return nil, err
	}
	return r, nil
}
