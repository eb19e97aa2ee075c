// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"fmt"
	"html/template"
	"sync"
)

// RenderCall records a template execution
type RenderCall struct {
	Name string
	Data any
}

// MockRenderer records render calls and returns the template name as markup
type MockRenderer struct {
	mu        sync.Mutex
	templates map[string]bool
	calls     []RenderCall
	err       error
}

// NewMockRenderer creates a renderer knowing the given template names
func NewMockRenderer(names ...string) *MockRenderer {
	m := &MockRenderer{templates: map[string]bool{}}
	for _, name := range names {
		m.templates[name] = true
	}
	return m
}

// Render implements the Renderer interface
func (m *MockRenderer) Render(ctx context.Context, name string, data any) (template.HTML, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, RenderCall{Name: name, Data: data})
	if m.err != nil {
		return "", m.err
	}
	return template.HTML(fmt.Sprintf("<%s>", name)), nil
}

// Has implements the Renderer interface
func (m *MockRenderer) Has(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.templates[name]
}

// Calls returns the render calls received so far
func (m *MockRenderer) Calls() []RenderCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RenderCall(nil), m.calls...)
}

// LastCall returns the last render call
func (m *MockRenderer) LastCall() (RenderCall, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return RenderCall{}, false
	}
	return m.calls[len(m.calls)-1], true
}

// SetError sets the mock error for Render calls
func (m *MockRenderer) SetError(err error) {
	m.err = err
}

// MockTranslator translates from a fixed catalog, keyed by locale then message
type MockTranslator struct {
	Messages map[string]map[string]string
}

// Translate implements the Translator interface
func (m *MockTranslator) Translate(locale, msg string) string {
	if translated, ok := m.Messages[locale][msg]; ok {
		return translated
	}
	return msg
}

// NewMockTranslator creates a translator returning messages unchanged
func NewMockTranslator() *MockTranslator {
	return &MockTranslator{Messages: map[string]map[string]string{}}
}
