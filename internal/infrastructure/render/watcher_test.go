// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package render

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestThemeWatcherReloadsTemplates(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	ctx := context.Background()

	renderer, err := NewRenderer(ctx, dir)
	require.NoError(t, err)
	require.False(t, renderer.Has("common/block-layout/partners"))

	watcher, err := NewThemeWatcher(renderer)
	require.NoError(t, err)
	watcher.debounce = 20 * time.Millisecond
	require.NoError(t, watcher.Start(ctx))

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "common", "block-layout"), 0o750))
	// the new directory is picked up before the template is written
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "common", "block-layout", "partners.gohtml"), []byte(`<p>{{ .Heading }}</p>`), 0o600))

	assert.Eventually(t, func() bool {
		return renderer.Has("common/block-layout/partners")
	}, 2*time.Second, 20*time.Millisecond)

	require.NoError(t, watcher.Stop())
}

func TestThemeWatcherPicksUpNewDirectoryTrees(t *testing.T) {
	tests := []struct {
		name     string
		template string
		create   func(t *testing.T, dir string)
	}{
		{
			name:     "nested directories then template",
			template: "common/block-layout/partners",
			create: func(t *testing.T, dir string) {
				require.NoError(t, os.MkdirAll(filepath.Join(dir, "common", "block-layout"), 0o750))
				require.NoError(t, os.WriteFile(filepath.Join(dir, "common", "block-layout", "partners.gohtml"), []byte(`<p>partners</p>`), 0o600))
			},
		},
		{
			name:     "tree copied in with its templates",
			template: "common/block-layout/sponsors",
			create: func(t *testing.T, dir string) {
				staging := t.TempDir()
				require.NoError(t, os.MkdirAll(filepath.Join(staging, "common", "block-layout"), 0o750))
				require.NoError(t, os.WriteFile(filepath.Join(staging, "common", "block-layout", "sponsors.gohtml"), []byte(`<p>sponsors</p>`), 0o600))
				require.NoError(t, os.Rename(filepath.Join(staging, "common"), filepath.Join(dir, "common")))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer goleak.VerifyNone(t)

			dir := t.TempDir()
			ctx := context.Background()

			renderer, err := NewRenderer(ctx, dir)
			require.NoError(t, err)

			watcher, err := NewThemeWatcher(renderer)
			require.NoError(t, err)
			watcher.debounce = 20 * time.Millisecond
			require.NoError(t, watcher.Start(ctx))

			tc.create(t, dir)

			assert.Eventually(t, func() bool {
				return renderer.Has(tc.template)
			}, 2*time.Second, 20*time.Millisecond)

			require.NoError(t, watcher.Stop())
		})
	}
}

func TestThemeWatcherKeepsTemplatesOnParseError(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	ctx := context.Background()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "banner.gohtml"), []byte(`<p>banner</p>`), 0o600))

	renderer, err := NewRenderer(ctx, dir)
	require.NoError(t, err)

	watcher, err := NewThemeWatcher(renderer)
	require.NoError(t, err)
	watcher.debounce = 20 * time.Millisecond
	require.NoError(t, watcher.Start(ctx))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "banner.gohtml"), []byte(`{{ .Unclosed`), 0o600))
	time.Sleep(200 * time.Millisecond)

	out, err := renderer.Render(ctx, "banner", nil)
	require.NoError(t, err)
	assert.Equal(t, "<p>banner</p>", string(out))

	require.NoError(t, watcher.Stop())
}

func TestThemeWatcherStopWithoutStart(t *testing.T) {
	renderer, err := NewRenderer(context.Background(), "")
	require.NoError(t, err)

	watcher, err := NewThemeWatcher(renderer)
	require.NoError(t, err)
	assert.NoError(t, watcher.Stop())
}
