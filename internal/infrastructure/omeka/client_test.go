// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package omeka

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const itemsResponse = `[
  {
    "@type": ["o:Item", "dctype:Text"],
    "o:id": 1,
    "o:title": "Annual Report",
    "o:created": {"@value": "2024-01-10T09:00:00+00:00"},
    "thumbnail_display_urls": {"square": "https://catalog.example.org/square/1.jpg"}
  },
  {
    "@type": "o:Item",
    "o:id": 2,
    "o:title": "Untyped"
  }
]`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	return NewClient(Config{
		BaseURL:       ts.URL,
		KeyIdentity:   "id",
		KeyCredential: "secret",
		Timeout:       5 * time.Second,
		MaxRetries:    1,
		RetryDelay:    time.Millisecond,
	})
}

func TestClientSearch(t *testing.T) {
	var rawQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/items", r.URL.Path)
		rawQuery = r.URL.RawQuery
		w.Header().Set("Omeka-S-Total-Results", "42")
		_, _ = w.Write([]byte(itemsResponse))
	})

	resources, total, err := client.Search(context.Background(), model.ResourceTypeItems, model.Query{
		"search":   "report",
		"property": []any{map[string]any{"property": "dcterms:title", "type": "in", "text": "annual"}},
		"site_id":  1,
	})
	require.NoError(t, err)

	assert.Equal(t, 42, total)
	require.Len(t, resources, 2)
	assert.Equal(t, "Annual Report", resources[0].Title)
	assert.Equal(t, "Text", resources[0].ResourceClassLabel)
	assert.Equal(t, "2024-01-10T09:00:00+00:00", resources[0].Created)
	assert.Equal(t, "https://catalog.example.org/square/1.jpg", resources[0].Thumbnail("square"))
	assert.Equal(t, float64(1), resources[0].Data["o:id"])
	assert.Equal(t, "", resources[1].ResourceClassLabel)

	assert.Equal(t,
		"key_credential=secret&key_identity=id&property%5B0%5D%5Bproperty%5D=dcterms%3Atitle&property%5B0%5D%5Btext%5D=annual&property%5B0%5D%5Btype%5D=in&search=report&site_id=1",
		rawQuery,
	)
}

func TestClientSearchWithoutTotalHeader(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(itemsResponse))
	})

	_, total, err := client.Search(context.Background(), model.ResourceTypeItems, model.Query{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestClientProperty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/properties", r.URL.Path)
		if r.URL.Query().Get("term") == "dcterms:title" {
			_, _ = w.Write([]byte(`[{"o:id": 1, "o:term": "dcterms:title", "o:label": "Title"}]`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	})

	property, err := client.Property(context.Background(), "dcterms:title")
	require.NoError(t, err)
	assert.Equal(t, &model.Property{ID: 1, Term: "dcterms:title", Label: "Title"}, property)

	property, err = client.Property(context.Background(), "bogus:key")
	require.NoError(t, err)
	assert.Nil(t, property)
}

func TestClientResourceTemplate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/resource_templates/5" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{
			"o:id": 5,
			"o:label": "Report",
			"o:resource_template_property": [
				{"o:property": {"o:id": 1}, "o:alternate_label": "Report name"},
				{"o:property": {"o:id": 7}, "o:alternate_label": null}
			]
		}`))
	})

	resourceTemplate, err := client.ResourceTemplate(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Report name", resourceTemplate.TemplateProperty(1).AlternateLabel)
	assert.Equal(t, "", resourceTemplate.TemplateProperty(7).AlternateLabel)

	_, err = client.ResourceTemplate(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestClientResourceAndAsset(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/media/20":
			_, _ = w.Write([]byte(`{"o:id": 20, "o:title": "report.pdf", "o:source": "report.pdf"}`))
		case "/api/assets/3":
			_, _ = w.Write([]byte(`{"o:id": 3, "o:name": "logo.png", "o:asset_url": "https://catalog.example.org/asset/logo.png", "o:media_type": "image/png"}`))
		default:
			http.NotFound(w, r)
		}
	})

	media, err := client.Resource(context.Background(), model.ResourceTypeMedia, 20)
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", media.Source)
	assert.Equal(t, model.ResourceTypeMedia, media.Type)

	asset, err := client.Asset(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "logo.png", asset.Name)
	assert.Equal(t, "image/png", asset.MediaType)

	_, err = client.Asset(context.Background(), 4)
	assert.True(t, errors.IsNotFound(err))
}

func TestClientErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		validate func(*testing.T, error)
	}{
		{
			name:   "bad request",
			status: http.StatusBadRequest,
			validate: func(t *testing.T, err error) {
				var target errors.Validation
				assert.ErrorAs(t, err, &target)
			},
		},
		{
			name:   "server error",
			status: http.StatusBadGateway,
			validate: func(t *testing.T, err error) {
				var target errors.ServiceUnavailable
				assert.ErrorAs(t, err, &target)
			},
		},
		{
			name:   "forbidden",
			status: http.StatusForbidden,
			validate: func(t *testing.T, err error) {
				var target errors.Unexpected
				assert.ErrorAs(t, err, &target)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			})
			_, _, err := client.Search(context.Background(), model.ResourceTypeItems, model.Query{})
			require.Error(t, err)
			tc.validate(t, err)
		})
	}
}

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name        string
		baseURL     string
		identity    string
		credential  string
		timeout     string
		expectError bool
	}{
		{name: "valid", baseURL: "https://catalog.example.org/", timeout: "3s"},
		{name: "with keys", baseURL: "https://catalog.example.org", identity: "id", credential: "secret"},
		{name: "missing base URL", expectError: true},
		{name: "half keys", baseURL: "https://catalog.example.org", identity: "id", expectError: true},
		{name: "invalid timeout", baseURL: "https://catalog.example.org", timeout: "soon", expectError: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			config, err := NewConfig(tc.baseURL, tc.identity, tc.credential, tc.timeout, 1, "")
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "https://catalog.example.org", config.BaseURL)
		})
	}
}
