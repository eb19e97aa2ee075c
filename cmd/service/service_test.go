// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	goahttp "goa.design/goa/v3/http"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/infrastructure/mock"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/errors"
)

type testServer struct {
	handler  http.Handler
	searcher *mock.MockResourceSearcher
	catalog  *mock.MockCatalog
	store    *mock.MockSiteStore
	renderer *mock.MockRenderer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerAs(t, "editor")
}

// newTestServerAs signs admin requests in as the given principal, none when empty
func newTestServerAs(t *testing.T, principal string) *testServer {
	t.Helper()

	ts := &testServer{
		searcher: mock.NewMockResourceSearcher(),
		catalog:  mock.NewMockCatalog(),
		store:    mock.NewMockSiteStore(),
		renderer: mock.NewMockRenderer(),
	}
	svc := NewBlockPlusSvc(ts.searcher, ts.catalog, ts.store, ts.renderer, mock.NewMockTranslator(), "en")

	mux := goahttp.NewMuxer()
	svc.Mount(mux, mock.NewMockAuthenticator(principal))
	ts.handler = mux
	return ts
}

func (ts *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer token")

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestBlockPlusSvcHealth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/livez", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK\n", rec.Body.String())

	rec = ts.do(http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	ts.store.SetIsReadyError(errors.NewServiceUnavailable("bucket unavailable"))
	rec = ts.do(http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body ErrorResponse
	decodeBody(t, rec, &body)
	assert.Equal(t, "ServiceUnavailable", body.Name)
}

func TestBlockPlusSvcLayouts(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/block-layouts", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var result LayoutsResult
	decodeBody(t, rec, &result)

	names := make([]string, 0, len(result.Layouts))
	for _, layout := range result.Layouts {
		names = append(names, layout.Name)
		assert.NotEmpty(t, layout.Label)
	}
	assert.Equal(t, []string{"assets", "browsePreview", "itemShowCase", "pageMetadata", "searchResults"}, names)
}

func TestBlockPlusSvcRenderPage(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "catalog page",
			target:         "/s/demo/page/catalog?page=2&sort_by=dcterms:title",
			expectedStatus: http.StatusOK,
			expectedBody:   "<site/page>",
		},
		{
			name:           "page with assets and showcase",
			target:         "/s/demo/page/partners",
			expectedStatus: http.StatusOK,
			expectedBody:   "<site/page>",
		},
		{
			name:           "unknown page",
			target:         "/s/demo/page/missing",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "unknown site",
			target:         "/s/other/page/home",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t)

			rec := ts.do(http.MethodGet, tc.target, "")
			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.expectedBody != "" {
				assert.Equal(t, tc.expectedBody, rec.Body.String())
				assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
			}
		})
	}
}

func TestBlockPlusSvcRenderPageForwardsParams(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/s/demo/page/catalog?page=2&sort_by=dcterms:title", "")
	require.Equal(t, http.StatusOK, rec.Code)

	query := ts.searcher.LastQuery()
	require.NotNil(t, query)
	assert.Equal(t, "dcterms:title", query.Value("sort_by"))
	assert.Equal(t, "2", query.Value("page"))
	assert.Equal(t, "2", query.Value("per_page"))
	assert.Equal(t, "1", query.Value("site_id"))
}

func TestBlockPlusSvcRenderPageSearchFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.searcher.SetSearchError(errors.NewServiceUnavailable("search unavailable"))

	rec := ts.do(http.MethodGet, "/s/demo/page/catalog", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestBlockPlusSvcPagesMetadata(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/s/demo/pages-metadata?type=listing", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var result PagesMetadataResult
	decodeBody(t, rec, &result)
	assert.Equal(t, "listing", result.Type)
	require.Len(t, result.Pages, 2)
	assert.Equal(t, "catalog", result.Pages[0].Page)
	assert.Equal(t, "partners", result.Pages[1].Page)
	assert.Equal(t, "pageMetadata", result.Pages[0].Block.Layout)
}

func TestBlockPlusSvcAdminRequiresPrincipal(t *testing.T) {
	ts := newTestServerAs(t, "")

	rec := ts.do(http.MethodGet, "/admin/s/demo/layouts/assets/form", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body ErrorResponse
	decodeBody(t, rec, &body)
	assert.Equal(t, "Unauthorized", body.Name)
}

func TestBlockPlusSvcForms(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		expectedStatus int
		expectedLayout string
	}{
		{
			name:           "existing block",
			target:         "/admin/s/demo/page/catalog/blocks/1/form",
			expectedStatus: http.StatusOK,
			expectedLayout: "searchResults",
		},
		{
			name:           "new block",
			target:         "/admin/s/demo/layouts/browsePreview/form",
			expectedStatus: http.StatusOK,
			expectedLayout: "browsePreview",
		},
		{
			name:           "invalid index",
			target:         "/admin/s/demo/page/catalog/blocks/first/form",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "index out of range",
			target:         "/admin/s/demo/page/catalog/blocks/9/form",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "unknown layout",
			target:         "/admin/s/demo/layouts/carousel/form",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t)

			rec := ts.do(http.MethodGet, tc.target, "")
			require.Equal(t, tc.expectedStatus, rec.Code)
			if tc.expectedLayout == "" {
				return
			}

			var fieldset struct {
				Layout string `json:"layout"`
				Fields []struct {
					Name string `json:"name"`
				} `json:"fields"`
			}
			decodeBody(t, rec, &fieldset)
			assert.Equal(t, tc.expectedLayout, fieldset.Layout)
			require.NotEmpty(t, fieldset.Fields)
			assert.True(t, strings.HasPrefix(fieldset.Fields[0].Name, "o:block[__blockIndex__][o:data]["))
		})
	}
}

func TestBlockPlusSvcSaveBlocks(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedSaved  bool
	}{
		{
			name:           "valid blocks",
			body:           `{"blocks":[{"layout":"pageMetadata","data":{"type":" home "}},{"layout":"searchResults","data":{"resource_type":"items","query":"?search=report","limit":"5"}}]}`,
			expectedStatus: http.StatusOK,
			expectedSaved:  true,
		},
		{
			name:           "unknown layout",
			body:           `{"blocks":[{"layout":"carousel","data":{}}]}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing layout",
			body:           `{"blocks":[{"data":{}}]}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed body",
			body:           `{"blocks":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t)

			rec := ts.do(http.MethodPut, "/admin/s/demo/page/home/blocks", tc.body)
			require.Equal(t, tc.expectedStatus, rec.Code, rec.Body.String())

			site, err := ts.store.GetSite(t.Context(), "demo")
			require.NoError(t, err)
			page, ok := site.Page("home")
			require.True(t, ok)

			if !tc.expectedSaved {
				assert.Len(t, page.Blocks, 2)
				assert.Equal(t, "browsePreview", page.Blocks[1].Layout)
				return
			}

			var result BlocksResult
			decodeBody(t, rec, &result)
			require.Len(t, result.Blocks, 2)
			assert.Equal(t, "home", result.Blocks[0].Data["type"])

			require.Len(t, page.Blocks, 2)
			assert.Equal(t, "searchResults", page.Blocks[1].Layout)
		})
	}
}
