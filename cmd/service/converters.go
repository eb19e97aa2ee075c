// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
	usecase "github.com/linuxfoundation/lfx-v2-blockplus-service/internal/service"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/errors"

	goahttp "goa.design/goa/v3/http"
)

// SaveBlocksPayload is the body of the save blocks request
type SaveBlocksPayload struct {
	Blocks []model.Block `json:"blocks"`
}

// BlocksResult lists the blocks of a page
type BlocksResult struct {
	Blocks []model.Block `json:"blocks"`
}

// LayoutsResult lists the registered block layouts
type LayoutsResult struct {
	Layouts []usecase.LayoutSummary `json:"layouts"`
}

// PageMetadata is the metadata block of a page
type PageMetadata struct {
	Page  string      `json:"page"`
	Block model.Block `json:"block"`
}

// PagesMetadataResult lists the metadata blocks of the pages of a site
type PagesMetadataResult struct {
	Type  string         `json:"type"`
	Pages []PageMetadata `json:"pages"`
}

// requestToParams converts the query string of a page request to the
// request params of its blocks
func requestToParams(r *http.Request) model.Query {
	return model.ParseQuery(r.URL.RawQuery)
}

// pathToBlockIndex parses the block index path parameter
func pathToBlockIndex(raw string) (int, error) {
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		return 0, errors.NewValidation(fmt.Sprintf("invalid block index %q", raw))
	}
	return index, nil
}

// requestToSaveBlocksPayload decodes the save blocks request body
func requestToSaveBlocksPayload(r *http.Request) (*SaveBlocksPayload, error) {
	var payload SaveBlocksPayload
	if err := goahttp.RequestDecoder(r).Decode(&payload); err != nil {
		return nil, errors.NewValidation("invalid request body", err)
	}
	for i, block := range payload.Blocks {
		if block.Layout == "" {
			return nil, errors.NewValidation(fmt.Sprintf("blocks[%d].layout is required", i))
		}
	}
	return &payload, nil
}

// domainPagesMetadataToResponse lists the metadata blocks by page slug
func domainPagesMetadataToResponse(pageType string, blocks map[string]model.Block) *PagesMetadataResult {
	result := &PagesMetadataResult{
		Type:  pageType,
		Pages: make([]PageMetadata, 0, len(blocks)),
	}
	for slug, block := range blocks {
		result.Pages = append(result.Pages, PageMetadata{Page: slug, Block: block})
	}
	sort.Slice(result.Pages, func(i, j int) bool {
		return result.Pages[i].Page < result.Pages[j].Page
	})
	return result
}
