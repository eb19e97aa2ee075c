// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package opensearch

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"
)

type httpClient struct {
	client *opensearchapi.Client
}

func (c *httpClient) Search(ctx context.Context, index string, query []byte) (*SearchResponse, error) {

	slog.DebugContext(ctx, "executing opensearch search",
		"index", index,
		"query", string(query),
	)

	searchRequest := opensearchapi.SearchReq{
		Indices: []string{index},
		Body:    bytes.NewReader(query),
	}

	searchResponse, errSearchResponse := c.client.Search(ctx, &searchRequest)
	if errSearchResponse != nil {
		return nil, fmt.Errorf("failed to execute search: %w", errSearchResponse)
	}

	if searchResponse.Errors {
		return nil, fmt.Errorf("opensearch search returned errors")
	}

	result := &SearchResponse{
		Hits: Hits{
			Total: Total{
				Value: searchResponse.Hits.Total.Value,
			},
			Hits: make([]Hit, len(searchResponse.Hits.Hits)),
		},
	}
	for i, hit := range searchResponse.Hits.Hits {
		result.Hits.Hits[i] = Hit{
			ID:     hit.ID,
			Score:  float64(hit.Score),
			Source: hit.Source,
		}
	}

	return result, nil
}

func (c *httpClient) IsReady(ctx context.Context) error {
	resp, err := c.client.Ping(ctx, &opensearchapi.PingReq{})
	if err != nil {
		return fmt.Errorf("opensearch ping failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("opensearch ping returned status %d", resp.StatusCode)
	}
	return nil
}
