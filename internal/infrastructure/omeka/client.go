// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package omeka

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/httpclient"
)

// Client represents a catalog REST API client
type Client struct {
	config     Config
	httpClient *httpclient.Client
}

// endpoint returns the URL of an API path with the query and the API keys
func (c *Client) endpoint(path string, query model.Query) string {
	q := query.Clone()
	if c.config.KeyIdentity != "" {
		q["key_identity"] = c.config.KeyIdentity
		q["key_credential"] = c.config.KeyCredential
	}
	url := fmt.Sprintf("%s/api/%s", c.config.BaseURL, path)
	if encoded := q.Encode(); encoded != "" {
		url += "?" + encoded
	}
	return url
}

// get performs a GET request on the API and decodes the JSON body into dest
func (c *Client) get(ctx context.Context, path string, query model.Query, dest any) (*httpclient.Response, error) {
	resp, err := c.httpClient.GetJSON(ctx, c.endpoint(path, query), nil, dest)
	if err != nil {
		return nil, mapError(path, err)
	}
	return resp, nil
}

// mapError converts transport failures to the service error kinds
func mapError(path string, err error) error {
	var statusErr *httpclient.StatusError
	if !stderrors.As(err, &statusErr) {
		return errors.NewServiceUnavailable(fmt.Sprintf("catalog request %s failed", path), err)
	}

	switch statusErr.StatusCode {
	case http.StatusNotFound:
		return errors.NewNotFound(fmt.Sprintf("catalog resource %s not found", path))
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return errors.NewValidation(fmt.Sprintf("catalog rejected request %s", path), err)
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.NewUnexpected(fmt.Sprintf("catalog denied request %s", path), err)
	default:
		if statusErr.Retryable() {
			return errors.NewServiceUnavailable(fmt.Sprintf("catalog request %s failed", path), err)
		}
		return errors.NewUnexpected(fmt.Sprintf("catalog request %s failed", path), err)
	}
}

// Search lists the resources of a collection matching the query. The total
// is read from the catalog header, the page length when absent.
func (c *Client) Search(ctx context.Context, resourceType model.ResourceType, query model.Query) ([]model.Resource, int, error) {
	var records []json.RawMessage
	resp, err := c.get(ctx, string(resourceType), query, &records)
	if err != nil {
		return nil, 0, err
	}

	resources := make([]model.Resource, 0, len(records))
	for _, raw := range records {
		var record resourceRecord
		if errDecode := json.Unmarshal(raw, &record); errDecode != nil {
			return nil, 0, errors.NewUnexpected("failed to decode catalog resource", errDecode)
		}
		resources = append(resources, record.toDomain(resourceType, raw))
	}

	total := len(resources)
	if header := resp.Headers.Get(constants.TotalResultsHeader); header != "" {
		if parsed, errParse := strconv.Atoi(header); errParse == nil {
			total = parsed
		} else {
			slog.WarnContext(ctx, "invalid total results header", "value", header)
		}
	}
	return resources, total, nil
}

// Property returns the property with the given term, nil when none exists
func (c *Client) Property(ctx context.Context, term string) (*model.Property, error) {
	var records []propertyRecord
	if _, err := c.get(ctx, "properties", model.Query{"term": term}, &records); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0].toDomain(), nil
}

// ResourceTemplate returns a resource template by id
func (c *Client) ResourceTemplate(ctx context.Context, id int) (*model.ResourceTemplate, error) {
	var record resourceTemplateRecord
	if _, err := c.get(ctx, fmt.Sprintf("resource_templates/%d", id), nil, &record); err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// Resource returns a single item, item set or media
func (c *Client) Resource(ctx context.Context, resourceType model.ResourceType, id int) (*model.Resource, error) {
	var raw json.RawMessage
	if _, err := c.get(ctx, fmt.Sprintf("%s/%d", resourceType, id), nil, &raw); err != nil {
		return nil, err
	}
	var record resourceRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, errors.NewUnexpected("failed to decode catalog resource", err)
	}
	resource := record.toDomain(resourceType, raw)
	return &resource, nil
}

// Asset returns a site asset by id
func (c *Client) Asset(ctx context.Context, id int) (*model.Asset, error) {
	var record assetRecord
	if _, err := c.get(ctx, fmt.Sprintf("assets/%d", id), nil, &record); err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// IsReady checks if the catalog API is reachable
func (c *Client) IsReady(ctx context.Context) error {
	var records []json.RawMessage
	if _, err := c.get(ctx, "properties", model.Query{constants.QueryKeyPerPage: 1}, &records); err != nil {
		return errors.NewServiceUnavailable("catalog API is not reachable", err)
	}
	return nil
}

// NewClient creates a new catalog API client
func NewClient(config Config) *Client {
	httpConfig := httpclient.DefaultConfig()
	httpConfig.Timeout = config.Timeout
	httpConfig.MaxRetries = config.MaxRetries
	httpConfig.RetryDelay = config.RetryDelay

	return &Client{
		config:     config,
		httpClient: httpclient.NewClient(httpConfig),
	}
}
