// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"strconv"
	"strings"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/querystring"
)

// Query is a search query in the catalog API notation. Values are scalars,
// lists or nested mappings, see package querystring.
type Query map[string]any

// ParseQuery decodes a query string, ignoring a leading "?" and spaces
func ParseQuery(raw string) Query {
	return Query(querystring.Parse(strings.TrimLeft(raw, "? ")))
}

// Encode returns the query string of q
func (q Query) Encode() string {
	return querystring.Build(q)
}

// Clone returns a copy of the top-level keys of q
func (q Query) Clone() Query {
	clone := make(Query, len(q))
	for k, v := range q {
		clone[k] = v
	}
	return clone
}

// Overlay returns a copy of q where every key of top wins
func (q Query) Overlay(top Query) Query {
	merged := q.Clone()
	for k, v := range top {
		merged[k] = v
	}
	return merged
}

// Has reports whether the key is set to a non-nil value
func (q Query) Has(key string) bool {
	v, ok := q[key]
	return ok && v != nil
}

// Value returns a scalar value as a string, empty when unset or not a scalar
func (q Query) Value(key string) string {
	switch v := q[key].(type) {
	case nil, []any, []string, map[string]any:
		return ""
	default:
		return querystring.Scalar(v)
	}
}

// PositiveInt returns a scalar value parsed as an integer greater than zero
func (q Query) PositiveInt(key string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(q.Value(key)))
	if err != nil || i <= 0 {
		return 0, false
	}
	return i, true
}

// Without returns a copy of q without the given keys
func (q Query) Without(keys ...string) Query {
	clone := q.Clone()
	for _, k := range keys {
		delete(clone, k)
	}
	return clone
}

// SiteFlags are the site-level switches applied to listings
type SiteFlags struct {
	// AttachedItemsOnly limits listings to resources attached to the site
	AttachedItemsOnly bool
}

// Pagination describes the page of a paged listing
type Pagination struct {
	TotalCount  int `json:"total_count"`
	CurrentPage int `json:"current_page"`
	Limit       int `json:"limit"`
}

// TotalPages returns the number of pages, at least one
func (p Pagination) TotalPages() int {
	if p.Limit <= 0 || p.TotalCount <= 0 {
		return 1
	}
	return (p.TotalCount + p.Limit - 1) / p.Limit
}

// HasPrevious reports whether a page precedes the current one
func (p Pagination) HasPrevious() bool {
	return p.CurrentPage > 1
}

// HasNext reports whether a page follows the current one
func (p Pagination) HasNext() bool {
	return p.CurrentPage < p.TotalPages()
}

// SortHeading is a sortable column of a listing
type SortHeading struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Listing is the outcome of a search results block for one request
type Listing struct {
	// Heading displayed above the listing
	Heading string
	// Collection searched
	ResourceType ResourceType
	// Query sent to the search API
	Query Query
	// Resources returned
	Resources []Resource
	// Pagination is set only when the listing is paged
	Pagination *Pagination
	// Sortable columns, in configured order
	SortHeadings []SortHeading
	// Template rendering the listing
	Template string
}
