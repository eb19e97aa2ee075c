// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

type requestIDHeaderType string

// RequestIDHeader is the header name for the request ID
const RequestIDHeader requestIDHeaderType = "X-REQUEST-ID"

type contextID int

// PrincipalContextID is the context key under which the authenticated editor is stored.
const PrincipalContextID contextID = iota

const (
	// PrincipalAttribute is the log attribute carrying the authenticated editor
	PrincipalAttribute = "principal"

	// TotalResultsHeader carries the total number of matches in catalog API search responses
	TotalResultsHeader = "Omeka-S-Total-Results"
)
