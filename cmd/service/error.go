// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/errors"

	goahttp "goa.design/goa/v3/http"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// wrapError maps a domain error to its HTTP status and response body
func wrapError(ctx context.Context, err error) (int, *ErrorResponse) {

	f := func(err error) (int, *ErrorResponse) {
		if err == nil {
			return http.StatusInternalServerError, &ErrorResponse{Name: "InternalServerError", Message: "unknown error"}
		}

		var (
			validation   errors.Validation
			notFound     errors.NotFound
			unauthorized errors.Unauthorized
			unavailable  errors.ServiceUnavailable
		)
		switch {
		case stderrors.As(err, &validation):
			return http.StatusBadRequest, &ErrorResponse{Name: "BadRequest", Message: validation.Error()}
		case stderrors.As(err, &notFound):
			return http.StatusNotFound, &ErrorResponse{Name: "NotFound", Message: notFound.Error()}
		case stderrors.As(err, &unauthorized):
			return http.StatusUnauthorized, &ErrorResponse{Name: "Unauthorized", Message: unauthorized.Error()}
		case stderrors.As(err, &unavailable):
			return http.StatusServiceUnavailable, &ErrorResponse{Name: "ServiceUnavailable", Message: unavailable.Error()}
		default:
			return http.StatusInternalServerError, &ErrorResponse{Name: "InternalServerError", Message: err.Error()}
		}
	}

	slog.ErrorContext(ctx, "request failed",
		"error", err,
	)
	return f(err)
}

// writeError encodes the error response of err
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status, body := wrapError(ctx, err)
	writeJSON(ctx, w, status, body)
}

// writeJSON encodes v with the goa response encoder negotiated from the context
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	enc := goahttp.ResponseEncoder(ctx, w)
	w.WriteHeader(status)
	if err := enc.Encode(v); err != nil {
		slog.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
