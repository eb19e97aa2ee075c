// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"validation without cause", NewValidation("invalid limit"), "invalid limit"},
		{"validation with cause", NewValidation("invalid limit", cause), "invalid limit: boom"},
		{"not found", NewNotFound("page not found"), "page not found"},
		{"unexpected with cause", NewUnexpected("render failed", cause), "render failed: boom"},
		{"service unavailable", NewServiceUnavailable("catalog down"), "catalog down"},
		{"unauthorized", NewUnauthorized("missing token"), "missing token"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.err.Error())
		})
	}
}

func TestErrorsUnwrapToCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("reading site: %w", NewServiceUnavailable("site store unavailable", cause))

	assert.ErrorIs(t, err, cause)

	var unavailable ServiceUnavailable
	assert.True(t, errors.As(err, &unavailable))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("wrapped: %w", NewNotFound("asset 3 not found"))))
	assert.False(t, IsNotFound(NewValidation("bad")))
	assert.False(t, IsNotFound(nil))
}
