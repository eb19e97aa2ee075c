// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/errors"
)

// MockAuthenticator signs every request in as one local editor, whatever the token
type MockAuthenticator struct {
	editor model.Editor
}

// Authenticate returns the local editor, Unauthorized when none is configured
func (m *MockAuthenticator) Authenticate(ctx context.Context, token string) (*model.Editor, error) {
	if m.editor.Principal == "" {
		return nil, errors.NewUnauthorized("no local editor configured")
	}

	editor := m.editor
	slog.DebugContext(ctx, "authenticated local editor", constants.PrincipalAttribute, editor.Principal)
	return &editor, nil
}

// NewMockAuthenticator creates an authenticator for the given local principal
func NewMockAuthenticator(principal string) *MockAuthenticator {
	return &MockAuthenticator{editor: model.Editor{Principal: principal}}
}
