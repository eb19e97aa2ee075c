// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
)

// Authenticator resolves the editor behind a bearer token.
// Invalid or missing tokens yield an Unauthorized error.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.Editor, error)
}
