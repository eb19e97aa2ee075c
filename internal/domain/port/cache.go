// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"
	"time"
)

// Cache is a key-value cache of JSON-serializable values
type Cache interface {
	// Get fills dest (a pointer) with the cached value; false on a miss
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set stores the value for ttl
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}
