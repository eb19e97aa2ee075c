// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import (
	"time"
)

// Config represents NATS configuration
type Config struct {
	// URL is the NATS server URL
	URL string `json:"url"`
	// Timeout is the request timeout duration
	Timeout time.Duration `json:"timeout"`
	// MaxReconnect is the maximum number of reconnection attempts
	MaxReconnect int `json:"max_reconnect"`
	// ReconnectWait is the time to wait between reconnection attempts
	ReconnectWait time.Duration `json:"reconnect_wait"`
	// Bucket is the key-value bucket holding the sites
	Bucket string `json:"bucket"`
}

// siteKeyPrefix prefixes the bucket key of a site, e.g. site.demo
const siteKeyPrefix = "site."

// maxUpdateAttempts bounds the compare-and-set loop of a page update
const maxUpdateAttempts = 3

// KVEntry is a value read from the bucket with its revision
type KVEntry struct {
	Value    []byte
	Revision uint64
}
