// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package omeka

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds the configuration for the catalog API client
type Config struct {
	// BaseURL is the root URL of the catalog, the API lives under /api
	BaseURL string

	// KeyIdentity and KeyCredential authenticate the requests when set
	KeyIdentity   string
	KeyCredential string

	// Timeout is the HTTP client timeout for API requests
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts for failed requests
	MaxRetries int

	// RetryDelay is the delay between retry attempts
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		Timeout:    10 * time.Second,
		MaxRetries: 2,
		RetryDelay: 500 * time.Millisecond,
	}
}

// NewConfig creates a new catalog configuration with the provided parameters
func NewConfig(baseURL, keyIdentity, keyCredential, timeout string, maxRetries int, retryDelay string) (Config, error) {
	if baseURL == "" {
		return Config{}, fmt.Errorf("base URL is required for catalog configuration")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return Config{}, fmt.Errorf("invalid catalog base URL: %w", err)
	}
	if (keyIdentity == "") != (keyCredential == "") {
		return Config{}, fmt.Errorf("key identity and key credential must be set together")
	}

	config := DefaultConfig()
	config.BaseURL = strings.TrimRight(baseURL, "/")
	config.KeyIdentity = keyIdentity
	config.KeyCredential = keyCredential

	if timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return Config{}, fmt.Errorf("invalid timeout duration: %w", err)
		}
		config.Timeout = d
	}

	if maxRetries >= 0 {
		config.MaxRetries = maxRetries
	}

	if retryDelay != "" {
		d, err := time.ParseDuration(retryDelay)
		if err != nil {
			return Config{}, fmt.Errorf("invalid retry delay duration: %w", err)
		}
		config.RetryDelay = d
	}

	return config, nil
}
