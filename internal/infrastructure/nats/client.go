// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// ErrRevisionConflict is returned when a key changed since it was read
var ErrRevisionConflict = errors.New("revision conflict")

// ErrKeyNotFound is returned when a key does not exist
var ErrKeyNotFound = errors.New("key not found")

// ErrInvalidKey is returned for keys the bucket cannot hold, such as keys
// with spaces or wildcards
var ErrInvalidKey = errors.New("invalid key")

// lookupError maps the bucket errors of a missing or unusable key
func lookupError(err error) error {
	switch {
	case errors.Is(err, nats.ErrKeyNotFound):
		return ErrKeyNotFound
	case errors.Is(err, nats.ErrInvalidKey):
		return ErrInvalidKey
	default:
		return nil
	}
}

// NATSClient wraps the NATS connection and the key-value bucket of the sites
type NATSClient struct {
	conn    *nats.Conn
	kv      nats.KeyValue
	config  Config
	timeout time.Duration
}

// NATSClientInterface defines the interface for NATS operations
// This allows for easy mocking and testing
type NATSClientInterface interface {
	Get(ctx context.Context, key string) (*KVEntry, error)
	Update(ctx context.Context, key string, value []byte, revision uint64) (uint64, error)
	IsReady(ctx context.Context) error
	Close() error
}

// Get reads a key of the bucket
func (c *NATSClient) Get(ctx context.Context, key string) (*KVEntry, error) {
	entry, err := c.kv.Get(key)
	if err != nil {
		if lookupErr := lookupError(err); lookupErr != nil {
			return nil, lookupErr
		}
		slog.ErrorContext(ctx, "NATS KV get failed", "key", key, "error", err)
		return nil, fmt.Errorf("NATS KV get failed: %w", err)
	}

	slog.DebugContext(ctx, "read NATS KV entry",
		"key", key,
		"revision", entry.Revision(),
	)
	return &KVEntry{Value: entry.Value(), Revision: entry.Revision()}, nil
}

// Update writes a key if it is still at the given revision
func (c *NATSClient) Update(ctx context.Context, key string, value []byte, revision uint64) (uint64, error) {
	next, err := c.kv.Update(key, value, revision)
	if err != nil {
		var apiErr *nats.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode == nats.JSErrCodeStreamWrongLastSequence {
			return 0, ErrRevisionConflict
		}
		slog.ErrorContext(ctx, "NATS KV update failed", "key", key, "error", err)
		return 0, fmt.Errorf("NATS KV update failed: %w", err)
	}
	return next, nil
}

// IsReady checks the connection is established
func (c *NATSClient) IsReady(ctx context.Context) error {
	if c.conn == nil || !c.conn.IsConnected() {
		return fmt.Errorf("NATS connection is not established")
	}
	return nil
}

// Close gracefully closes the NATS connection
func (c *NATSClient) Close() error {
	if c.conn != nil {
		c.conn.Close()
	}
	return nil
}

// NewClient creates a new NATS client with the given configuration, binding
// or creating the site bucket
func NewClient(ctx context.Context, config Config) (*NATSClient, error) {
	slog.InfoContext(ctx, "creating NATS client",
		"url", config.URL,
		"timeout", config.Timeout,
		"bucket", config.Bucket,
	)

	// Configure NATS connection options
	opts := []nats.Option{
		nats.Name("lfx-v2-blockplus-service"),
		nats.Timeout(config.Timeout),
		nats.MaxReconnects(config.MaxReconnect),
		nats.ReconnectWait(config.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			slog.WarnContext(ctx, "NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.InfoContext(ctx, "NATS reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			slog.InfoContext(ctx, "NATS connection closed")
		}),
	}

	// Establish connection
	conn, err := nats.Connect(config.URL, opts...)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to NATS", "error", err)
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := conn.JetStream(nats.MaxWait(config.Timeout))
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open JetStream context: %w", err)
	}

	kv, err := js.KeyValue(config.Bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		slog.InfoContext(ctx, "creating NATS KV bucket", "bucket", config.Bucket)
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket:      config.Bucket,
			Description: "block layouts of site pages",
			History:     5,
		})
	}
	if err != nil {
		conn.Close()
		slog.ErrorContext(ctx, "failed to bind NATS KV bucket", "error", err)
		return nil, fmt.Errorf("failed to bind NATS KV bucket %q: %w", config.Bucket, err)
	}

	client := &NATSClient{
		conn:    conn,
		kv:      kv,
		config:  config,
		timeout: config.Timeout,
	}

	slog.InfoContext(ctx, "NATS client created successfully",
		"connected_url", conn.ConnectedUrl(),
		"status", conn.Status(),
	)

	return client, nil
}
