// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(maxRetries int) Config {
	return Config{
		Timeout:    5 * time.Second,
		MaxRetries: maxRetries,
		RetryDelay: 10 * time.Millisecond,
		UserAgent:  "blockplus-test",
	}
}

func TestNewClient(t *testing.T) {
	config := testConfig(2)
	client := NewClient(config)

	assert.Equal(t, config.Timeout, client.httpClient.Timeout)
	assert.Equal(t, 2, client.config.MaxRetries)
}

func TestClient_GetJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "blockplus-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "custom-value", r.Header.Get("Custom-Header"))
		w.Header().Set("Omeka-S-Total-Results", "42")
		_, _ = w.Write([]byte(`{"o:id": 7, "o:label": "Title"}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(0))

	var dest struct {
		ID    int    `json:"o:id"`
		Label string `json:"o:label"`
	}
	resp, err := client.GetJSON(context.Background(), server.URL, map[string]string{"Custom-Header": "custom-value"}, &dest)
	require.NoError(t, err)
	assert.Equal(t, 7, dest.ID)
	assert.Equal(t, "Title", dest.Label)
	assert.Equal(t, "42", resp.Headers.Get("Omeka-S-Total-Results"))
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(testConfig(2))
	resp, err := client.Request(context.Background(), http.MethodGet, server.URL, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"errors":{"error":"not found"}}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(3))
	resp, err := client.Request(context.Background(), http.MethodGet, server.URL, nil, nil)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_StopsOnContextCancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	config := testConfig(5)
	config.RetryDelay = time.Second
	client := NewClient(config)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Request(ctx, http.MethodGet, server.URL, nil, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestShouldRetry(t *testing.T) {
	assert.False(t, shouldRetry(nil))
	assert.False(t, shouldRetry(context.Canceled))
	assert.True(t, shouldRetry(&StatusError{StatusCode: http.StatusTooManyRequests}))
	assert.True(t, shouldRetry(&StatusError{StatusCode: http.StatusInternalServerError}))
	assert.False(t, shouldRetry(&StatusError{StatusCode: http.StatusBadRequest}))
	assert.False(t, shouldRetry(errors.New("malformed")))
}
