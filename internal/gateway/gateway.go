// Package gateway sends authenticated HTTP requests to the SentryPrime
// backend and normalizes every failure into the structured error taxonomy.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sentryprime/sentryctl/internal/correlation"
	"github.com/sentryprime/sentryctl/internal/errors"
	"github.com/sentryprime/sentryctl/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// TokenSource provides the current session bearer token. An empty string is
// valid: the request is sent anyway and the server rejects it. The gateway
// never pre-empts an unauthenticated call locally.
type TokenSource interface {
	Token() string
}

// Client performs JSON calls against a configured base URL. It does not
// retry, does not time out on its own, and does not cancel beyond what the
// caller's context and the injected http.Client impose.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// NewClient creates a gateway client. httpClient may carry its own transport
// timeout; the gateway adds none.
func NewClient(baseURL string, httpClient *http.Client, tokens TokenSource) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		tokens:  tokens,
	}
}

// call performs one request and settles it: on non-2xx it parses the response
// body for an "error" field and falls back to a message synthesized from the
// status code. out may be nil for calls whose body the caller discards.
func (c *Client) call(ctx context.Context, method, endpoint string, body any, requireAuth bool, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.UnknownError(fmt.Errorf("failed to encode request body: %w", err))
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return errors.UnknownError(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")

	id, ok := correlation.ID(ctx)
	if !ok {
		id = correlation.NewID()
		ctx = correlation.WithID(ctx, id)
	}
	req.Header.Set(correlation.Header, id)

	if requireAuth {
		req.Header.Set("Authorization", "Bearer "+c.tokens.Token())
	}

	timer := prometheus.NewTimer(metrics.APIRequestDuration.WithLabelValues(endpoint))
	resp, err := c.http.Do(req)
	timer.ObserveDuration()
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(endpoint, metrics.StatusError).Inc()
		slog.DebugContext(ctx, "API request failed in transport", "method", method, "endpoint", endpoint, "error", err)
		return errors.TransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		metrics.APIRequestsTotal.WithLabelValues(endpoint, metrics.StatusError).Inc()
		msg := errorMessage(resp)
		slog.DebugContext(ctx, "API request rejected", "method", method, "endpoint", endpoint, "status", resp.StatusCode, "message", msg)
		return errors.NetworkError(msg, resp.StatusCode)
	}

	metrics.APIRequestsTotal.WithLabelValues(endpoint, metrics.StatusSuccess).Inc()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.TransportError(fmt.Errorf("failed to decode response: %w", err))
		}
	}

	return nil
}

// errorMessage extracts the backend's "error" field, or synthesizes a message
// from the status code when the body carries none.
func errorMessage(resp *http.Response) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return fmt.Sprintf("HTTP %d", resp.StatusCode)
}
