// Package client provides the HTTP client for the RDW open-data vehicle registry.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"garage_portal_backend/internal/vehicle/transport"
	"garage_portal_backend/platform/config"
	"garage_portal_backend/platform/logger"
)

// Client is the HTTP client for the RDW "gekentekende voertuigen" dataset.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *logger.Logger
}

// New creates a new RDW registry client.
func New(cfg config.RegistryConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.GetRegistryTimeout()},
		baseURL:    cfg.GetRegistryURL(),
		log:        log,
	}
}

// Search fetches all registry records for a normalized license plate.
// An unknown plate is not an error: the registry answers 200 with an
// empty array, which is returned as an empty slice.
func (c *Client) Search(ctx context.Context, plate string) ([]transport.RegistryRecord, error) {
	params := url.Values{}
	params.Set("kenteken", plate)

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("rdw request failed", "error", err, "plate", plate)
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Success - continue to decode
	case http.StatusTooManyRequests:
		c.log.Error("rdw throttled", "status", resp.StatusCode)
		return nil, fmt.Errorf("registry throttled: status %d", resp.StatusCode)
	default:
		c.log.Error("rdw upstream error", "status", resp.StatusCode, "plate", plate)
		return nil, fmt.Errorf("upstream error: status %d", resp.StatusCode)
	}

	var records []transport.RegistryRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		c.log.Error("rdw decode failed", "error", err)
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return records, nil
}
