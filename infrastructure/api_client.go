package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"smarterdev/domain/interfaces"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Fixed timeouts per call direction. No caller-driven timeout propagation:
// a call that outlives these fails and is surfaced like any other transport
// error.
const (
	readTimeout  = 10 * time.Second
	writeTimeout = 15 * time.Second
)

// BackendAPIClient implements interfaces.BackendClient against the
// guild-scoped REST backend. It owns auth headers, request IDs, and
// timeouts; status-code interpretation is left to callers.
type BackendAPIClient struct {
	baseURL     string
	apiKey      string
	readClient  *http.Client
	writeClient *http.Client
}

// NewBackendAPIClient creates a backend API client. baseURL must not end in
// a slash; apiKey may be empty for unauthenticated deployments.
func NewBackendAPIClient(baseURL, apiKey string) *BackendAPIClient {
	return &BackendAPIClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		readClient:  &http.Client{Timeout: readTimeout},
		writeClient: &http.Client{Timeout: writeTimeout},
	}
}

// Get performs a GET request against the backend.
func (c *BackendAPIClient) Get(ctx context.Context, path string, query url.Values) (*interfaces.APIResponse, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	c.setHeaders(req)

	return c.do(c.readClient, req)
}

// Post performs a POST request with an optional JSON body.
func (c *BackendAPIClient) Post(ctx context.Context, path string, body any) (*interfaces.APIResponse, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	c.setHeaders(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(c.writeClient, req)
}

func (c *BackendAPIClient) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

func (c *BackendAPIClient) do(client *http.Client, req *http.Request) (*interfaces.APIResponse, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read backend response: %w", err)
	}

	log.WithFields(log.Fields{
		"method": req.Method,
		"path":   req.URL.Path,
		"status": resp.StatusCode,
	}).Debug("Backend request completed")

	return &interfaces.APIResponse{StatusCode: resp.StatusCode, Body: data}, nil
}
