package interfaces

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// BackendClient is the capability the service uses to reach the guild-scoped
// REST backend. Implementations own transport concerns (base URL, auth,
// timeouts); callers own status-code interpretation.
type BackendClient interface {
	// Get performs a GET request against the backend. query may be nil.
	Get(ctx context.Context, path string, query url.Values) (*APIResponse, error)

	// Post performs a POST request with an optional JSON body.
	Post(ctx context.Context, path string, body any) (*APIResponse, error)
}

// APIResponse is a decoded-enough view of one backend response: the status
// code plus the raw body, left for the caller to interpret.
type APIResponse struct {
	StatusCode int
	Body       []byte
}

// DecodeJSON unmarshals the response body into v.
func (r *APIResponse) DecodeJSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}

// ErrorDetail extracts the backend's error message from a {"detail": "..."}
// body, falling back to a generic message carrying the status code.
func (r *APIResponse) ErrorDetail() string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(r.Body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return fmt.Sprintf("API error: %d", r.StatusCode)
}
