package interfaces

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIResponse_ErrorDetail(t *testing.T) {
	withDetail := &APIResponse{StatusCode: 400, Body: []byte(`{"detail": "Transfer amount exceeds maximum"}`)}
	assert.Equal(t, "Transfer amount exceeds maximum", withDetail.ErrorDetail())

	// Non-JSON and empty-detail bodies fall back to the status code
	garbage := &APIResponse{StatusCode: 502, Body: []byte("Bad Gateway")}
	assert.Equal(t, "API error: 502", garbage.ErrorDetail())

	empty := &APIResponse{StatusCode: 500, Body: []byte(`{}`)}
	assert.Equal(t, "API error: 500", empty.ErrorDetail())
}

func TestAPIResponse_DecodeJSON(t *testing.T) {
	resp := &APIResponse{StatusCode: 200, Body: []byte(`{"balance": 100}`)}

	var payload struct {
		Balance int64 `json:"balance"`
	}
	require.NoError(t, resp.DecodeJSON(&payload))
	assert.Equal(t, int64(100), payload.Balance)

	bad := &APIResponse{StatusCode: 200, Body: []byte("not json")}
	assert.Error(t, bad.DecodeJSON(&payload))
}
