package infrastructure

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendAPIClient_Get(t *testing.T) {
	var gotRequest *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequest = r.Clone(context.Background())
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"balance": 100}`))
	}))
	defer server.Close()

	client := NewBackendAPIClient(server.URL, "test-api-key")
	query := url.Values{"limit": []string{"10"}}
	resp, err := client.Get(context.Background(), "/guilds/123/bytes/leaderboard", query)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"balance": 100}`, string(resp.Body))

	assert.Equal(t, "/guilds/123/bytes/leaderboard", gotRequest.URL.Path)
	assert.Equal(t, "10", gotRequest.URL.Query().Get("limit"))
	assert.Equal(t, "application/json", gotRequest.Header.Get("Accept"))
	assert.Equal(t, "Bearer test-api-key", gotRequest.Header.Get("Authorization"))
	assert.NotEmpty(t, gotRequest.Header.Get("X-Request-ID"))
}

func TestBackendAPIClient_Get_NoAuthHeaderWithoutKey(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewBackendAPIClient(server.URL, "")
	_, err := client.Get(context.Background(), "/health", nil)

	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestBackendAPIClient_Post(t *testing.T) {
	type payload struct {
		Amount int64  `json:"amount"`
		Reason string `json:"reason"`
	}

	var gotBody payload
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": "tx-1"}`))
	}))
	defer server.Close()

	client := NewBackendAPIClient(server.URL, "")
	resp, err := client.Post(context.Background(), "/guilds/123/bytes/transactions", payload{Amount: 50, Reason: "thanks"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, int64(50), gotBody.Amount)
	assert.Equal(t, "thanks", gotBody.Reason)
}

func TestBackendAPIClient_Post_NilBodyHasNoContentType(t *testing.T) {
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewBackendAPIClient(server.URL, "")
	_, err := client.Post(context.Background(), "/guilds/123/bytes/daily/456", nil)

	require.NoError(t, err)
	assert.Empty(t, gotContentType)
}

func TestBackendAPIClient_ErrorStatusPassesThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"detail": "Already claimed today"}`))
	}))
	defer server.Close()

	client := NewBackendAPIClient(server.URL, "")
	resp, err := client.Post(context.Background(), "/guilds/123/bytes/daily/456", nil)

	// Error statuses are data, not transport errors
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Already claimed today", resp.ErrorDetail())
}

func TestBackendAPIClient_TrailingSlashNormalized(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewBackendAPIClient(server.URL+"/", "")
	_, err := client.Get(context.Background(), "/health", nil)

	require.NoError(t, err)
	assert.Equal(t, "/health", gotPath)
}
