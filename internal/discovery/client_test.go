package discovery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipestream/registryhub/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log, err := logger.NewDefault()
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.MaxRetries = 1
	return New(cfg, log)
}

func TestClientRegisterSuccess(t *testing.T) {
	var captured registerPayload
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
	})

	ok := c.Register(context.Background(), "svc-1", "svc", "localhost", 8080,
		[]string{"tag1"}, map[string]string{"k": "v"}, []string{"cap1"}, "1.0.0")

	assert.True(t, ok)
	assert.Equal(t, "svc-1", captured.ID)
	assert.Contains(t, captured.Tags, "capability:cap1")
	assert.Equal(t, "1.0.0", captured.Meta["version"])
	assert.Equal(t, "localhost:8080", captured.Check.GRPC)
}

func TestClientRegisterFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	ok := c.Register(context.Background(), "svc-1", "svc", "localhost", 8080, nil, nil, nil, "1.0.0")
	assert.False(t, ok)
}

func TestClientHealthyNodes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/health/service/svc", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]healthEntry{
			{Service: struct {
				ID      string            `json:"ID"`
				Service string            `json:"Service"`
				Address string            `json:"Address"`
				Port    int               `json:"Port"`
				Tags    []string          `json:"Tags"`
				Meta    map[string]string `json:"Meta"`
			}{ID: "svc-1", Service: "svc", Address: "127.0.0.1", Port: 8080}},
		})
	})

	nodes, err := c.HealthyNodes(context.Background(), "svc")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "svc-1", nodes[0].ServiceID)
}

func TestClientDeregister(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/agent/service/deregister/svc-1", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	assert.True(t, c.Deregister(context.Background(), "svc-1"))
}

func TestClientCatalogServices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string][]string{"svc-a": {}, "svc-b": {}})
	})

	names, err := c.CatalogServices(context.Background())
	require.NoError(t, err)
	assert.Len(t, names, 2)
	_, ok := names["svc-a"]
	assert.True(t, ok)
}

func TestClientAgentInfo(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	assert.NoError(t, c.AgentInfo(context.Background()))
}
