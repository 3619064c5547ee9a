package artifact

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

func TestCreateOrUpdate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "/groups/ai.pipestream.schemas/artifacts")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id": "svc-config-v1", "globalId": 42, "version": "1",
		})
	})

	res, err := c.CreateOrUpdate(context.Background(), "svc", "1.0", `{"type":"object"}`)
	require.NoError(t, err)
	assert.Equal(t, "svc-config-v1", res.ArtifactID)
	assert.EqualValues(t, 42, res.GlobalID)
}

func TestGetSchema(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/versions/latest")
		_, _ = w.Write([]byte(`{"type":"object"}`))
	})

	schema, err := c.GetSchema(context.Background(), "svc", "")
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"object"}`, schema)
}

func TestGetArtifactMetadataNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	meta, err := c.GetArtifactMetadata(context.Background(), "svc", "1.0")
	require.NoError(t, err)
	assert.Nil(t, meta)
}

func TestIsHealthy(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	assert.True(t, c.IsHealthy(context.Background()))
}

func TestIsHealthyFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	assert.False(t, c.IsHealthy(context.Background()))
}

func TestDeleteArtifact(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})
	assert.True(t, c.DeleteArtifact(context.Background(), "svc", "1.0"))
}

func TestListArtifacts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"artifacts": []map[string]string{{"id": "a1", "name": "a1"}},
		})
	})

	list, err := c.ListArtifacts(context.Background(), "", 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a1", list[0].ArtifactID)
}
