package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceID(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		host        string
		port        int
		want        string
	}{
		{"basic", "orders", "10.0.0.4", 9090, "orders-10-0-0-4-9090"},
		{"localhost", "splitter", "127.0.0.1", 7000, "splitter-127-0-0-1-7000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ServiceID(tt.serviceName, tt.host, tt.port)
			assert.Equal(t, tt.want, got)
			// Idempotent: identical inputs always produce the identical id.
			assert.Equal(t, got, ServiceID(tt.serviceName, tt.host, tt.port))
		})
	}
}

func TestSchemaID(t *testing.T) {
	assert.Equal(t, "splitter-v1_0_0", SchemaID("splitter", "1.0.0"))
	assert.Equal(t, "orders-v2", SchemaID("orders", "2"))
}

func TestArtifactID(t *testing.T) {
	assert.Equal(t, "splitter-config-v1_0_0", ArtifactID("splitter", "1.0.0"))
	assert.Equal(t, "orders-config-v1", ArtifactID("orders", ""))
}

func TestSplitServiceID(t *testing.T) {
	name, ok := SplitServiceID("orders-10-0-0-4-9090")
	assert.True(t, ok)
	assert.Equal(t, "orders-10-0-0", name)

	_, ok = SplitServiceID("bad-id")
	assert.False(t, ok)

	_, ok = SplitServiceID("noseparator")
	assert.False(t, ok)
}
