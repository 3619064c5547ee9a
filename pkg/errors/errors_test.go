package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorDefinitions(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{"ErrInvalidServiceName", ErrInvalidServiceName, "service name must not be empty"},
		{"ErrInvalidHost", ErrInvalidHost, "host must not be empty"},
		{"ErrInvalidPort", ErrInvalidPort, "port must be greater than zero"},
		{"ErrNotFound", ErrNotFound, "not found"},
		{"ErrMalformedID", ErrMalformedID, "malformed id"},
		{"ErrSchemaNotFound", ErrSchemaNotFound, "module schema not found"},
		{"ErrDiscoveryRegisterFailed", ErrDiscoveryRegisterFailed, "discovery agent registration failed"},
		{"ErrDiscoveryDeregisterFailed", ErrDiscoveryDeregisterFailed, "discovery agent deregistration failed"},
		{"ErrHealthConvergenceFailed", ErrHealthConvergenceFailed, "instance did not converge to healthy"},
		{"ErrArtifactUnavailable", ErrArtifactUnavailable, "schema artifact registry unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestErrorComparisons(t *testing.T) {
	assert.NotEqual(t, ErrNotFound, ErrMalformedID)
	assert.NotEqual(t, ErrInvalidHost, ErrInvalidPort)
	assert.ErrorIs(t, ErrSchemaNotFound, ErrSchemaNotFound)
}
