// Package errors declares the sentinel errors shared across the registry
// hub's components.
package errors

import "errors"

// Validation errors (registration request validation).
var (
	// ErrInvalidServiceName is returned when a registration request's name is empty.
	ErrInvalidServiceName = errors.New("service name must not be empty")
	// ErrInvalidHost is returned when a registration request's host is empty.
	ErrInvalidHost = errors.New("host must not be empty")
	// ErrInvalidPort is returned when a registration request's port is not positive.
	ErrInvalidPort = errors.New("port must be greater than zero")
)

// Lookup errors (discovery surface).
var (
	// ErrNotFound is returned when a lookup finds no matching row.
	ErrNotFound = errors.New("not found")
	// ErrMalformedID is returned when a service/module id cannot be parsed.
	ErrMalformedID = errors.New("malformed id")
	// ErrSchemaNotFound is returned when no schema could be resolved for a module.
	ErrSchemaNotFound = errors.New("module schema not found")
)

// Collaborator failures. No code path in the hub returns these; the
// orchestrator reports these outcomes as FAILED events, boolean results or
// logged warnings.
var (
	// ErrDiscoveryRegisterFailed names a registration the discovery agent rejects.
	ErrDiscoveryRegisterFailed = errors.New("discovery agent registration failed")
	// ErrDiscoveryDeregisterFailed names a deregistration the discovery agent rejects.
	ErrDiscoveryDeregisterFailed = errors.New("discovery agent deregistration failed")
	// ErrHealthConvergenceFailed names an instance that never reports healthy.
	ErrHealthConvergenceFailed = errors.New("instance did not converge to healthy")
	// ErrArtifactUnavailable names a schema artifact registry that cannot be reached.
	ErrArtifactUnavailable = errors.New("schema artifact registry unavailable")
)
