package model

import (
	"strconv"
	"strings"
)

// ServiceID derives the deterministic, idempotent key for a registered
// instance from its name/host/port triple.
func ServiceID(serviceName, host string, port int) string {
	return serviceName + "-" + strings.ReplaceAll(host, ".", "-") + "-" + strconv.Itoa(port)
}

// SchemaID derives the store's key for a versioned config schema.
func SchemaID(serviceName, version string) string {
	return serviceName + "-v" + strings.ReplaceAll(version, ".", "_")
}

// ArtifactID derives the schema registry's artifact id for a service's
// config schema. Distinct from SchemaID by the "-config-" infix.
func ArtifactID(serviceName, version string) string {
	if version == "" {
		version = "1"
	}
	return serviceName + "-config-v" + strings.ReplaceAll(version, ".", "_")
}

// SplitServiceID recovers the serviceName from a serviceId by splitting on
// the last two "-" boundaries (the host-with-dashes and port suffix).
// Returns ok=false if the id doesn't have at least two "-" separated
// trailing segments.
func SplitServiceID(serviceID string) (serviceName string, ok bool) {
	idx := lastTwoDashes(serviceID)
	if idx < 0 {
		return "", false
	}
	return serviceID[:idx], true
}

// lastTwoDashes returns the index of the "-" that begins the second-to-last
// dash-delimited segment (i.e. the boundary before "<host-with-dashes>-<port>"),
// or -1 if the id has fewer than two dashes.
func lastTwoDashes(s string) int {
	last := strings.LastIndex(s, "-")
	if last < 0 {
		return -1
	}
	secondLast := strings.LastIndex(s[:last], "-")
	if secondLast < 0 {
		return -1
	}
	return secondLast
}
