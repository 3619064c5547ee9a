// Package registryv1 defines the wire-level request, response, and event
// types for the registry hub's RPC surface, along with the service/stream
// interfaces that internal/server adapts into a running gRPC service.
package registryv1

import "time"

// ServiceRegistrationRequest is the input to RegisterService.
type ServiceRegistrationRequest struct {
	ServiceName  string
	Host         string
	Port         int32
	Version      string
	Tags         []string
	Metadata     map[string]string
	Capabilities []string
}

// ServiceRegistrationMetadata carries the optional module-specific
// registration fields embedded in a ModuleRegistrationRequest.
type ServiceRegistrationMetadata struct {
	JSONConfigSchema string
	DisplayName      string
	Description      string
	Owner            string
	DocumentationURL string
	Tags             []string
	Dependencies     []string
}

// ModuleRegistrationRequest is the input to RegisterModule.
type ModuleRegistrationRequest struct {
	ModuleName                  string
	Host                        string
	Port                        int32
	Version                     string
	Metadata                    map[string]string
	ServiceRegistrationMetadata *ServiceRegistrationMetadata
}

// RegistrationEvent is one element of a RegisterService/RegisterModule
// stream.
type RegistrationEvent struct {
	EventType   string
	ServiceID   string
	Message     string
	ErrorDetail string
	Timestamp   time.Time
}

// UnregisterRequest is the input to UnregisterService/UnregisterModule.
type UnregisterRequest struct {
	ServiceName string
	Host        string
	Port        int32
}

// UnregisterResponse is the output of UnregisterService/UnregisterModule.
type UnregisterResponse struct {
	Success   bool
	Message   string
	Timestamp time.Time
}

// ServiceDetails describes one registered service instance in list/get
// responses.
type ServiceDetails struct {
	ServiceID string
	Name      string
	Host      string
	Port      int32
	Version   string
	Tags      []string
	Metadata  map[string]string
	Healthy   bool
}

// ModuleDetails describes one registered module instance in list/get
// responses.
type ModuleDetails struct {
	ServiceID    string
	Name         string
	Host         string
	Port         int32
	Version      string
	Tags         []string
	Capabilities []string
	Metadata     map[string]string
	Healthy      bool
}

// ListServicesRequest is the (empty) input to ListServices.
type ListServicesRequest struct{}

// ServiceListResponse is the output of ListServices.
type ServiceListResponse struct {
	Services   []ServiceDetails
	AsOf       time.Time
	TotalCount int32
}

// ListModulesRequest is the (empty) input to ListModules.
type ListModulesRequest struct{}

// ModuleListResponse is the output of ListModules.
type ModuleListResponse struct {
	Modules    []ModuleDetails
	AsOf       time.Time
	TotalCount int32
}

// ServiceLookupRequest is the input to GetService/GetModule.
type ServiceLookupRequest struct {
	ServiceName string
	ServiceID   string
}

// ServiceResolveRequest is the input to ResolveService.
type ServiceResolveRequest struct {
	ServiceName          string
	PreferLocal          bool
	RequiredTags         []string
	RequiredCapabilities []string
}

// ServiceResolveResponse is the output of ResolveService.
type ServiceResolveResponse struct {
	Found            bool
	Host             string
	Port             int32
	ServiceID        string
	Version          string
	Metadata         map[string]string
	Tags             []string
	Capabilities     []string
	TotalInstances   int32
	HealthyInstances int32
	SelectionReason  string
	ResolvedAt       time.Time
}

// WatchRequest is the (empty) input to WatchServices/WatchModules.
type WatchRequest struct{}

// GetModuleSchemaRequest is the input to GetModuleSchema.
type GetModuleSchemaRequest struct {
	ModuleName string
	Version    string
}

// ModuleSchemaResponse is the output of GetModuleSchema.
type ModuleSchemaResponse struct {
	ModuleName    string
	SchemaJSON    string
	SchemaVersion string
	ArtifactID    string
	Metadata      map[string]string
	UpdatedAt     time.Time
}
