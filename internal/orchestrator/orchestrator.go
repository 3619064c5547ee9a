// Package orchestrator drives the registration and unregistration state
// machines, coordinating the discovery client, health convergence, the
// registry store, the schema artifact client, and the event bus.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pipestream/registryhub/api/registryv1"
	"github.com/pipestream/registryhub/internal/artifact"
	"github.com/pipestream/registryhub/internal/convergence"
	"github.com/pipestream/registryhub/internal/eventbus"
	"github.com/pipestream/registryhub/internal/model"
	"github.com/pipestream/registryhub/internal/moduleclient"
	"github.com/pipestream/registryhub/internal/store"
	pkgerrors "github.com/pipestream/registryhub/pkg/errors"
)

// moduleTags and moduleCapability are fixed markers every module carries in
// addition to whatever tags its registration request supplies.
var moduleTags = []string{"module", "document-processor"}

const moduleCapability = "PipeStepProcessor"

// Discoverer is the subset of the discovery client the orchestrator
// depends on.
type Discoverer interface {
	Register(ctx context.Context, serviceID, serviceName, host string, port int, tags []string, metadata map[string]string, capabilities []string, version string) bool
	Deregister(ctx context.Context, serviceID string) bool
}

// Service implements the registration and unregistration halves of the
// RPC surface.
type Service struct {
	discovery Discoverer
	waiter    *convergence.Waiter
	store     *store.Store
	artifact  ArtifactMirror
	events    *eventbus.Emitter
	dialer    ModuleDialer
	log       *zap.Logger
}

// ArtifactMirror is the subset of the schema artifact client used during
// module registration.
type ArtifactMirror interface {
	CreateOrUpdate(ctx context.Context, serviceName, version, jsonSchema string) (*artifact.CreateResult, error)
}

// ModuleDialer opens a dynamic stub against a just-registered module.
type ModuleDialer interface {
	Open(ctx context.Context, host string, port int) (moduleclient.Stub, error)
}

// New builds a Service from its collaborators.
func New(discovery Discoverer, waiter *convergence.Waiter, st *store.Store, art ArtifactMirror, events *eventbus.Emitter, dialer ModuleDialer, log *zap.Logger) *Service {
	return &Service{discovery: discovery, waiter: waiter, store: st, artifact: art, events: events, dialer: dialer, log: log}
}

// RegisterService runs the service-only registration state machine,
// streaming one RegistrationEvent per labelled step.
func (s *Service) RegisterService(req *registryv1.ServiceRegistrationRequest, stream registryv1.RegistryService_RegisterServiceServer) error {
	ctx := stream.Context()
	emit(stream, model.EventStarted, "", "Registration started", "")

	if err := validateServiceRequest(req.ServiceName, req.Host, req.Port); err != nil {
		emit(stream, model.EventFailed, "", "Invalid service registration request", err.Error())
		return nil
	}
	emit(stream, model.EventValidated, "", "Request validated", "")

	serviceID := model.ServiceID(req.ServiceName, req.Host, int(req.Port))

	if !s.discovery.Register(ctx, serviceID, req.ServiceName, req.Host, int(req.Port), req.Tags, req.Metadata, req.Capabilities, req.Version) {
		emit(stream, model.EventFailed, serviceID, "Discovery agent registration failed", "")
		return nil
	}
	emit(stream, model.EventConsulRegistered, serviceID, "Registered with discovery agent", "")
	emit(stream, model.EventHealthCheckConfigured, serviceID, "Health check configured", "")

	if !s.waiter.WaitForHealthy(ctx, serviceID) {
		s.discovery.Deregister(ctx, serviceID)
		emit(stream, model.EventFailed, serviceID, "Instance did not converge to healthy", "")
		return nil
	}
	emit(stream, model.EventConsulHealthy, serviceID, "Instance reports healthy", "")

	emit(stream, model.EventCompleted, serviceID, "Service registration completed", "")

	go s.events.ServiceRegistered(context.Background(), serviceID, req.ServiceName, req.Host, int(req.Port), req.Version, req.Metadata)
	return nil
}

// RegisterModule runs the full module registration state machine: the
// service-registration stages, then metadata retrieval, schema validation,
// persistence, and best-effort artifact mirroring.
func (s *Service) RegisterModule(req *registryv1.ModuleRegistrationRequest, stream registryv1.RegistryService_RegisterModuleServer) error {
	ctx := stream.Context()
	emit(stream, model.EventStarted, "", "Registration started", "")

	if err := validateServiceRequest(req.ModuleName, req.Host, req.Port); err != nil {
		emit(stream, model.EventFailed, "", "Invalid service registration request", err.Error())
		return nil
	}
	emit(stream, model.EventValidated, "", "Request validated", "")

	svcReq := moduleToServiceRequest(req)
	serviceID := model.ServiceID(req.ModuleName, req.Host, int(req.Port))

	if !s.discovery.Register(ctx, serviceID, req.ModuleName, req.Host, int(req.Port), svcReq.Tags, svcReq.Metadata, svcReq.Capabilities, req.Version) {
		emit(stream, model.EventFailed, serviceID, "Discovery agent registration failed", "")
		return nil
	}
	emit(stream, model.EventConsulRegistered, serviceID, "Registered with discovery agent", "")
	emit(stream, model.EventHealthCheckConfigured, serviceID, "Health check configured", "")

	if !s.waiter.WaitForHealthy(ctx, serviceID) {
		s.discovery.Deregister(ctx, serviceID)
		emit(stream, model.EventFailed, serviceID, "Instance did not converge to healthy", "")
		return nil
	}
	emit(stream, model.EventConsulHealthy, serviceID, "Instance reports healthy", "")

	moduleMeta, err := s.retrieveModuleMetadata(ctx, req)
	if err != nil {
		s.discovery.Deregister(ctx, serviceID)
		emit(stream, model.EventFailed, serviceID, "Failed to retrieve module metadata", err.Error())
		return nil
	}
	emit(stream, model.EventMetadataRetrieved, serviceID, "Module metadata retrieved", "")

	jsonSchema := chooseSchema(req.ModuleName, moduleMeta)
	emit(stream, model.EventSchemaValidated, serviceID, "Schema validated", "")

	sm, err := s.store.RegisterModule(ctx, req.ModuleName, req.Host, int(req.Port), req.Version, svcReq.Metadata, jsonSchema)
	if err != nil {
		s.discovery.Deregister(ctx, serviceID)
		emit(stream, model.EventFailed, serviceID, "Failed to persist module registration", err.Error())
		return nil
	}
	emit(stream, model.EventDatabaseSaved, serviceID, "Module registration persisted", "")

	var artifactID string
	if s.artifact != nil {
		if result, err := s.artifact.CreateOrUpdate(ctx, req.ModuleName, req.Version, jsonSchema); err != nil {
			s.log.Warn("apicurio mirror failed during module registration",
				zap.String("serviceId", serviceID), zap.Error(err))
			emit(stream, model.EventSchemaValidated, serviceID, "Apicurio registry sync skipped (failure)", err.Error())
		} else {
			artifactID = result.ArtifactID
			emit(stream, model.EventApicurioRegistered, serviceID, "Schema mirrored to artifact registry", "")
		}
	}

	emit(stream, model.EventCompleted, serviceID, "Module registration completed", "")

	go s.events.ModuleRegistered(context.Background(), serviceID, req.ModuleName, sm.ConfigSchemaID, artifactID)
	return nil
}

// UnregisterService computes the deterministic service id, deregisters
// from discovery, and publishes the unregistered event on success.
func (s *Service) UnregisterService(ctx context.Context, req *registryv1.UnregisterRequest) (*registryv1.UnregisterResponse, error) {
	serviceID := model.ServiceID(req.ServiceName, req.Host, int(req.Port))
	if !s.discovery.Deregister(ctx, serviceID) {
		return &registryv1.UnregisterResponse{Success: false, Message: "discovery agent deregistration failed", Timestamp: time.Now()}, nil
	}
	go s.events.ServiceUnregistered(context.Background(), serviceID, req.ServiceName)
	return &registryv1.UnregisterResponse{Success: true, Message: "service unregistered", Timestamp: time.Now()}, nil
}

// UnregisterModule mirrors UnregisterService, publishing the module-scoped
// event instead.
func (s *Service) UnregisterModule(ctx context.Context, req *registryv1.UnregisterRequest) (*registryv1.UnregisterResponse, error) {
	serviceID := model.ServiceID(req.ServiceName, req.Host, int(req.Port))
	if !s.discovery.Deregister(ctx, serviceID) {
		return &registryv1.UnregisterResponse{Success: false, Message: "discovery agent deregistration failed", Timestamp: time.Now()}, nil
	}
	go s.events.ModuleUnregistered(context.Background(), serviceID, req.ServiceName)
	return &registryv1.UnregisterResponse{Success: true, Message: "module unregistered", Timestamp: time.Now()}, nil
}

// RunReconciliation ticks every interval, sweeping stale services (read-only
// detection, logged for an operator to act on) and replaying schema rows
// the store has marked as needing sync. Blocks until ctx is cancelled.
func (s *Service) RunReconciliation(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepStaleServices(ctx)
			s.sweepSchemaSync(ctx)
		}
	}
}

// sweepStaleServices never mutates state: it only logs ACTIVE rows whose
// heartbeat has gone quiet, leaving remediation to the operator.
func (s *Service) sweepStaleServices(ctx context.Context) {
	stale, err := s.store.FindStaleServices(ctx)
	if err != nil {
		s.log.Warn("stale service scan failed", zap.Error(err))
		return
	}
	for _, sm := range stale {
		s.log.Warn("stale service detected",
			zap.String("serviceId", sm.ServiceID),
			zap.Time("lastHeartbeat", sm.LastHeartbeat))
	}
}

// sweepSchemaSync replays CreateOrUpdate for every schema row not currently
// SYNCED, updating the row's sync status with the outcome.
func (s *Service) sweepSchemaSync(ctx context.Context) {
	if s.artifact == nil {
		return
	}
	pending, err := s.store.FindSchemasNeedingSync(ctx)
	if err != nil {
		s.log.Warn("schema sync scan failed", zap.Error(err))
		return
	}
	for _, cs := range pending {
		result, mirrorErr := s.artifact.CreateOrUpdate(ctx, cs.ServiceName, cs.SchemaVersion, cs.JSONSchema)
		if mirrorErr != nil {
			if err := s.store.MarkSchemaSyncFailed(ctx, cs.SchemaID, mirrorErr.Error()); err != nil {
				s.log.Warn("mark schema sync failed errored", zap.String("schemaId", cs.SchemaID), zap.Error(err))
			}
			continue
		}
		if err := s.store.MarkSchemaSynced(ctx, cs.SchemaID, result.ArtifactID, result.GlobalID); err != nil {
			s.log.Warn("mark schema synced errored", zap.String("schemaId", cs.SchemaID), zap.Error(err))
		}
	}
}

// retrieveModuleMetadata always calls back into the module over its own
// dynamic stub, even when the request already embedded a
// ServiceRegistrationMetadata: the embedded copy only seeds tags/metadata
// for the discovery registration, the module's own response is what
// drives schema selection.
func (s *Service) retrieveModuleMetadata(ctx context.Context, req *registryv1.ModuleRegistrationRequest) (*registryv1.ServiceRegistrationMetadata, error) {
	stub, err := s.dialer.Open(ctx, req.Host, int(req.Port))
	if err != nil {
		return nil, fmt.Errorf("open module stub: %w", err)
	}
	defer stub.Close()

	meta, err := stub.GetServiceRegistration(ctx)
	if err != nil {
		return nil, fmt.Errorf("get service registration from module: %w", err)
	}
	return meta, nil
}

func moduleToServiceRequest(req *registryv1.ModuleRegistrationRequest) *registryv1.ServiceRegistrationRequest {
	tags := make([]string, len(moduleTags))
	copy(tags, moduleTags)

	metadata := make(map[string]string, len(req.Metadata)+5)
	for k, v := range req.Metadata {
		metadata[k] = v
	}
	metadata["module-name"] = req.ModuleName
	metadata["module-version"] = req.Version

	if sm := req.ServiceRegistrationMetadata; sm != nil {
		tags = append(tags, sm.Tags...)
		if sm.JSONConfigSchema != "" {
			metadata["json-config-schema"] = sm.JSONConfigSchema
		}
		if sm.DisplayName != "" {
			metadata["display-name"] = sm.DisplayName
		}
		if sm.Description != "" {
			metadata["description"] = sm.Description
		}
	}

	return &registryv1.ServiceRegistrationRequest{
		ServiceName:  req.ModuleName,
		Host:         req.Host,
		Port:         req.Port,
		Version:      req.Version,
		Tags:         tags,
		Metadata:     metadata,
		Capabilities: []string{moduleCapability},
	}
}

func chooseSchema(moduleName string, meta *registryv1.ServiceRegistrationMetadata) string {
	if meta != nil && meta.JSONConfigSchema != "" {
		return meta.JSONConfigSchema
	}
	return defaultOpenAPISchema(moduleName)
}

func defaultOpenAPISchema(name string) string {
	return fmt.Sprintf(`{"openapi":"3.1.0","info":{"title":"%s Configuration","version":"1.0.0"},"components":{"schemas":{"Config":{"type":"object","additionalProperties":{"type":"string"},"description":"Key-value configuration for %s"}}}}`, name, name)
}

func validateServiceRequest(name, host string, port int32) error {
	if name == "" {
		return pkgerrors.ErrInvalidServiceName
	}
	if host == "" {
		return pkgerrors.ErrInvalidHost
	}
	if port <= 0 {
		return pkgerrors.ErrInvalidPort
	}
	return nil
}

type eventSender interface {
	Send(*registryv1.RegistrationEvent) error
}

func emit(stream eventSender, eventType model.EventType, serviceID, message, errorDetail string) {
	_ = stream.Send(&registryv1.RegistrationEvent{
		EventType:   string(eventType),
		ServiceID:   serviceID,
		Message:     message,
		ErrorDetail: errorDetail,
		Timestamp:   time.Now(),
	})
}
