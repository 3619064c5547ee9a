package server

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/pipestream/registryhub/api/registryv1"
	"github.com/pipestream/registryhub/internal/discoverysurface"
	"github.com/pipestream/registryhub/internal/orchestrator"
	"github.com/pipestream/registryhub/internal/schema"
	pkgerrors "github.com/pipestream/registryhub/pkg/errors"
)

// RegistryServer composes the hub's three service-facing collaborators into
// a single registryv1.RegistryServiceServer. Each RPC forwards to whichever
// collaborator owns it; nothing here carries domain logic of its own.
type RegistryServer struct {
	registryv1.UnimplementedRegistryServiceServer

	orchestrator *orchestrator.Service
	discovery    *discoverysurface.Service
	schema       *schema.Service
}

// NewRegistryServer builds a RegistryServer over its three collaborators.
func NewRegistryServer(orch *orchestrator.Service, disc *discoverysurface.Service, sch *schema.Service) *RegistryServer {
	return &RegistryServer{orchestrator: orch, discovery: disc, schema: sch}
}

func (r *RegistryServer) RegisterService(req *registryv1.ServiceRegistrationRequest, stream registryv1.RegistryService_RegisterServiceServer) error {
	return r.orchestrator.RegisterService(req, stream)
}

func (r *RegistryServer) RegisterModule(req *registryv1.ModuleRegistrationRequest, stream registryv1.RegistryService_RegisterModuleServer) error {
	return r.orchestrator.RegisterModule(req, stream)
}

func (r *RegistryServer) UnregisterService(ctx context.Context, req *registryv1.UnregisterRequest) (*registryv1.UnregisterResponse, error) {
	return r.orchestrator.UnregisterService(ctx, req)
}

func (r *RegistryServer) UnregisterModule(ctx context.Context, req *registryv1.UnregisterRequest) (*registryv1.UnregisterResponse, error) {
	return r.orchestrator.UnregisterModule(ctx, req)
}

func (r *RegistryServer) ListServices(ctx context.Context, _ *registryv1.ListServicesRequest) (*registryv1.ServiceListResponse, error) {
	return r.discovery.ListServices(ctx), nil
}

func (r *RegistryServer) ListModules(ctx context.Context, _ *registryv1.ListModulesRequest) (*registryv1.ModuleListResponse, error) {
	return r.discovery.ListModules(ctx), nil
}

// GetService resolves by ServiceID when the caller supplies one, else falls
// back to a name lookup.
func (r *RegistryServer) GetService(ctx context.Context, req *registryv1.ServiceLookupRequest) (*registryv1.ServiceDetails, error) {
	var (
		details *registryv1.ServiceDetails
		err     error
	)
	if req.ServiceID != "" {
		details, err = r.discovery.GetServiceByID(ctx, req.ServiceID)
	} else {
		details, err = r.discovery.GetServiceByName(ctx, req.ServiceName)
	}
	if err != nil {
		return nil, toStatusErr(err, req.ServiceID+req.ServiceName)
	}
	return details, nil
}

func (r *RegistryServer) GetModule(ctx context.Context, req *registryv1.ServiceLookupRequest) (*registryv1.ModuleDetails, error) {
	var (
		details *registryv1.ModuleDetails
		err     error
	)
	if req.ServiceID != "" {
		details, err = r.discovery.GetModuleByID(ctx, req.ServiceID)
	} else {
		details, err = r.discovery.GetModuleByName(ctx, req.ServiceName)
	}
	if err != nil {
		return nil, toStatusErr(err, req.ServiceID+req.ServiceName)
	}
	return details, nil
}

func (r *RegistryServer) ResolveService(ctx context.Context, req *registryv1.ServiceResolveRequest) (*registryv1.ServiceResolveResponse, error) {
	return r.discovery.ResolveService(ctx, req), nil
}

func (r *RegistryServer) WatchServices(req *registryv1.WatchRequest, stream registryv1.RegistryService_WatchServicesServer) error {
	return r.discovery.WatchServices(req, stream)
}

func (r *RegistryServer) WatchModules(req *registryv1.WatchRequest, stream registryv1.RegistryService_WatchModulesServer) error {
	return r.discovery.WatchModules(req, stream)
}

func (r *RegistryServer) GetModuleSchema(ctx context.Context, req *registryv1.GetModuleSchemaRequest) (*registryv1.ModuleSchemaResponse, error) {
	resp, err := r.schema.Get(ctx, req.ModuleName, req.Version)
	if err != nil {
		return nil, toStatusErr(err, req.ModuleName)
	}
	return resp, nil
}

// toStatusErr maps the hub's sentinel errors onto the gRPC status codes
// RPC clients expect.
func toStatusErr(err error, id string) error {
	switch {
	case errors.Is(err, pkgerrors.ErrMalformedID):
		return status.Error(codes.InvalidArgument, fmt.Sprintf("Invalid service ID format: %s", id))
	case errors.Is(err, pkgerrors.ErrNotFound), errors.Is(err, pkgerrors.ErrSchemaNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Errorf(codes.Internal, "lookup failed: %v", err)
	}
}
