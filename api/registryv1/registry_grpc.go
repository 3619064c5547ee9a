package registryv1

import (
	"context"

	"google.golang.org/grpc"
)

const (
	RegistryService_RegisterService_FullMethodName   = "/registry.v1.RegistryService/RegisterService"
	RegistryService_RegisterModule_FullMethodName    = "/registry.v1.RegistryService/RegisterModule"
	RegistryService_UnregisterService_FullMethodName = "/registry.v1.RegistryService/UnregisterService"
	RegistryService_UnregisterModule_FullMethodName  = "/registry.v1.RegistryService/UnregisterModule"
	RegistryService_ListServices_FullMethodName      = "/registry.v1.RegistryService/ListServices"
	RegistryService_ListModules_FullMethodName       = "/registry.v1.RegistryService/ListModules"
	RegistryService_GetService_FullMethodName        = "/registry.v1.RegistryService/GetService"
	RegistryService_GetModule_FullMethodName         = "/registry.v1.RegistryService/GetModule"
	RegistryService_ResolveService_FullMethodName    = "/registry.v1.RegistryService/ResolveService"
	RegistryService_WatchServices_FullMethodName     = "/registry.v1.RegistryService/WatchServices"
	RegistryService_WatchModules_FullMethodName      = "/registry.v1.RegistryService/WatchModules"
	RegistryService_GetModuleSchema_FullMethodName   = "/registry.v1.RegistryService/GetModuleSchema"
)

// RegistryServiceServer is the server-side contract for the registry hub's
// RPC surface. RegisterService and RegisterModule stream back the state
// machine transitions of a single registration; WatchServices and
// WatchModules stream a full snapshot of the registry on subscribe and then
// a fresh full snapshot on every poll interval.
type RegistryServiceServer interface {
	RegisterService(*ServiceRegistrationRequest, RegistryService_RegisterServiceServer) error
	RegisterModule(*ModuleRegistrationRequest, RegistryService_RegisterModuleServer) error
	UnregisterService(context.Context, *UnregisterRequest) (*UnregisterResponse, error)
	UnregisterModule(context.Context, *UnregisterRequest) (*UnregisterResponse, error)
	ListServices(context.Context, *ListServicesRequest) (*ServiceListResponse, error)
	ListModules(context.Context, *ListModulesRequest) (*ModuleListResponse, error)
	GetService(context.Context, *ServiceLookupRequest) (*ServiceDetails, error)
	GetModule(context.Context, *ServiceLookupRequest) (*ModuleDetails, error)
	ResolveService(context.Context, *ServiceResolveRequest) (*ServiceResolveResponse, error)
	WatchServices(*WatchRequest, RegistryService_WatchServicesServer) error
	WatchModules(*WatchRequest, RegistryService_WatchModulesServer) error
	GetModuleSchema(context.Context, *GetModuleSchemaRequest) (*ModuleSchemaResponse, error)
}

// UnimplementedRegistryServiceServer embeds into concrete implementations so
// adding a method to the interface does not break existing callers.
type UnimplementedRegistryServiceServer struct{}

func (UnimplementedRegistryServiceServer) RegisterService(*ServiceRegistrationRequest, RegistryService_RegisterServiceServer) error {
	return errUnimplemented("RegisterService")
}
func (UnimplementedRegistryServiceServer) RegisterModule(*ModuleRegistrationRequest, RegistryService_RegisterModuleServer) error {
	return errUnimplemented("RegisterModule")
}
func (UnimplementedRegistryServiceServer) UnregisterService(context.Context, *UnregisterRequest) (*UnregisterResponse, error) {
	return nil, errUnimplemented("UnregisterService")
}
func (UnimplementedRegistryServiceServer) UnregisterModule(context.Context, *UnregisterRequest) (*UnregisterResponse, error) {
	return nil, errUnimplemented("UnregisterModule")
}
func (UnimplementedRegistryServiceServer) ListServices(context.Context, *ListServicesRequest) (*ServiceListResponse, error) {
	return nil, errUnimplemented("ListServices")
}
func (UnimplementedRegistryServiceServer) ListModules(context.Context, *ListModulesRequest) (*ModuleListResponse, error) {
	return nil, errUnimplemented("ListModules")
}
func (UnimplementedRegistryServiceServer) GetService(context.Context, *ServiceLookupRequest) (*ServiceDetails, error) {
	return nil, errUnimplemented("GetService")
}
func (UnimplementedRegistryServiceServer) GetModule(context.Context, *ServiceLookupRequest) (*ModuleDetails, error) {
	return nil, errUnimplemented("GetModule")
}
func (UnimplementedRegistryServiceServer) ResolveService(context.Context, *ServiceResolveRequest) (*ServiceResolveResponse, error) {
	return nil, errUnimplemented("ResolveService")
}
func (UnimplementedRegistryServiceServer) WatchServices(*WatchRequest, RegistryService_WatchServicesServer) error {
	return errUnimplemented("WatchServices")
}
func (UnimplementedRegistryServiceServer) WatchModules(*WatchRequest, RegistryService_WatchModulesServer) error {
	return errUnimplemented("WatchModules")
}
func (UnimplementedRegistryServiceServer) GetModuleSchema(context.Context, *GetModuleSchemaRequest) (*ModuleSchemaResponse, error) {
	return nil, errUnimplemented("GetModuleSchema")
}

func errUnimplemented(method string) error {
	return &unimplementedError{method: method}
}

type unimplementedError struct{ method string }

func (e *unimplementedError) Error() string { return "registryv1: method not implemented: " + e.method }

// RegistryService_RegisterServiceServer is the server-side stream handle for
// RegisterService.
type RegistryService_RegisterServiceServer interface {
	Send(*RegistrationEvent) error
	grpc.ServerStream
}

// RegistryService_RegisterModuleServer is the server-side stream handle for
// RegisterModule.
type RegistryService_RegisterModuleServer interface {
	Send(*RegistrationEvent) error
	grpc.ServerStream
}

// RegistryService_WatchServicesServer is the server-side stream handle for
// WatchServices.
type RegistryService_WatchServicesServer interface {
	Send(*ServiceDetails) error
	grpc.ServerStream
}

// RegistryService_WatchModulesServer is the server-side stream handle for
// WatchModules.
type RegistryService_WatchModulesServer interface {
	Send(*ModuleDetails) error
	grpc.ServerStream
}

// RegistryServiceClient is the client-side contract, used by internal
// callers that need to reach the registry hub over gRPC rather than in
// process.
type RegistryServiceClient interface {
	RegisterService(ctx context.Context, in *ServiceRegistrationRequest, opts ...grpc.CallOption) (RegistryService_RegisterServiceClient, error)
	RegisterModule(ctx context.Context, in *ModuleRegistrationRequest, opts ...grpc.CallOption) (RegistryService_RegisterModuleClient, error)
	UnregisterService(ctx context.Context, in *UnregisterRequest, opts ...grpc.CallOption) (*UnregisterResponse, error)
	UnregisterModule(ctx context.Context, in *UnregisterRequest, opts ...grpc.CallOption) (*UnregisterResponse, error)
	ListServices(ctx context.Context, in *ListServicesRequest, opts ...grpc.CallOption) (*ServiceListResponse, error)
	ListModules(ctx context.Context, in *ListModulesRequest, opts ...grpc.CallOption) (*ModuleListResponse, error)
	GetService(ctx context.Context, in *ServiceLookupRequest, opts ...grpc.CallOption) (*ServiceDetails, error)
	GetModule(ctx context.Context, in *ServiceLookupRequest, opts ...grpc.CallOption) (*ModuleDetails, error)
	ResolveService(ctx context.Context, in *ServiceResolveRequest, opts ...grpc.CallOption) (*ServiceResolveResponse, error)
	WatchServices(ctx context.Context, in *WatchRequest, opts ...grpc.CallOption) (RegistryService_WatchServicesClient, error)
	WatchModules(ctx context.Context, in *WatchRequest, opts ...grpc.CallOption) (RegistryService_WatchModulesClient, error)
	GetModuleSchema(ctx context.Context, in *GetModuleSchemaRequest, opts ...grpc.CallOption) (*ModuleSchemaResponse, error)
}

type RegistryService_RegisterServiceClient interface {
	Recv() (*RegistrationEvent, error)
	grpc.ClientStream
}

type RegistryService_RegisterModuleClient interface {
	Recv() (*RegistrationEvent, error)
	grpc.ClientStream
}

type RegistryService_WatchServicesClient interface {
	Recv() (*ServiceDetails, error)
	grpc.ClientStream
}

type RegistryService_WatchModulesClient interface {
	Recv() (*ModuleDetails, error)
	grpc.ClientStream
}

type registryServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewRegistryServiceClient wraps an established connection with the typed
// client contract.
func NewRegistryServiceClient(cc grpc.ClientConnInterface) RegistryServiceClient {
	return &registryServiceClient{cc: cc}
}

func (c *registryServiceClient) RegisterService(ctx context.Context, in *ServiceRegistrationRequest, opts ...grpc.CallOption) (RegistryService_RegisterServiceClient, error) {
	stream, err := c.cc.NewStream(ctx, &RegistryService_ServiceDesc.Streams[0], RegistryService_RegisterService_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &registryServiceRegisterServiceClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type registryServiceRegisterServiceClient struct{ grpc.ClientStream }

func (x *registryServiceRegisterServiceClient) Recv() (*RegistrationEvent, error) {
	m := new(RegistrationEvent)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *registryServiceClient) RegisterModule(ctx context.Context, in *ModuleRegistrationRequest, opts ...grpc.CallOption) (RegistryService_RegisterModuleClient, error) {
	stream, err := c.cc.NewStream(ctx, &RegistryService_ServiceDesc.Streams[1], RegistryService_RegisterModule_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &registryServiceRegisterModuleClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type registryServiceRegisterModuleClient struct{ grpc.ClientStream }

func (x *registryServiceRegisterModuleClient) Recv() (*RegistrationEvent, error) {
	m := new(RegistrationEvent)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *registryServiceClient) UnregisterService(ctx context.Context, in *UnregisterRequest, opts ...grpc.CallOption) (*UnregisterResponse, error) {
	out := new(UnregisterResponse)
	if err := c.cc.Invoke(ctx, RegistryService_UnregisterService_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *registryServiceClient) UnregisterModule(ctx context.Context, in *UnregisterRequest, opts ...grpc.CallOption) (*UnregisterResponse, error) {
	out := new(UnregisterResponse)
	if err := c.cc.Invoke(ctx, RegistryService_UnregisterModule_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *registryServiceClient) ListServices(ctx context.Context, in *ListServicesRequest, opts ...grpc.CallOption) (*ServiceListResponse, error) {
	out := new(ServiceListResponse)
	if err := c.cc.Invoke(ctx, RegistryService_ListServices_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *registryServiceClient) ListModules(ctx context.Context, in *ListModulesRequest, opts ...grpc.CallOption) (*ModuleListResponse, error) {
	out := new(ModuleListResponse)
	if err := c.cc.Invoke(ctx, RegistryService_ListModules_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *registryServiceClient) GetService(ctx context.Context, in *ServiceLookupRequest, opts ...grpc.CallOption) (*ServiceDetails, error) {
	out := new(ServiceDetails)
	if err := c.cc.Invoke(ctx, RegistryService_GetService_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *registryServiceClient) GetModule(ctx context.Context, in *ServiceLookupRequest, opts ...grpc.CallOption) (*ModuleDetails, error) {
	out := new(ModuleDetails)
	if err := c.cc.Invoke(ctx, RegistryService_GetModule_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *registryServiceClient) ResolveService(ctx context.Context, in *ServiceResolveRequest, opts ...grpc.CallOption) (*ServiceResolveResponse, error) {
	out := new(ServiceResolveResponse)
	if err := c.cc.Invoke(ctx, RegistryService_ResolveService_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *registryServiceClient) WatchServices(ctx context.Context, in *WatchRequest, opts ...grpc.CallOption) (RegistryService_WatchServicesClient, error) {
	stream, err := c.cc.NewStream(ctx, &RegistryService_ServiceDesc.Streams[2], RegistryService_WatchServices_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &registryServiceWatchServicesClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type registryServiceWatchServicesClient struct{ grpc.ClientStream }

func (x *registryServiceWatchServicesClient) Recv() (*ServiceDetails, error) {
	m := new(ServiceDetails)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *registryServiceClient) WatchModules(ctx context.Context, in *WatchRequest, opts ...grpc.CallOption) (RegistryService_WatchModulesClient, error) {
	stream, err := c.cc.NewStream(ctx, &RegistryService_ServiceDesc.Streams[3], RegistryService_WatchModules_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &registryServiceWatchModulesClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type registryServiceWatchModulesClient struct{ grpc.ClientStream }

func (x *registryServiceWatchModulesClient) Recv() (*ModuleDetails, error) {
	m := new(ModuleDetails)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *registryServiceClient) GetModuleSchema(ctx context.Context, in *GetModuleSchemaRequest, opts ...grpc.CallOption) (*ModuleSchemaResponse, error) {
	out := new(ModuleSchemaResponse)
	if err := c.cc.Invoke(ctx, RegistryService_GetModuleSchema_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func _RegistryService_RegisterService_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(ServiceRegistrationRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(RegistryServiceServer).RegisterService(m, &registryServiceRegisterServiceServer{stream})
}

type registryServiceRegisterServiceServer struct{ grpc.ServerStream }

func (x *registryServiceRegisterServiceServer) Send(m *RegistrationEvent) error {
	return x.ServerStream.SendMsg(m)
}

func _RegistryService_RegisterModule_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(ModuleRegistrationRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(RegistryServiceServer).RegisterModule(m, &registryServiceRegisterModuleServer{stream})
}

type registryServiceRegisterModuleServer struct{ grpc.ServerStream }

func (x *registryServiceRegisterModuleServer) Send(m *RegistrationEvent) error {
	return x.ServerStream.SendMsg(m)
}

func _RegistryService_WatchServices_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(WatchRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(RegistryServiceServer).WatchServices(m, &registryServiceWatchServicesServer{stream})
}

type registryServiceWatchServicesServer struct{ grpc.ServerStream }

func (x *registryServiceWatchServicesServer) Send(m *ServiceDetails) error {
	return x.ServerStream.SendMsg(m)
}

func _RegistryService_WatchModules_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(WatchRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(RegistryServiceServer).WatchModules(m, &registryServiceWatchModulesServer{stream})
}

type registryServiceWatchModulesServer struct{ grpc.ServerStream }

func (x *registryServiceWatchModulesServer) Send(m *ModuleDetails) error {
	return x.ServerStream.SendMsg(m)
}

func _RegistryService_UnregisterService_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(UnregisterRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RegistryServiceServer).UnregisterService(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RegistryService_UnregisterService_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RegistryServiceServer).UnregisterService(ctx, req.(*UnregisterRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _RegistryService_UnregisterModule_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(UnregisterRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RegistryServiceServer).UnregisterModule(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RegistryService_UnregisterModule_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RegistryServiceServer).UnregisterModule(ctx, req.(*UnregisterRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _RegistryService_ListServices_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListServicesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RegistryServiceServer).ListServices(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RegistryService_ListServices_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RegistryServiceServer).ListServices(ctx, req.(*ListServicesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _RegistryService_ListModules_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListModulesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RegistryServiceServer).ListModules(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RegistryService_ListModules_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RegistryServiceServer).ListModules(ctx, req.(*ListModulesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _RegistryService_GetService_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ServiceLookupRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RegistryServiceServer).GetService(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RegistryService_GetService_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RegistryServiceServer).GetService(ctx, req.(*ServiceLookupRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _RegistryService_GetModule_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ServiceLookupRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RegistryServiceServer).GetModule(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RegistryService_GetModule_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RegistryServiceServer).GetModule(ctx, req.(*ServiceLookupRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _RegistryService_ResolveService_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ServiceResolveRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RegistryServiceServer).ResolveService(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RegistryService_ResolveService_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RegistryServiceServer).ResolveService(ctx, req.(*ServiceResolveRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _RegistryService_GetModuleSchema_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetModuleSchemaRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RegistryServiceServer).GetModuleSchema(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RegistryService_GetModuleSchema_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RegistryServiceServer).GetModuleSchema(ctx, req.(*GetModuleSchemaRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// RegistryService_ServiceDesc is the grpc.ServiceDesc for registering a
// RegistryServiceServer against a *grpc.Server.
var RegistryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "registry.v1.RegistryService",
	HandlerType: (*RegistryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "UnregisterService", Handler: _RegistryService_UnregisterService_Handler},
		{MethodName: "UnregisterModule", Handler: _RegistryService_UnregisterModule_Handler},
		{MethodName: "ListServices", Handler: _RegistryService_ListServices_Handler},
		{MethodName: "ListModules", Handler: _RegistryService_ListModules_Handler},
		{MethodName: "GetService", Handler: _RegistryService_GetService_Handler},
		{MethodName: "GetModule", Handler: _RegistryService_GetModule_Handler},
		{MethodName: "ResolveService", Handler: _RegistryService_ResolveService_Handler},
		{MethodName: "GetModuleSchema", Handler: _RegistryService_GetModuleSchema_Handler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "RegisterService", Handler: _RegistryService_RegisterService_Handler, ServerStreams: true},
		{StreamName: "RegisterModule", Handler: _RegistryService_RegisterModule_Handler, ServerStreams: true},
		{StreamName: "WatchServices", Handler: _RegistryService_WatchServices_Handler, ServerStreams: true},
		{StreamName: "WatchModules", Handler: _RegistryService_WatchModules_Handler, ServerStreams: true},
	},
	Metadata: "registry/v1/registry.proto",
}

// RegisterRegistryServiceServer attaches srv to s under RegistryService's
// service descriptor.
func RegisterRegistryServiceServer(s grpc.ServiceRegistrar, srv RegistryServiceServer) {
	s.RegisterService(&RegistryService_ServiceDesc, srv)
}
