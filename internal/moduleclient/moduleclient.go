// Package moduleclient opens a dynamic RPC stub against a just-registered
// module so the orchestrator can pull back the module's own
// ServiceRegistrationMetadata during registration.
package moduleclient

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/pipestream/registryhub/api/registryv1"
)

const getServiceRegistrationMethod = "/registry.v1.ModuleService/GetServiceRegistration"

// Stub is a single module's callable handle.
type Stub interface {
	GetServiceRegistration(ctx context.Context) (*registryv1.ServiceRegistrationMetadata, error)
	Close() error
}

// Dialer opens stubs against modules by host:port. One instance is shared;
// each Open call dials fresh since modules are registered at arbitrary,
// short-lived addresses.
type Dialer struct {
	dialOpts []grpc.DialOption
}

// New builds a Dialer. Without explicit transport credentials it dials
// insecure, matching the hub's own internal-network deployment model.
func New(opts ...grpc.DialOption) *Dialer {
	if len(opts) == 0 {
		opts = []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	}
	return &Dialer{dialOpts: opts}
}

// Open dials host:port and returns a Stub bound to that connection.
func (d *Dialer) Open(ctx context.Context, host string, port int) (Stub, error) {
	conn, err := grpc.NewClient(fmt.Sprintf("%s:%d", host, port), d.dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("dial module at %s:%d: %w", host, port, err)
	}
	return &stub{conn: conn}, nil
}

type stub struct {
	conn *grpc.ClientConn
}

func (s *stub) GetServiceRegistration(ctx context.Context) (*registryv1.ServiceRegistrationMetadata, error) {
	var resp registryv1.ServiceRegistrationMetadata
	if err := s.conn.Invoke(ctx, getServiceRegistrationMethod, &registryv1.ListServicesRequest{}, &resp); err != nil {
		return nil, fmt.Errorf("invoke GetServiceRegistration: %w", err)
	}
	return &resp, nil
}

func (s *stub) Close() error {
	return s.conn.Close()
}
