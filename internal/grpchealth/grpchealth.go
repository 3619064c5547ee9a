// Package grpchealth registers the standard gRPC health service and keeps
// it in sync with the readiness aggregate.
package grpchealth

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/pipestream/registryhub/internal/readiness"
)

// pollInterval is how often the readiness aggregate is re-run to update
// the gRPC health server's serving status.
const pollInterval = 5 * time.Second

// Register wires the grpc_health_v1 service into grpcServer and returns
// the underlying health.Server.
func Register(grpcServer *grpc.Server) *health.Server {
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	return healthServer
}

// Sync polls checker every pollInterval and sets healthServer's overall
// serving status accordingly, until ctx is cancelled.
func Sync(ctx context.Context, checker *readiness.Checker, healthServer *health.Server) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	setStatus(ctx, checker, healthServer)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			setStatus(ctx, checker, healthServer)
		}
	}
}

func setStatus(ctx context.Context, checker *readiness.Checker, healthServer *health.Server) {
	report := checker.Run(ctx)
	status := grpc_health_v1.HealthCheckResponse_SERVING
	if report.Status == readiness.StatusDown {
		status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}
	healthServer.SetServingStatus("", status)
}
