package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/reflection"

	"github.com/pipestream/registryhub/api/registryv1"
	"github.com/pipestream/registryhub/internal/grpchealth"
	"github.com/pipestream/registryhub/internal/readiness"
)

// Server wraps the running gRPC server, its health/metrics sidecar, and the
// readiness checker that keeps both honest.
type Server struct {
	GRPCServer  *grpc.Server
	Metrics     *http.Server
	HealthCheck *health.Server
	Logger      *zap.Logger
	readiness   *readiness.Checker
}

// NewServer builds a Server with logging/tracing interceptors, the registry
// RPC surface attached, gRPC reflection, gRPC health, and a Prometheus
// metrics endpoint on metricsAddr.
func NewServer(log *zap.Logger, registry registryv1.RegistryServiceServer, checker *readiness.Checker, metricsHandler http.Handler, metricsAddr string) *Server {
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(UnaryServerInterceptor(log)),
		grpc.StreamInterceptor(StreamServerInterceptor(log)),
	)

	registryv1.RegisterRegistryServiceServer(grpcServer, registry)
	healthServer := grpchealth.Register(grpcServer)
	reflection.Register(grpcServer)

	metricsServer := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsHandler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	return &Server{
		GRPCServer:  grpcServer,
		Metrics:     metricsServer,
		HealthCheck: healthServer,
		Logger:      log,
		readiness:   checker,
	}
}

// Start runs the gRPC server, the metrics server, and the health-sync loop
// until ctx is cancelled or a signal arrives, then shuts everything down
// gracefully.
func (s *Server) Start(ctx context.Context, grpcPort string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			s.Logger.Warn("received shutdown signal", zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()

	var wg sync.WaitGroup
	errCh := make(chan error, 2)

	go grpchealth.Sync(ctx, s.readiness, s.HealthCheck)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := s.Metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("metrics server error: %w", err)
			cancel()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		lis, err := net.Listen("tcp", ":"+grpcPort)
		if err != nil {
			errCh <- fmt.Errorf("gRPC listen error: %w", err)
			cancel()
			return
		}
		s.Logger.Info("starting gRPC server", zap.String("address", lis.Addr().String()))
		if err := s.GRPCServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
			cancel()
		}
	}()

	select {
	case <-ctx.Done():
		s.Logger.Info("shutdown initiated")
	case err := <-errCh:
		s.Logger.Error("fatal server error, shutting down", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := s.Metrics.Shutdown(shutdownCtx); err != nil {
		s.Logger.Error("metrics server shutdown error", zap.Error(err))
	}
	s.GRPCServer.GracefulStop()

	wg.Wait()
	s.Logger.Info("all servers shut down gracefully")
	return nil
}

// Stop shuts the metrics server and the gRPC server down gracefully, without
// Start's signal handling, for callers that manage their own context
// cancellation (e.g. tests).
func (s *Server) Stop(ctx context.Context) error {
	err := s.Metrics.Shutdown(ctx)
	s.GRPCServer.GracefulStop()
	return err
}
