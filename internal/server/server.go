// Package server assembles the hub's gRPC server: interceptor chain,
// health/reflection wiring, and graceful startup/shutdown.
package server

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/pipestream/registryhub/pkg/metrics"
)

// UnaryServerInterceptor logs and traces every unary request, and records
// its duration and in-flight count in the shared Prometheus collectors.
func UnaryServerInterceptor(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		svcName, methodName := extractServiceAndMethod(info.FullMethod)

		spanCtx, span := otel.Tracer("registryhub").Start(ctx, info.FullMethod)
		defer span.End()

		metrics.ActiveRequests.Inc()
		defer metrics.ActiveRequests.Dec()

		resp, err := handler(spanCtx, req)

		duration := time.Since(start)
		status := "ok"
		if err != nil {
			status = "error"
			span.RecordError(err)
		}
		metrics.RequestDuration.WithLabelValues(info.FullMethod, status).Observe(duration.Seconds())

		log.Info("handled request",
			zap.String("service", svcName),
			zap.String("method", methodName),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return resp, err
	}
}

// StreamServerInterceptor logs and traces every streaming request.
func StreamServerInterceptor(log *zap.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		svcName, methodName := extractServiceAndMethod(info.FullMethod)

		tr := otel.Tracer("registryhub")
		ctx, span := tr.Start(ss.Context(), info.FullMethod)
		defer span.End()

		wrapped := &wrappedStream{ServerStream: ss, ctx: ctx}

		start := time.Now()
		metrics.ActiveRequests.Inc()
		defer metrics.ActiveRequests.Dec()

		err := handler(srv, wrapped)

		duration := time.Since(start)
		status := "ok"
		if err != nil {
			status = "error"
			span.RecordError(err)
		}
		metrics.RequestDuration.WithLabelValues(info.FullMethod, status).Observe(duration.Seconds())

		log.Info("handled stream",
			zap.String("service", svcName),
			zap.String("method", methodName),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return err
	}
}

// wrappedStream swaps in the traced context for the stream's handler.
type wrappedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (w *wrappedStream) Context() context.Context {
	return w.ctx
}

// extractServiceAndMethod splits a gRPC full method string of the form
// "/package.service/method" into its two parts.
func extractServiceAndMethod(fullMethod string) (serviceName, methodName string) {
	parts := strings.SplitN(strings.TrimPrefix(fullMethod, "/"), "/", 2)
	if len(parts) != 2 {
		return "unknown", "unknown"
	}
	return parts[0], parts[1]
}
