// Command server runs the service registration and discovery hub: it
// wires Consul, the Apicurio schema registry, Postgres, Kafka, and Redis
// behind a single gRPC surface.
package main

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/pipestream/registryhub/internal/artifact"
	"github.com/pipestream/registryhub/internal/cache"
	"github.com/pipestream/registryhub/internal/config"
	"github.com/pipestream/registryhub/internal/convergence"
	"github.com/pipestream/registryhub/internal/db"
	"github.com/pipestream/registryhub/internal/discovery"
	"github.com/pipestream/registryhub/internal/discoverysurface"
	"github.com/pipestream/registryhub/internal/eventbus"
	"github.com/pipestream/registryhub/internal/moduleclient"
	"github.com/pipestream/registryhub/internal/orchestrator"
	"github.com/pipestream/registryhub/internal/readiness"
	"github.com/pipestream/registryhub/internal/schema"
	"github.com/pipestream/registryhub/internal/server"
	"github.com/pipestream/registryhub/internal/store"
	"github.com/pipestream/registryhub/pkg/logger"
	"github.com/pipestream/registryhub/pkg/metrics"
	"github.com/pipestream/registryhub/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Environment: cfg.AppEnv,
		LogLevel:    cfg.LogLevel,
		ServiceName: "registryhub",
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	zlog := log.GetZapLogger()
	defer func() { _ = log.Sync() }()

	_, shutdownTracing, err := tracing.Init(tracing.Config{ServiceName: "registryhub", Environment: cfg.AppEnv})
	if err != nil {
		zlog.Error("failed to init tracing", zap.Error(err))
		shutdownTracing = func(context.Context) error { return nil }
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	database, err := db.Connect(ctx, zlog, cfg)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.Close() }()

	metrics.Init()
	metrics.CollectSystemMetrics(15 * time.Second)

	discoveryClient := discovery.New(discovery.Config{BaseURL: cfg.ConsulHTTPAddr}, log)
	artifactClient := artifact.New(artifact.Config{BaseURL: cfg.ApicurioRegistryURL}, log)
	eventEmitter := eventbus.New(eventbus.Config{Brokers: cfg.KafkaBrokers}, zlog)
	defer func() { _ = eventEmitter.Close() }()

	registryStore := store.New(database, zlog)
	waiter := convergence.New(discoveryClient, zlog)
	dialer := moduleclient.New()

	orchestratorSvc := orchestrator.New(discoveryClient, waiter, registryStore, artifactClient, eventEmitter, dialer, zlog)
	discoverySvc := discoverysurface.New(discoveryClient, zlog)

	var schemaCache schema.Cache
	if cfg.RedisAddr != "" {
		schemaCache = cache.New(cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB}, zlog)
	}
	schemaSvc := schema.New(registryStore, artifactClient, dialer, discoverySvc, schemaCache, zlog)

	checker := readiness.New(
		readiness.NewStoreCheck(database),
		readiness.NewDiscoveryCheck(discoveryClient.AgentInfo),
		readiness.NewArtifactCheck(artifactClient.IsHealthy),
	)

	registryServer := server.NewRegistryServer(orchestratorSvc, discoverySvc, schemaSvc)
	metricsHandler := server.MetricsHandler(checker)
	srv := server.NewServer(zlog, registryServer, checker, metricsHandler, ":"+cfg.HTTPPort)

	if cfg.ServiceRegistrationEnabled {
		go selfRegister(ctx, zlog, discoveryClient, cfg)
	}

	go orchestratorSvc.RunReconciliation(ctx, 30*time.Second)

	if err := srv.Start(ctx, cfg.GRPCPort); err != nil {
		zlog.Error("server failed", zap.Error(err))
	}

	if err := shutdownTracing(context.Background()); err != nil {
		zlog.Warn("tracing shutdown error", zap.Error(err))
	}
}

// selfRegister registers this process itself as a discoverable service, per
// its own SERVICE_REGISTRATION_* configuration, and deregisters on shutdown.
func selfRegister(ctx context.Context, log *zap.Logger, discoveryClient *discovery.Client, cfg *config.Config) {
	hostname, _ := os.Hostname()
	host := cfg.ServiceRegistrationHost
	if host == "" {
		host = hostname
	}
	serviceID := cfg.ServiceRegistrationServiceName + "-" + hostname

	ok := discoveryClient.Register(ctx, serviceID, cfg.ServiceRegistrationServiceName, host,
		cfg.ServiceRegistrationPort, cfg.ServiceRegistrationTags, nil, cfg.ServiceRegistrationCapabilities, "")
	if !ok {
		log.Warn("self-registration failed", zap.String("service_id", serviceID))
		return
	}
	log.Info("self-registered with discovery agent", zap.String("service_id", serviceID))

	<-ctx.Done()
	discoveryClient.Deregister(context.Background(), serviceID)
}
