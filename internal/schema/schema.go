// Package schema implements the layered module schema lookup: store, then
// schema artifact registry, then a direct call back into the module,
// fronted by a Redis cache of whichever step resolves.
package schema

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pipestream/registryhub/api/registryv1"
	"github.com/pipestream/registryhub/internal/artifact"
	"github.com/pipestream/registryhub/internal/model"
	"github.com/pipestream/registryhub/internal/moduleclient"
	pkgerrors "github.com/pipestream/registryhub/pkg/errors"
)

// cacheTTL is how long a resolved schema stays cached, regardless of which
// of the three steps produced it.
const cacheTTL = 60 * time.Second

// SchemaStore is the subset of the registry store this package depends on.
type SchemaStore interface {
	FindSchemaByID(ctx context.Context, schemaID string) (*model.ConfigSchema, error)
	FindLatestSchemaByServiceName(ctx context.Context, name string) (*model.ConfigSchema, error)
}

// ArtifactLookup is the subset of the schema artifact client this package
// depends on.
type ArtifactLookup interface {
	GetSchema(ctx context.Context, serviceName, version string) (string, error)
	GetArtifactMetadata(ctx context.Context, serviceName, version string) (*artifact.ArtifactMetadata, error)
}

// ModuleDialer opens a dynamic stub against a live module.
type ModuleDialer interface {
	Open(ctx context.Context, host string, port int) (moduleclient.Stub, error)
}

// Cache is the subset of a keyed JSON cache used to skip re-resolution.
// Satisfied by a thin wrapper over *redis.Client.
type Cache interface {
	Get(ctx context.Context, key string, value interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// ModuleLocation is host/port a module can currently be reached at, used
// for the step-3 direct fallback. Get resolves it through the Service's
// ModuleLocator (the discovery surface, from healthyNodes) when it reaches
// that step.
type ModuleLocation struct {
	Host string
	Port int
}

// ModuleLocator resolves a module's current address for the direct-call
// fallback.
type ModuleLocator interface {
	Locate(ctx context.Context, moduleName string) (ModuleLocation, bool, error)
}

// Service implements GetModuleSchema's three-tier fallback.
type Service struct {
	store    SchemaStore
	artifact ArtifactLookup
	dialer   ModuleDialer
	locator  ModuleLocator
	cache    Cache
	log      *zap.Logger
}

// New builds a Service from its collaborators. cache may be nil, in which
// case the cache tier is skipped entirely.
func New(store SchemaStore, art ArtifactLookup, dialer ModuleDialer, locator ModuleLocator, cache Cache, log *zap.Logger) *Service {
	return &Service{store: store, artifact: art, dialer: dialer, locator: locator, cache: cache, log: log}
}

// Get resolves moduleName's config schema, trying the store, then the
// artifact registry, then a direct call to the module itself. version may
// be empty, meaning "latest".
func (s *Service) Get(ctx context.Context, moduleName, version string) (*registryv1.ModuleSchemaResponse, error) {
	cacheKey := fmt.Sprintf("schema:%s:%s", moduleName, version)

	if s.cache != nil {
		var cached registryv1.ModuleSchemaResponse
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	resp, err := s.resolve(ctx, moduleName, version)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, resp, cacheTTL); err != nil {
			s.log.Warn("schema cache write failed", zap.String("moduleName", moduleName), zap.Error(err))
		}
	}
	return resp, nil
}

func (s *Service) resolve(ctx context.Context, moduleName, version string) (*registryv1.ModuleSchemaResponse, error) {
	if resp := s.fromStore(ctx, moduleName, version); resp != nil {
		return resp, nil
	}

	if resp := s.fromArtifactRegistry(ctx, moduleName, version); resp != nil {
		return resp, nil
	}

	resp, err := s.fromModule(ctx, moduleName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", pkgerrors.ErrSchemaNotFound, moduleName)
	}
	return resp, nil
}

func (s *Service) fromStore(ctx context.Context, moduleName, version string) *registryv1.ModuleSchemaResponse {
	var (
		row *model.ConfigSchema
		err error
	)
	if version != "" {
		row, err = s.store.FindSchemaByID(ctx, model.SchemaID(moduleName, version))
	} else {
		row, err = s.store.FindLatestSchemaByServiceName(ctx, moduleName)
	}
	if err != nil || row == nil {
		return nil
	}

	return &registryv1.ModuleSchemaResponse{
		ModuleName:    moduleName,
		SchemaJSON:    row.JSONSchema,
		SchemaVersion: row.SchemaVersion,
		ArtifactID:    row.ArtifactID,
		Metadata:      map[string]string{"source": "store", "sync_status": string(row.SyncStatus)},
		UpdatedAt:     row.CreatedAt,
	}
}

func (s *Service) fromArtifactRegistry(ctx context.Context, moduleName, version string) *registryv1.ModuleSchemaResponse {
	schemaJSON, err := s.artifact.GetSchema(ctx, moduleName, version)
	if err != nil {
		return nil
	}

	meta, err := s.artifact.GetArtifactMetadata(ctx, moduleName, version)
	if err != nil {
		s.log.Warn("artifact metadata lookup failed after schema hit", zap.String("moduleName", moduleName), zap.Error(err))
	}

	displayVersion := version
	if displayVersion == "" {
		displayVersion = "v1"
	}
	resp := &registryv1.ModuleSchemaResponse{
		ModuleName:    moduleName,
		SchemaJSON:    schemaJSON,
		SchemaVersion: displayVersion,
		Metadata:      map[string]string{"source": "artifact-registry"},
		UpdatedAt:     time.Now(),
	}
	if meta != nil {
		resp.ArtifactID = meta.ArtifactID
		resp.UpdatedAt = meta.ModifiedOn
	}
	return resp
}

func (s *Service) fromModule(ctx context.Context, moduleName string) (*registryv1.ModuleSchemaResponse, error) {
	loc, ok, err := s.locator.Locate(ctx, moduleName)
	if err != nil || !ok {
		return nil, fmt.Errorf("locate module %s: %w", moduleName, err)
	}

	stub, err := s.dialer.Open(ctx, loc.Host, loc.Port)
	if err != nil {
		return nil, fmt.Errorf("open module stub: %w", err)
	}
	defer stub.Close()

	meta, err := stub.GetServiceRegistration(ctx)
	if err != nil {
		return nil, fmt.Errorf("get service registration from module: %w", err)
	}

	schemaJSON := defaultOpenAPISchema(moduleName)
	if meta != nil && meta.JSONConfigSchema != "" {
		schemaJSON = meta.JSONConfigSchema
	}

	return &registryv1.ModuleSchemaResponse{
		ModuleName:    moduleName,
		SchemaJSON:    schemaJSON,
		SchemaVersion: "latest",
		Metadata:      map[string]string{"source": "module-direct"},
		UpdatedAt:     time.Now(),
	}, nil
}

func defaultOpenAPISchema(name string) string {
	return fmt.Sprintf(`{"openapi":"3.1.0","info":{"title":"%s Configuration","version":"1.0.0"},"components":{"schemas":{"Config":{"type":"object","additionalProperties":{"type":"string"},"description":"Key-value configuration for %s"}}}}`, name, name)
}
