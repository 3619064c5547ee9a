package schema

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pipestream/registryhub/api/registryv1"
	"github.com/pipestream/registryhub/internal/artifact"
	"github.com/pipestream/registryhub/internal/model"
	"github.com/pipestream/registryhub/internal/moduleclient"
)

type stubStore struct {
	byID    *model.ConfigSchema
	byIDErr error
	latest  *model.ConfigSchema
	latErr  error
}

func (s *stubStore) FindSchemaByID(ctx context.Context, schemaID string) (*model.ConfigSchema, error) {
	return s.byID, s.byIDErr
}

func (s *stubStore) FindLatestSchemaByServiceName(ctx context.Context, name string) (*model.ConfigSchema, error) {
	return s.latest, s.latErr
}

type stubArtifact struct {
	schema    string
	schemaErr error
	meta      *artifact.ArtifactMetadata
	metaErr   error
}

func (a *stubArtifact) GetSchema(ctx context.Context, serviceName, version string) (string, error) {
	return a.schema, a.schemaErr
}

func (a *stubArtifact) GetArtifactMetadata(ctx context.Context, serviceName, version string) (*artifact.ArtifactMetadata, error) {
	return a.meta, a.metaErr
}

type stubLocator struct {
	loc ModuleLocation
	ok  bool
	err error
}

func (l *stubLocator) Locate(ctx context.Context, moduleName string) (ModuleLocation, bool, error) {
	return l.loc, l.ok, l.err
}

type stubDialer struct {
	stub moduleclient.Stub
	err  error
}

func (d *stubDialer) Open(ctx context.Context, host string, port int) (moduleclient.Stub, error) {
	return d.stub, d.err
}

type stubStub struct {
	meta *registryv1.ServiceRegistrationMetadata
	err  error
}

func (s *stubStub) GetServiceRegistration(ctx context.Context) (*registryv1.ServiceRegistrationMetadata, error) {
	return s.meta, s.err
}

func (s *stubStub) Close() error { return nil }

type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) Get(ctx context.Context, key string, value interface{}) error {
	raw, ok := m.data[key]
	if !ok {
		return errors.New("miss")
	}
	return json.Unmarshal(raw, value)
}

func (m *memCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func TestGetFromStoreByVersion(t *testing.T) {
	store := &stubStore{byID: &model.ConfigSchema{
		ServiceName: "parser", SchemaVersion: "1.0", JSONSchema: `{"a":1}`, SyncStatus: model.SyncSynced,
	}}
	svc := New(store, &stubArtifact{}, &stubDialer{}, &stubLocator{}, nil, zap.NewNop())

	resp, err := svc.Get(context.Background(), "parser", "1.0")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, resp.SchemaJSON)
	assert.Equal(t, "store", resp.Metadata["source"])
	assert.Equal(t, "SYNCED", resp.Metadata["sync_status"])
}

func TestGetFallsThroughToArtifactRegistry(t *testing.T) {
	store := &stubStore{byIDErr: errors.New("no row")}
	art := &stubArtifact{schema: `{"b":2}`, meta: &artifact.ArtifactMetadata{ArtifactID: "parser-config-v1"}}
	svc := New(store, art, &stubDialer{}, &stubLocator{}, nil, zap.NewNop())

	resp, err := svc.Get(context.Background(), "parser", "1.0")
	require.NoError(t, err)
	assert.Equal(t, `{"b":2}`, resp.SchemaJSON)
	assert.Equal(t, "artifact-registry", resp.Metadata["source"])
	assert.Equal(t, "parser-config-v1", resp.ArtifactID)
}

func TestGetFallsThroughToModuleDirect(t *testing.T) {
	store := &stubStore{latErr: errors.New("no row")}
	art := &stubArtifact{schemaErr: errors.New("not in registry")}
	locator := &stubLocator{loc: ModuleLocation{Host: "localhost", Port: 9090}, ok: true}
	dialer := &stubDialer{stub: &stubStub{meta: &registryv1.ServiceRegistrationMetadata{JSONConfigSchema: `{"c":3}`}}}
	svc := New(store, art, dialer, locator, nil, zap.NewNop())

	resp, err := svc.Get(context.Background(), "parser", "")
	require.NoError(t, err)
	assert.Equal(t, `{"c":3}`, resp.SchemaJSON)
	assert.Equal(t, "module-direct", resp.Metadata["source"])
}

func TestGetModuleDirectSynthesizesDefault(t *testing.T) {
	store := &stubStore{latErr: errors.New("no row")}
	art := &stubArtifact{schemaErr: errors.New("not in registry")}
	locator := &stubLocator{loc: ModuleLocation{Host: "localhost", Port: 9090}, ok: true}
	dialer := &stubDialer{stub: &stubStub{meta: &registryv1.ServiceRegistrationMetadata{}}}
	svc := New(store, art, dialer, locator, nil, zap.NewNop())

	resp, err := svc.Get(context.Background(), "parser", "")
	require.NoError(t, err)
	assert.Contains(t, resp.SchemaJSON, `"openapi":"3.1.0"`)
}

func TestGetAllTiersFail(t *testing.T) {
	store := &stubStore{latErr: errors.New("no row")}
	art := &stubArtifact{schemaErr: errors.New("not in registry")}
	locator := &stubLocator{ok: false}
	svc := New(store, art, &stubDialer{}, locator, nil, zap.NewNop())

	_, err := svc.Get(context.Background(), "parser", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parser")
}

func TestGetUsesCacheOnHit(t *testing.T) {
	store := &stubStore{latest: &model.ConfigSchema{ServiceName: "parser", JSONSchema: `{"x":1}`}}
	c := newMemCache()
	svc := New(store, &stubArtifact{}, &stubDialer{}, &stubLocator{}, c, zap.NewNop())

	first, err := svc.Get(context.Background(), "parser", "")
	require.NoError(t, err)
	assert.Equal(t, `{"x":1}`, first.SchemaJSON)

	store.latest = &model.ConfigSchema{ServiceName: "parser", JSONSchema: `{"stale":true}`}
	second, err := svc.Get(context.Background(), "parser", "")
	require.NoError(t, err)
	assert.Equal(t, `{"x":1}`, second.SchemaJSON, "cached response should win over a changed store row")
}
