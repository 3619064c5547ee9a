package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pipestream/registryhub/internal/artifact"
	pkgerrors "github.com/pipestream/registryhub/pkg/errors"
)

func newTestStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(db, zap.NewNop()), mock
}

func TestRegisterModuleNewRow(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO service_modules").
		WillReturnRows(sqlmock.NewRows([]string{
			"service_id", "service_name", "host", "port", "version", "config_schema_id",
			"metadata", "registered_at", "last_heartbeat", "status",
		}).AddRow("svc-localhost-8080", "svc", "localhost", 8080, "1.0", "", []byte(`{}`), time.Now(), time.Now(), "ACTIVE"))
	mock.ExpectCommit()

	sm, err := s.RegisterModule(context.Background(), "svc", "localhost", 8080, "1.0", nil, "")
	require.NoError(t, err)
	assert.Equal(t, "svc-localhost-8080", sm.ServiceID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterModuleWithSchema(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO config_schemas").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO service_modules").
		WillReturnRows(sqlmock.NewRows([]string{
			"service_id", "service_name", "host", "port", "version", "config_schema_id",
			"metadata", "registered_at", "last_heartbeat", "status",
		}).AddRow("svc-localhost-8080", "svc", "localhost", 8080, "1.0", "svc-v1_0", []byte(`{}`), time.Now(), time.Now(), "ACTIVE"))
	mock.ExpectCommit()

	sm, err := s.RegisterModule(context.Background(), "svc", "localhost", 8080, "1.0", nil, `{"type":"object"}`)
	require.NoError(t, err)
	assert.Equal(t, "svc-v1_0", sm.ConfigSchemaID)
}

type stubMirror struct {
	result *artifact.CreateResult
	err    error
}

func (m stubMirror) CreateOrUpdate(ctx context.Context, serviceName, version, jsonSchema string) (*artifact.CreateResult, error) {
	return m.result, m.err
}

func TestSaveSchemaMirrorSuccess(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO config_schemas").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectExec("UPDATE config_schemas SET sync_status = 'SYNCED'").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT schema_id, service_name").
		WillReturnRows(sqlmock.NewRows([]string{
			"schema_id", "service_name", "schema_version", "json_schema", "created_at", "created_by",
			"artifact_id", "artifact_global_id", "sync_status", "last_sync_attempt", "sync_error",
		}).AddRow("svc-v1_0", "svc", "1.0", `{}`, time.Now(), nil, "svc-config-v1_0", 1, "SYNCED", time.Now(), ""))

	mirror := stubMirror{result: &artifact.CreateResult{ArtifactID: "svc-config-v1_0", GlobalID: 1, Version: "1"}}
	cs, err := s.SaveSchema(context.Background(), mirror, "svc", "1.0", "{}")
	require.NoError(t, err)
	assert.Equal(t, "SYNCED", string(cs.SyncStatus))
}

func TestSaveSchemaMirrorFailure(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO config_schemas").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectExec("UPDATE config_schemas SET sync_status = 'FAILED'").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT schema_id, service_name").
		WillReturnRows(sqlmock.NewRows([]string{
			"schema_id", "service_name", "schema_version", "json_schema", "created_at", "created_by",
			"artifact_id", "artifact_global_id", "sync_status", "last_sync_attempt", "sync_error",
		}).AddRow("svc-v1_0", "svc", "1.0", `{}`, time.Now(), nil, "", 0, "FAILED", time.Now(), "boom"))

	mirror := stubMirror{err: errors.New("boom")}
	cs, err := s.SaveSchema(context.Background(), mirror, "svc", "1.0", "{}")
	require.NoError(t, err)
	assert.Equal(t, "FAILED", string(cs.SyncStatus))
}

func TestFindByIDNotFound(t *testing.T) {
	s, mock := newTestStore(t)
	mock.ExpectQuery("SELECT service_id, service_name").
		WillReturnRows(sqlmock.NewRows([]string{
			"service_id", "service_name", "host", "port", "version", "config_schema_id",
			"metadata", "registered_at", "last_heartbeat", "status",
		}))

	_, err := s.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, pkgerrors.ErrNotFound)
}

func TestUnregisterModule(t *testing.T) {
	s, mock := newTestStore(t)
	mock.ExpectExec("DELETE FROM service_modules").WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := s.UnregisterModule(context.Background(), "svc-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCountServicesByStatus(t *testing.T) {
	s, mock := newTestStore(t)
	mock.ExpectQuery("SELECT status, count").
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("ACTIVE", 3).
			AddRow("UNHEALTHY", 1))

	counts, err := s.CountServicesByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, counts["ACTIVE"])
	assert.Equal(t, 1, counts["UNHEALTHY"])
}
