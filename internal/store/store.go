package store

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/pipestream/registryhub/internal/artifact"
	"github.com/pipestream/registryhub/internal/model"
	pkgerrors "github.com/pipestream/registryhub/pkg/errors"
)

// ArtifactMirror is the subset of the schema artifact client's surface
// SaveSchema needs to mirror a freshly inserted schema.
type ArtifactMirror interface {
	CreateOrUpdate(ctx context.Context, serviceName, version, jsonSchema string) (*artifact.CreateResult, error)
}

// Store is the registry hub's system of record.
type Store struct {
	base
}

// New builds a Store over an already-connected pool.
func New(db *sql.DB, log *zap.Logger) *Store {
	return &Store{base{db: db, log: log}}
}

// RegisterModule upserts a ServiceModule by its deterministic service id,
// optionally upserting an associated ConfigSchema first. Both writes run in
// one transaction. Idempotent: re-registering the same instance refreshes
// version, metadata, and the heartbeat without creating a duplicate row.
func (s *Store) RegisterModule(ctx context.Context, name, host string, port int, version string, metadata map[string]string, jsonSchema string) (*model.ServiceModule, error) {
	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer s.rollbackTx(tx)

	var schemaID string
	if jsonSchema != "" {
		schemaID = model.SchemaID(name, version)
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO config_schemas (schema_id, service_name, schema_version, json_schema, created_at, sync_status)
			VALUES ($1, $2, $3, $4, now(), 'PENDING')
			ON CONFLICT (schema_id) DO UPDATE SET json_schema = EXCLUDED.json_schema
		`, schemaID, name, version, jsonSchema); err != nil {
			return nil, fmt.Errorf("upsert config schema: %w", err)
		}
	}

	serviceID := model.ServiceID(name, host, port)
	metaBytes, err := toJSONB(metadata)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}

	row := tx.QueryRowContext(ctx, `
		INSERT INTO service_modules (service_id, service_name, host, port, version, config_schema_id, metadata, registered_at, last_heartbeat, status)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, now(), now(), 'ACTIVE')
		ON CONFLICT (service_id) DO UPDATE SET
			version = EXCLUDED.version,
			config_schema_id = COALESCE(EXCLUDED.config_schema_id, service_modules.config_schema_id),
			metadata = EXCLUDED.metadata,
			last_heartbeat = now(),
			status = 'ACTIVE'
		RETURNING service_id, service_name, host, port, version, COALESCE(config_schema_id, ''), metadata, registered_at, last_heartbeat, status
	`, serviceID, name, host, port, version, schemaID, metaBytes)

	sm, err := scanServiceModule(row)
	if err != nil {
		return nil, fmt.Errorf("upsert service module: %w", err)
	}

	if err := s.commitTx(tx); err != nil {
		return nil, err
	}
	return sm, nil
}

// SaveSchema inserts a new ConfigSchema row and attempts to mirror it to
// the artifact registry. A mirror failure marks the row FAILED with the
// error text but never rolls back the insert: the store is the system of
// record, the mirror is best-effort.
func (s *Store) SaveSchema(ctx context.Context, mirror ArtifactMirror, serviceName, version, jsonSchema string) (*model.ConfigSchema, error) {
	schemaID := model.SchemaID(serviceName, version)

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO config_schemas (schema_id, service_name, schema_version, json_schema, created_at, sync_status)
		VALUES ($1, $2, $3, $4, now(), 'PENDING')
		ON CONFLICT (schema_id) DO UPDATE SET json_schema = EXCLUDED.json_schema
	`, schemaID, serviceName, version, jsonSchema); err != nil {
		s.rollbackTx(tx)
		return nil, fmt.Errorf("insert config schema: %w", err)
	}
	if err := s.commitTx(tx); err != nil {
		return nil, err
	}

	result, mirrorErr := mirror.CreateOrUpdate(ctx, serviceName, version, jsonSchema)
	if mirrorErr != nil {
		s.log.Warn("schema mirror to artifact registry failed", zap.String("serviceName", serviceName), zap.Error(mirrorErr))
		if _, err := s.db.ExecContext(ctx, `
			UPDATE config_schemas SET sync_status = 'FAILED', sync_error = $2, last_sync_attempt = now()
			WHERE schema_id = $1
		`, schemaID, mirrorErr.Error()); err != nil {
			return nil, fmt.Errorf("mark schema sync failed: %w", err)
		}
	} else {
		if _, err := s.db.ExecContext(ctx, `
			UPDATE config_schemas SET sync_status = 'SYNCED', artifact_id = $2, artifact_global_id = $3, last_sync_attempt = now(), sync_error = ''
			WHERE schema_id = $1
		`, schemaID, result.ArtifactID, result.GlobalID); err != nil {
			return nil, fmt.Errorf("mark schema synced: %w", err)
		}
	}

	return s.FindSchemaByID(ctx, schemaID)
}

// UpdateHeartbeat refreshes last_heartbeat for an existing row; a no-op if
// the row is absent.
func (s *Store) UpdateHeartbeat(ctx context.Context, serviceID string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE service_modules SET last_heartbeat = now() WHERE service_id = $1`, serviceID)
	if err != nil {
		return fmt.Errorf("update heartbeat: %w", err)
	}
	return nil
}

// MarkUnhealthy flips status to UNHEALTHY for an existing row; a no-op if
// the row is absent.
func (s *Store) MarkUnhealthy(ctx context.Context, serviceID string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE service_modules SET status = 'UNHEALTHY' WHERE service_id = $1`, serviceID)
	if err != nil {
		return fmt.Errorf("mark unhealthy: %w", err)
	}
	return nil
}

// UnregisterModule deletes the row if present, reporting whether a row was
// actually removed.
func (s *Store) UnregisterModule(ctx context.Context, serviceID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM service_modules WHERE service_id = $1`, serviceID)
	if err != nil {
		return false, fmt.Errorf("delete service module: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// GetActiveServices returns every row currently marked ACTIVE.
func (s *Store) GetActiveServices(ctx context.Context) ([]model.ServiceModule, error) {
	return s.queryServiceModules(ctx, `
		SELECT service_id, service_name, host, port, version, COALESCE(config_schema_id, ''), metadata, registered_at, last_heartbeat, status
		FROM service_modules WHERE status = 'ACTIVE'
	`)
}

// GetAllServices returns every row regardless of status.
func (s *Store) GetAllServices(ctx context.Context) ([]model.ServiceModule, error) {
	return s.queryServiceModules(ctx, `
		SELECT service_id, service_name, host, port, version, COALESCE(config_schema_id, ''), metadata, registered_at, last_heartbeat, status
		FROM service_modules
	`)
}

// FindStaleServices returns ACTIVE rows whose heartbeat is older than the
// staleness window, used by the reconciliation sweep.
func (s *Store) FindStaleServices(ctx context.Context) ([]model.ServiceModule, error) {
	return s.queryServiceModules(ctx, `
		SELECT service_id, service_name, host, port, version, COALESCE(config_schema_id, ''), metadata, registered_at, last_heartbeat, status
		FROM service_modules WHERE status = 'ACTIVE' AND last_heartbeat < now() - interval '30 seconds'
	`)
}

// FindByID looks up one row by its service id.
func (s *Store) FindByID(ctx context.Context, serviceID string) (*model.ServiceModule, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT service_id, service_name, host, port, version, COALESCE(config_schema_id, ''), metadata, registered_at, last_heartbeat, status
		FROM service_modules WHERE service_id = $1
	`, serviceID)
	sm, err := scanServiceModule(row)
	if err == sql.ErrNoRows {
		return nil, pkgerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find service module by id: %w", err)
	}
	return sm, nil
}

// FindSchemaByID looks up one schema row by its schema id.
func (s *Store) FindSchemaByID(ctx context.Context, schemaID string) (*model.ConfigSchema, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT schema_id, service_name, schema_version, json_schema, created_at, created_by,
		       COALESCE(artifact_id, ''), artifact_global_id, sync_status, last_sync_attempt, sync_error
		FROM config_schemas WHERE schema_id = $1
	`, schemaID)
	cs, err := scanConfigSchema(row)
	if err == sql.ErrNoRows {
		return nil, pkgerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find schema by id: %w", err)
	}
	return cs, nil
}

// FindLatestSchemaByServiceName returns the most recently created schema
// for name.
func (s *Store) FindLatestSchemaByServiceName(ctx context.Context, name string) (*model.ConfigSchema, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT schema_id, service_name, schema_version, json_schema, created_at, created_by,
		       COALESCE(artifact_id, ''), artifact_global_id, sync_status, last_sync_attempt, sync_error
		FROM config_schemas WHERE service_name = $1 ORDER BY created_at DESC LIMIT 1
	`, name)
	cs, err := scanConfigSchema(row)
	if err == sql.ErrNoRows {
		return nil, pkgerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find latest schema by service name: %w", err)
	}
	return cs, nil
}

// FindSchemasNeedingSync returns every schema row not currently SYNCED.
func (s *Store) FindSchemasNeedingSync(ctx context.Context) ([]model.ConfigSchema, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT schema_id, service_name, schema_version, json_schema, created_at, created_by,
		       COALESCE(artifact_id, ''), artifact_global_id, sync_status, last_sync_attempt, sync_error
		FROM config_schemas WHERE sync_status IN ('PENDING', 'FAILED', 'OUT_OF_SYNC')
	`)
	if err != nil {
		return nil, fmt.Errorf("find schemas needing sync: %w", err)
	}
	defer rows.Close()

	var out []model.ConfigSchema
	for rows.Next() {
		cs, err := scanConfigSchema(rows)
		if err != nil {
			return nil, fmt.Errorf("scan config schema: %w", err)
		}
		out = append(out, *cs)
	}
	return out, rows.Err()
}

// MarkSchemaSynced records a successful reconciliation-sweep replay of a
// schema row's mirror to the artifact registry.
func (s *Store) MarkSchemaSynced(ctx context.Context, schemaID, artifactID string, artifactGlobalID int64) error {
	if _, err := s.db.ExecContext(ctx, `
		UPDATE config_schemas SET sync_status = 'SYNCED', artifact_id = $2, artifact_global_id = $3, last_sync_attempt = now(), sync_error = ''
		WHERE schema_id = $1
	`, schemaID, artifactID, artifactGlobalID); err != nil {
		return fmt.Errorf("mark schema synced: %w", err)
	}
	return nil
}

// MarkSchemaSyncFailed records a failed reconciliation-sweep replay attempt.
func (s *Store) MarkSchemaSyncFailed(ctx context.Context, schemaID, syncErr string) error {
	if _, err := s.db.ExecContext(ctx, `
		UPDATE config_schemas SET sync_status = 'FAILED', sync_error = $2, last_sync_attempt = now()
		WHERE schema_id = $1
	`, schemaID, syncErr); err != nil {
		return fmt.Errorf("mark schema sync failed: %w", err)
	}
	return nil
}

// CountServicesByStatus aggregates row counts per status.
func (s *Store) CountServicesByStatus(ctx context.Context) (map[model.Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, count(*) FROM service_modules GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count services by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[model.Status]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[model.Status(status)] = n
	}
	return counts, rows.Err()
}

func (s *Store) queryServiceModules(ctx context.Context, query string, args ...interface{}) ([]model.ServiceModule, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query service modules: %w", err)
	}
	defer rows.Close()

	var out []model.ServiceModule
	for rows.Next() {
		sm, err := scanServiceModule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service module: %w", err)
		}
		out = append(out, *sm)
	}
	return out, rows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanServiceModule(r rowScanner) (*model.ServiceModule, error) {
	var sm model.ServiceModule
	var metaBytes []byte
	var status string
	if err := r.Scan(&sm.ServiceID, &sm.ServiceName, &sm.Host, &sm.Port, &sm.Version, &sm.ConfigSchemaID,
		&metaBytes, &sm.RegisteredAt, &sm.LastHeartbeat, &status); err != nil {
		return nil, err
	}
	sm.Status = model.Status(status)
	meta, err := fromJSONB(metaBytes)
	if err != nil {
		return nil, err
	}
	sm.Metadata = meta
	return &sm, nil
}

func scanConfigSchema(r rowScanner) (*model.ConfigSchema, error) {
	var cs model.ConfigSchema
	var syncStatus string
	var lastSyncAttempt sql.NullTime
	var syncError sql.NullString
	var createdBy sql.NullString
	if err := r.Scan(&cs.SchemaID, &cs.ServiceName, &cs.SchemaVersion, &cs.JSONSchema, &cs.CreatedAt, &createdBy,
		&cs.ArtifactID, &cs.ArtifactGlobalID, &syncStatus, &lastSyncAttempt, &syncError); err != nil {
		return nil, err
	}
	cs.CreatedBy = createdBy.String
	cs.SyncStatus = model.SyncStatus(syncStatus)
	cs.LastSyncAttempt = lastSyncAttempt.Time
	cs.SyncError = syncError.String
	return &cs, nil
}
