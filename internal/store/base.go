// Package store is the transactional Postgres repository for
// ServiceModule and ConfigSchema rows.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// base holds the shared connection pool and logger, and the small set of
// transaction helpers every operation in this package builds on.
type base struct {
	db  *sql.DB
	log *zap.Logger
}

func (b *base) beginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		b.log.Error("begin transaction failed", zap.Error(err))
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return tx, nil
}

func (b *base) commitTx(tx *sql.Tx) error {
	if err := tx.Commit(); err != nil {
		b.log.Error("commit transaction failed", zap.Error(err))
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (b *base) rollbackTx(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
		b.log.Error("rollback transaction failed", zap.Error(err))
	}
}

func toJSONB(m map[string]string) ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func fromJSONB(b []byte) (map[string]string, error) {
	if len(b) == 0 {
		return map[string]string{}, nil
	}
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}
