// Package db opens the hub's Postgres connection pool.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/pipestream/registryhub/internal/config"
)

// maxRetries bounds the connect-and-ping retry loop at startup.
const maxRetries = 5

// Connect establishes a connection to Postgres with retries and the pool
// tuning from cfg.
func Connect(ctx context.Context, log *zap.Logger, cfg *config.Config) (*sql.DB, error) {
	var (
		database *sql.DB
		err      error
	)
	for i := 1; i <= maxRetries; i++ {
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
		)
		log.Info("attempting database connection", zap.Int("attempt", i))
		database, err = sql.Open("postgres", dsn)
		if err != nil {
			log.Error("failed to open database", zap.Error(err))
			time.Sleep(3 * time.Second)
			continue
		}

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = database.PingContext(pingCtx)
		cancel()
		if err == nil {
			database.SetMaxOpenConns(cfg.DBMaxOpenConns)
			database.SetMaxIdleConns(cfg.DBMaxIdleConns)
			database.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeMinutes) * time.Minute)
			log.Info("database connection established")
			return database, nil
		}

		log.Error("database ping failed", zap.Error(err))
		_ = database.Close()
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to database after %d retries: %w", maxRetries, err)
}
