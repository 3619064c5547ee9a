// Package cache is a thin JSON-marshalling wrapper over go-redis, used to
// front the schema lookup's layered resolution with a short-TTL cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Options configures the underlying Redis client.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Redis marshals values to JSON before storing them under a plain string
// key, and unmarshals on read.
type Redis struct {
	client *redis.Client
	log    *zap.Logger
}

// New builds a Redis client without dialing; connection errors surface on
// first use rather than at construction, matching go-redis's lazy-connect client.
func New(opts Options, log *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return &Redis{client: client, log: log}
}

// Set JSON-encodes value and stores it under key with the given TTL.
func (r *Redis) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value for %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		r.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Get looks up key and JSON-decodes it into value. Returns redis.Nil
// (wrapped) on a cache miss.
func (r *Redis) Get(ctx context.Context, key string, value interface{}) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("key not found: %s: %w", key, err)
		}
		r.log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return err
	}
	if err := json.Unmarshal(data, value); err != nil {
		return fmt.Errorf("unmarshal cache value for %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
