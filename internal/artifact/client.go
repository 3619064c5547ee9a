// Package artifact wraps the schema artifact registry's HTTP API (create,
// fetch, list, delete) behind a client that runs every blocking call on a
// bounded worker pool and trips a circuit breaker when the registry is
// unhealthy.
package artifact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pipestream/registryhub/internal/model"
	"github.com/pipestream/registryhub/pkg/logger"
	"github.com/pipestream/registryhub/pkg/metrics"
)

// GroupID is the fixed Apicurio group all artifacts are registered under.
const GroupID = "ai.pipestream.schemas"

// poolName labels this client's worker pool in the shared metrics.
const poolName = "artifact-registry"

// Config holds the schema artifact registry's reachability settings.
type Config struct {
	BaseURL        string
	HTTPClient     *http.Client
	MaxRetries     uint64
	MaxConcurrency int
}

// DefaultConfig returns sane defaults for a local registry.
func DefaultConfig() Config {
	return Config{
		BaseURL:        "http://127.0.0.1:8081",
		HTTPClient:     &http.Client{Timeout: 10 * time.Second},
		MaxRetries:     3,
		MaxConcurrency: 8,
	}
}

// Client is the schema artifact registry's client. One instance is shared
// across the process; every blocking HTTP call runs on the bounded pool.
type Client struct {
	cfg Config
	log logger.Logger
	cb  *gobreaker.CircuitBreaker
	sem chan struct{}
}

// New builds a Client from cfg.
func New(cfg Config, log logger.Logger) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.MaxConcurrency == 0 {
		cfg.MaxConcurrency = 8
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "artifact-registry",
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})

	return &Client{
		cfg: cfg,
		log: log,
		cb:  cb,
		sem: make(chan struct{}, cfg.MaxConcurrency),
	}
}

// CreateResult is the outcome of CreateOrUpdate.
type CreateResult struct {
	ArtifactID string
	GlobalID   int64
	Version    string
}

// CreateOrUpdate registers (or creates a new version of) serviceName's
// config schema. Uses IF_EXISTS=FIND_OR_CREATE_VERSION so the call is
// idempotent for identical content at the same version.
func (c *Client) CreateOrUpdate(ctx context.Context, serviceName, version, jsonSchema string) (*CreateResult, error) {
	artifactID := model.ArtifactID(serviceName, version)

	var result *CreateResult
	err := c.runPooled(ctx, func() error {
		return c.withBreaker(func() error {
			path := fmt.Sprintf("/apis/registry/v2/groups/%s/artifacts?ifExists=FIND_OR_CREATE_VERSION&artifactId=%s",
				GroupID, artifactID)

			req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, strings.NewReader(jsonSchema))
			if err != nil {
				return backoff.Permanent(fmt.Errorf("build request: %w", err))
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-Registry-ArtifactType", "JSON")

			var decoded struct {
				ID      string `json:"id"`
				GlobalID int64  `json:"globalId"`
				Version string `json:"version"`
			}
			if err := c.doWithRetry(req, &decoded); err != nil {
				return err
			}
			result = &CreateResult{ArtifactID: decoded.ID, GlobalID: decoded.GlobalID, Version: decoded.Version}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("create or update artifact %q: %w", artifactID, err)
	}
	return result, nil
}

// GetSchema returns a schema's content as text. Each artifactId holds
// exactly one Apicurio-internal version (CreateOrUpdate never pins one
// explicitly), so the version path segment is always "latest"; version
// selects which artifactId to fetch.
func (c *Client) GetSchema(ctx context.Context, serviceName, version string) (string, error) {
	artifactID := model.ArtifactID(serviceName, version)
	var body string
	err := c.runPooled(ctx, func() error {
		return c.withBreaker(func() error {
			path := fmt.Sprintf("/apis/registry/v2/groups/%s/artifacts/%s/versions/latest", GroupID, artifactID)
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
			if err != nil {
				return backoff.Permanent(fmt.Errorf("build request: %w", err))
			}
			raw, err := c.doRaw(req)
			if err != nil {
				return err
			}
			body = string(raw)
			return nil
		})
	})
	if err != nil {
		return "", fmt.Errorf("get schema for %q: %w", serviceName, err)
	}
	return body, nil
}

// ArtifactMetadata is the artifact-level metadata returned by
// GetArtifactMetadata.
type ArtifactMetadata struct {
	ArtifactID string
	Name       string
	CreatedOn  time.Time
	ModifiedOn time.Time
}

// GetArtifactMetadata returns nil, nil when the artifact does not exist.
func (c *Client) GetArtifactMetadata(ctx context.Context, serviceName, version string) (*ArtifactMetadata, error) {
	artifactID := model.ArtifactID(serviceName, version)
	var meta *ArtifactMetadata
	err := c.runPooled(ctx, func() error {
		return c.withBreaker(func() error {
			path := fmt.Sprintf("/apis/registry/v2/groups/%s/artifacts/%s/meta", GroupID, artifactID)
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
			if err != nil {
				return backoff.Permanent(fmt.Errorf("build request: %w", err))
			}

			var decoded struct {
				ID         string    `json:"id"`
				Name       string    `json:"name"`
				CreatedOn  time.Time `json:"createdOn"`
				ModifiedOn time.Time `json:"modifiedOn"`
			}
			notFound, err := c.doAllowNotFound(req, &decoded)
			if err != nil {
				return err
			}
			if notFound {
				return nil
			}
			meta = &ArtifactMetadata{ArtifactID: decoded.ID, Name: decoded.Name, CreatedOn: decoded.CreatedOn, ModifiedOn: decoded.ModifiedOn}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("get artifact metadata for %q: %w", serviceName, err)
	}
	return meta, nil
}

// ArtifactSummary is one entry of ListArtifacts.
type ArtifactSummary struct {
	ArtifactID string
	Name       string
}

// ListArtifacts lists up to limit artifacts in group (default GroupID) for
// reconciliation sweeps.
func (c *Client) ListArtifacts(ctx context.Context, group string, limit int) ([]ArtifactSummary, error) {
	if group == "" {
		group = GroupID
	}
	if limit <= 0 {
		limit = 500
	}

	var out []ArtifactSummary
	err := c.runPooled(ctx, func() error {
		return c.withBreaker(func() error {
			path := fmt.Sprintf("/apis/registry/v2/groups/%s/artifacts?limit=%d", group, limit)
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
			if err != nil {
				return backoff.Permanent(fmt.Errorf("build request: %w", err))
			}

			var decoded struct {
				Artifacts []struct {
					ID   string `json:"id"`
					Name string `json:"name"`
				} `json:"artifacts"`
			}
			if err := c.doWithRetry(req, &decoded); err != nil {
				return err
			}
			out = make([]ArtifactSummary, 0, len(decoded.Artifacts))
			for _, a := range decoded.Artifacts {
				out = append(out, ArtifactSummary{ArtifactID: a.ID, Name: a.Name})
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list artifacts in group %q: %w", group, err)
	}
	return out, nil
}

// DeleteArtifact removes serviceName's artifact at version entirely.
func (c *Client) DeleteArtifact(ctx context.Context, serviceName, version string) bool {
	artifactID := model.ArtifactID(serviceName, version)
	err := c.runPooled(ctx, func() error {
		return c.withBreaker(func() error {
			path := fmt.Sprintf("/apis/registry/v2/groups/%s/artifacts/%s", GroupID, artifactID)
			req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.cfg.BaseURL+path, nil)
			if err != nil {
				return backoff.Permanent(fmt.Errorf("build request: %w", err))
			}
			return c.doWithRetry(req, nil)
		})
	})
	if err != nil {
		c.log.Error("delete artifact failed", zap.String("serviceName", serviceName), zap.Error(err))
		return false
	}
	return true
}

// IsHealthy performs a system-info readiness probe. Any failure is reported
// as unhealthy.
func (c *Client) IsHealthy(ctx context.Context) bool {
	err := c.runPooled(ctx, func() error {
		return c.withBreaker(func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/apis/registry/v2/system/info", nil)
			if err != nil {
				return backoff.Permanent(err)
			}
			return c.doWithRetry(req, nil)
		})
	})
	return err == nil
}

// runPooled bounds fn to MaxConcurrency concurrent in-flight calls using a
// semaphore, the same shape as the teacher's bounded worker-pool idiom.
func (c *Client) runPooled(ctx context.Context, fn func() error) error {
	metrics.WorkerPoolGauges.WithLabelValues(poolName, "queued").Inc()
	select {
	case c.sem <- struct{}{}:
		metrics.WorkerPoolGauges.WithLabelValues(poolName, "queued").Dec()
	case <-ctx.Done():
		metrics.WorkerPoolGauges.WithLabelValues(poolName, "queued").Dec()
		return ctx.Err()
	}
	metrics.WorkerPoolGauges.WithLabelValues(poolName, "active").Inc()
	defer func() {
		<-c.sem
		metrics.WorkerPoolGauges.WithLabelValues(poolName, "active").Dec()
	}()

	start := time.Now()
	g, _ := errgroup.WithContext(ctx)
	g.Go(fn)
	err := g.Wait()
	metrics.WorkerPoolHistograms.WithLabelValues(poolName).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.WorkerPoolCounters.WithLabelValues(poolName, "error").Inc()
	} else {
		metrics.WorkerPoolCounters.WithLabelValues(poolName, "success").Inc()
	}
	return err
}

func (c *Client) withBreaker(fn func() error) error {
	_, err := c.cb.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	return err
}

func (c *Client) doWithRetry(req *http.Request, out interface{}) error {
	_, err := c.doRetry(req, out, false)
	return err
}

func (c *Client) doAllowNotFound(req *http.Request, out interface{}) (notFound bool, err error) {
	return c.doRetry(req, out, true)
}

func (c *Client) doRetry(req *http.Request, out interface{}, allowNotFound bool) (notFound bool, err error) {
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.cfg.MaxRetries), req.Context())

	var raw []byte
	op := func() error {
		clone := req.Clone(req.Context())
		resp, doErr := c.cfg.HTTPClient.Do(clone)
		if doErr != nil {
			return doErr
		}
		defer resp.Body.Close()

		if allowNotFound && resp.StatusCode == http.StatusNotFound {
			notFound = true
			return nil
		}
		if resp.StatusCode >= 500 {
			return fmt.Errorf("artifact registry returned %d", resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("artifact registry returned %d", resp.StatusCode))
		}

		buf := new(bytes.Buffer)
		if _, rerr := buf.ReadFrom(resp.Body); rerr != nil {
			return fmt.Errorf("read response: %w", rerr)
		}
		raw = buf.Bytes()
		return nil
	}

	if err := backoff.Retry(op, bo); err != nil {
		return false, err
	}
	if !notFound && out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return false, fmt.Errorf("decode response: %w", err)
		}
	}
	return notFound, nil
}

func (c *Client) doRaw(req *http.Request) ([]byte, error) {
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.cfg.MaxRetries), req.Context())

	var raw []byte
	op := func() error {
		clone := req.Clone(req.Context())
		resp, err := c.cfg.HTTPClient.Do(clone)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("artifact registry returned %d", resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("artifact registry returned %d", resp.StatusCode))
		}

		buf := new(bytes.Buffer)
		if _, rerr := buf.ReadFrom(resp.Body); rerr != nil {
			return fmt.Errorf("read response: %w", rerr)
		}
		raw = buf.Bytes()
		return nil
	}

	if err := backoff.Retry(op, bo); err != nil {
		return nil, err
	}
	return raw, nil
}
