// Package discovery wraps the external discovery agent's HTTP API
// (register, deregister, health queries, catalog) behind a small, stateless
// client. Register and Deregister log failures and surface them as a boolean
// rather than an error, mirroring the agent's own "best effort" semantics;
// the health and catalog queries return errors.
package discovery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/pipestream/registryhub/pkg/logger"
)

// Config holds the discovery agent's reachability settings.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	MaxRetries uint64
}

// DefaultConfig returns sane defaults for a local agent.
func DefaultConfig() Config {
	return Config{
		BaseURL:    "http://127.0.0.1:8500",
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
		MaxRetries: 3,
	}
}

// Client is a stateless wrapper over the discovery agent's HTTP API. One
// instance is shared across the process.
type Client struct {
	cfg Config
	log logger.Logger
}

// New builds a Client from cfg.
func New(cfg Config, log logger.Logger) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 5 * time.Second}
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	return &Client{cfg: cfg, log: log}
}

// HealthyNode is one entry returned by HealthyNodes.
type HealthyNode struct {
	ServiceID string
	Name      string
	Address   string
	Port      int
	Tags      []string
	Meta      map[string]string
}

type registerPayload struct {
	ID      string            `json:"ID"`
	Name    string            `json:"Name"`
	Address string            `json:"Address"`
	Port    int               `json:"Port"`
	Tags    []string          `json:"Tags"`
	Meta    map[string]string `json:"Meta"`
	Check   checkPayload      `json:"Check"`
}

type checkPayload struct {
	GRPC                           string `json:"GRPC"`
	Interval                       string `json:"Interval"`
	DeregisterCriticalServiceAfter string `json:"DeregisterCriticalServiceAfter"`
}

// Register registers a service instance and configures a gRPC health check
// against host:port. capabilities are folded into tags as "capability:<name>"
// entries; version is injected into metadata under "version". Returns false
// (with the failure logged) rather than an error.
func (c *Client) Register(ctx context.Context, serviceID, serviceName, host string, port int, tags []string, metadata map[string]string, capabilities []string, version string) bool {
	allTags := make([]string, 0, len(tags)+len(capabilities))
	allTags = append(allTags, tags...)
	for _, cap := range capabilities {
		allTags = append(allTags, "capability:"+cap)
	}

	meta := make(map[string]string, len(metadata)+1)
	for k, v := range metadata {
		meta[k] = v
	}
	meta["version"] = version

	payload := registerPayload{
		ID:      serviceID,
		Name:    serviceName,
		Address: host,
		Port:    port,
		Tags:    allTags,
		Meta:    meta,
		Check: checkPayload{
			GRPC:                           host + ":" + strconv.Itoa(port),
			Interval:                       "10s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}

	if err := c.doJSON(ctx, http.MethodPut, "/v1/agent/service/register", payload, nil); err != nil {
		c.log.Error("discovery register failed", zap.String("serviceId", serviceID), zap.Error(err))
		return false
	}
	return true
}

// Deregister removes a service instance by id.
func (c *Client) Deregister(ctx context.Context, serviceID string) bool {
	path := "/v1/agent/service/deregister/" + url.PathEscape(serviceID)
	if err := c.doJSON(ctx, http.MethodPut, path, nil, nil); err != nil {
		c.log.Error("discovery deregister failed", zap.String("serviceId", serviceID), zap.Error(err))
		return false
	}
	return true
}

type healthEntry struct {
	Service struct {
		ID      string            `json:"ID"`
		Service string            `json:"Service"`
		Address string            `json:"Address"`
		Port    int               `json:"Port"`
		Tags    []string          `json:"Tags"`
		Meta    map[string]string `json:"Meta"`
	} `json:"Service"`
}

// HealthyNodes returns only the instances of serviceName whose health check
// is currently passing.
func (c *Client) HealthyNodes(ctx context.Context, serviceName string) ([]HealthyNode, error) {
	path := "/v1/health/service/" + url.PathEscape(serviceName) + "?passing=true"
	var entries []healthEntry
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return nil, fmt.Errorf("query healthy nodes for %q: %w", serviceName, err)
	}

	nodes := make([]HealthyNode, 0, len(entries))
	for _, e := range entries {
		nodes = append(nodes, HealthyNode{
			ServiceID: e.Service.ID,
			Name:      e.Service.Service,
			Address:   e.Service.Address,
			Port:      e.Service.Port,
			Tags:      e.Service.Tags,
			Meta:      e.Service.Meta,
		})
	}
	return nodes, nil
}

// AgentInfo probes the agent for reachability, used by the readiness
// aggregate.
func (c *Client) AgentInfo(ctx context.Context) error {
	if err := c.doJSON(ctx, http.MethodGet, "/v1/agent/self", nil, nil); err != nil {
		return fmt.Errorf("discovery agent unreachable: %w", err)
	}
	return nil
}

// CatalogServices returns the set of service names known to the agent.
func (c *Client) CatalogServices(ctx context.Context) (map[string]struct{}, error) {
	var raw map[string][]string
	if err := c.doJSON(ctx, http.MethodGet, "/v1/catalog/services", nil, &raw); err != nil {
		return nil, fmt.Errorf("query catalog services: %w", err)
	}
	names := make(map[string]struct{}, len(raw))
	for name := range raw {
		names[name] = struct{}{}
	}
	return names, nil
}

// doJSON performs an HTTP round trip with a bounded exponential backoff,
// encoding body (if non-nil) as a JSON request body and decoding the
// response into out (if non-nil).
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var bodyBytes []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		bodyBytes = b
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.cfg.MaxRetries), ctx)

	var respBytes []byte
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, bytes.NewReader(bodyBytes))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("build request: %w", err))
		}
		if bodyBytes != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.cfg.HTTPClient.Do(req)
		if err != nil {
			return fmt.Errorf("do request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("discovery agent returned %d", resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("discovery agent returned %d", resp.StatusCode))
		}

		buf := new(bytes.Buffer)
		if _, err := buf.ReadFrom(resp.Body); err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		respBytes = buf.Bytes()
		return nil
	}

	if err := backoff.Retry(op, bo); err != nil {
		return err
	}
	if out != nil && len(respBytes) > 0 {
		if err := json.Unmarshal(respBytes, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
