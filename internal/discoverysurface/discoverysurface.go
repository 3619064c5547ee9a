// Package discoverysurface answers list/get/resolve/watch queries by
// fanning out over the discovery client, bounded by a worker pool so a
// large catalog never opens one outbound call per name unchecked.
package discoverysurface

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pipestream/registryhub/api/registryv1"
	"github.com/pipestream/registryhub/internal/discovery"
	"github.com/pipestream/registryhub/internal/model"
	"github.com/pipestream/registryhub/internal/schema"
	pkgerrors "github.com/pipestream/registryhub/pkg/errors"
)

// maxConcurrentLookups bounds the number of outbound healthyNodes calls in
// flight during a single listServices/listModules fan-out.
const maxConcurrentLookups = 8

// watchInterval is how often an active watch stream re-snapshots.
const watchInterval = 2 * time.Second

const capabilityPrefix = "capability:"
const moduleTag = "module"

// Discoverer is the subset of the discovery client this package depends
// on.
type Discoverer interface {
	CatalogServices(ctx context.Context) (map[string]struct{}, error)
	HealthyNodes(ctx context.Context, serviceName string) ([]discovery.HealthyNode, error)
}

// Service answers the discovery surface's list/get/resolve/watch queries.
type Service struct {
	discovery Discoverer
	log       *zap.Logger
}

// New builds a Service over a Discoverer.
func New(discovery Discoverer, log *zap.Logger) *Service {
	return &Service{discovery: discovery, log: log}
}

// entry is the common shape snapshot*() works with before splitting into
// ServiceDetails or ModuleDetails.
type entry struct {
	node discovery.HealthyNode
}

func (e entry) isModule() bool {
	for _, t := range e.node.Tags {
		if t == moduleTag {
			return true
		}
	}
	return false
}

func (e entry) capabilities() []string {
	var caps []string
	for _, t := range e.node.Tags {
		if strings.HasPrefix(t, capabilityPrefix) {
			caps = append(caps, strings.TrimPrefix(t, capabilityPrefix))
		}
	}
	return caps
}

func (e entry) plainTags() []string {
	var tags []string
	for _, t := range e.node.Tags {
		if !strings.HasPrefix(t, capabilityPrefix) {
			tags = append(tags, t)
		}
	}
	return tags
}

// snapshot fans out healthyNodes over every cataloged name, bounded by
// maxConcurrentLookups. A per-name failure degrades to "no entries for
// that name" rather than failing the whole snapshot; a catalog failure
// returns an empty snapshot.
func (s *Service) snapshot(ctx context.Context) []entry {
	names, err := s.discovery.CatalogServices(ctx)
	if err != nil {
		s.log.Warn("catalog services lookup failed, returning empty snapshot", zap.Error(err))
		return nil
	}

	var (
		mu      sync.Mutex
		entries []entry
	)

	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, maxConcurrentLookups)

	for name := range names {
		name := name
		g.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()

			nodes, err := s.discovery.HealthyNodes(gctx, name)
			if err != nil {
				s.log.Warn("healthy nodes lookup failed for name, skipping", zap.String("name", name), zap.Error(err))
				return nil
			}

			mu.Lock()
			for _, n := range nodes {
				entries = append(entries, entry{node: n})
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return entries
}

// ListServices enumerates all healthy, non-module entries.
func (s *Service) ListServices(ctx context.Context) *registryv1.ServiceListResponse {
	asOf := time.Now()
	var services []registryv1.ServiceDetails
	for _, e := range s.snapshot(ctx) {
		if e.isModule() {
			continue
		}
		services = append(services, toServiceDetails(e))
	}
	return &registryv1.ServiceListResponse{Services: services, AsOf: asOf, TotalCount: int32(len(services))}
}

// ListModules enumerates all healthy, module-tagged entries.
func (s *Service) ListModules(ctx context.Context) *registryv1.ModuleListResponse {
	asOf := time.Now()
	var modules []registryv1.ModuleDetails
	for _, e := range s.snapshot(ctx) {
		if !e.isModule() {
			continue
		}
		modules = append(modules, toModuleDetails(e))
	}
	return &registryv1.ModuleListResponse{Modules: modules, AsOf: asOf, TotalCount: int32(len(modules))}
}

// GetServiceByName returns the first matching non-module entry for name.
func (s *Service) GetServiceByName(ctx context.Context, name string) (*registryv1.ServiceDetails, error) {
	for _, e := range s.snapshot(ctx) {
		if !e.isModule() && e.node.Name == name {
			d := toServiceDetails(e)
			return &d, nil
		}
	}
	return nil, pkgerrors.ErrNotFound
}

// GetModuleByName returns the first matching module-tagged entry for
// name.
func (s *Service) GetModuleByName(ctx context.Context, name string) (*registryv1.ModuleDetails, error) {
	for _, e := range s.snapshot(ctx) {
		if e.isModule() && e.node.Name == name {
			d := toModuleDetails(e)
			return &d, nil
		}
	}
	return nil, pkgerrors.ErrNotFound
}

// GetServiceByID extracts the service name from id, queries its healthy
// nodes, and matches by exact id.
func (s *Service) GetServiceByID(ctx context.Context, id string) (*registryv1.ServiceDetails, error) {
	name, ok := model.SplitServiceID(id)
	if !ok {
		return nil, pkgerrors.ErrMalformedID
	}
	nodes, err := s.discovery.HealthyNodes(ctx, name)
	if err != nil {
		return nil, pkgerrors.ErrNotFound
	}
	for _, n := range nodes {
		if n.ServiceID == id {
			d := toServiceDetails(entry{node: n})
			return &d, nil
		}
	}
	return nil, pkgerrors.ErrNotFound
}

// GetModuleByID mirrors GetServiceByID for module-tagged entries.
func (s *Service) GetModuleByID(ctx context.Context, id string) (*registryv1.ModuleDetails, error) {
	name, ok := model.SplitServiceID(id)
	if !ok {
		return nil, pkgerrors.ErrMalformedID
	}
	nodes, err := s.discovery.HealthyNodes(ctx, name)
	if err != nil {
		return nil, pkgerrors.ErrNotFound
	}
	for _, n := range nodes {
		if n.ServiceID == id {
			d := toModuleDetails(entry{node: n})
			return &d, nil
		}
	}
	return nil, pkgerrors.ErrNotFound
}

// Locate implements schema.ModuleLocator: it resolves a module's current
// address from its first healthy node, for the schema lookup's direct
// module-call fallback.
func (s *Service) Locate(ctx context.Context, moduleName string) (schema.ModuleLocation, bool, error) {
	nodes, err := s.discovery.HealthyNodes(ctx, moduleName)
	if err != nil {
		return schema.ModuleLocation{}, false, err
	}
	if len(nodes) == 0 {
		return schema.ModuleLocation{}, false, nil
	}
	return schema.ModuleLocation{Host: nodes[0].Address, Port: nodes[0].Port}, true, nil
}

// ResolveService selects one healthy instance of serviceName matching the
// request's tag/capability requirements and locality preference.
func (s *Service) ResolveService(ctx context.Context, req *registryv1.ServiceResolveRequest) *registryv1.ServiceResolveResponse {
	nodes, err := s.discovery.HealthyNodes(ctx, req.ServiceName)
	if err != nil || len(nodes) == 0 {
		return &registryv1.ServiceResolveResponse{Found: false, SelectionReason: "No healthy instances found", ResolvedAt: time.Now()}
	}

	total := int32(len(nodes))
	var candidates []discovery.HealthyNode
	for _, n := range nodes {
		e := entry{node: n}
		if !containsAll(e.plainTags(), req.RequiredTags) {
			continue
		}
		if !containsAll(e.capabilities(), req.RequiredCapabilities) {
			continue
		}
		candidates = append(candidates, n)
	}

	if len(candidates) == 0 {
		return &registryv1.ServiceResolveResponse{
			Found: false, TotalInstances: total, SelectionReason: "No instance matched required tags/capabilities", ResolvedAt: time.Now(),
		}
	}

	selected := candidates[0]
	reason := "Selected first available healthy instance"
	if req.PreferLocal {
		for _, n := range candidates {
			if n.Address == "localhost" || n.Address == "127.0.0.1" {
				selected = n
				reason = "Selected local instance as requested"
				break
			}
		}
	}

	e := entry{node: selected}
	return &registryv1.ServiceResolveResponse{
		Found:            true,
		Host:             selected.Address,
		Port:             int32(selected.Port),
		ServiceID:        selected.ServiceID,
		Version:          selected.Meta["version"],
		Metadata:         selected.Meta,
		Tags:             e.plainTags(),
		Capabilities:     e.capabilities(),
		TotalInstances:   total,
		HealthyInstances: int32(len(candidates)),
		SelectionReason:  reason,
		ResolvedAt:       time.Now(),
	}
}

// containsAll reports whether every element of required is present in
// have.
func containsAll(have, required []string) bool {
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[h] = struct{}{}
	}
	for _, r := range required {
		if _, ok := set[r]; !ok {
			return false
		}
	}
	return true
}

func toServiceDetails(e entry) registryv1.ServiceDetails {
	return registryv1.ServiceDetails{
		ServiceID: e.node.ServiceID,
		Name:      e.node.Name,
		Host:      e.node.Address,
		Port:      int32(e.node.Port),
		Version:   e.node.Meta["version"],
		Tags:      e.plainTags(),
		Metadata:  e.node.Meta,
		Healthy:   true,
	}
}

// WatchServices streams one ServiceDetails message per entry in an
// immediate snapshot, then re-snapshots every watchInterval until the
// stream's context is cancelled. It never terminates on its own.
func (s *Service) WatchServices(req *registryv1.WatchRequest, stream registryv1.RegistryService_WatchServicesServer) error {
	ctx := stream.Context()
	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	if err := s.sendServiceSnapshot(ctx, stream); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.sendServiceSnapshot(ctx, stream); err != nil {
				return err
			}
		}
	}
}

// WatchModules mirrors WatchServices for module-tagged entries.
func (s *Service) WatchModules(req *registryv1.WatchRequest, stream registryv1.RegistryService_WatchModulesServer) error {
	ctx := stream.Context()
	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	if err := s.sendModuleSnapshot(ctx, stream); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.sendModuleSnapshot(ctx, stream); err != nil {
				return err
			}
		}
	}
}

func (s *Service) sendServiceSnapshot(ctx context.Context, stream registryv1.RegistryService_WatchServicesServer) error {
	resp := s.ListServices(ctx)
	for i := range resp.Services {
		if err := stream.Send(&resp.Services[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) sendModuleSnapshot(ctx context.Context, stream registryv1.RegistryService_WatchModulesServer) error {
	resp := s.ListModules(ctx)
	for i := range resp.Modules {
		if err := stream.Send(&resp.Modules[i]); err != nil {
			return err
		}
	}
	return nil
}

func toModuleDetails(e entry) registryv1.ModuleDetails {
	return registryv1.ModuleDetails{
		ServiceID:    e.node.ServiceID,
		Name:         e.node.Name,
		Host:         e.node.Address,
		Port:         int32(e.node.Port),
		Version:      e.node.Meta["version"],
		Tags:         e.plainTags(),
		Capabilities: e.capabilities(),
		Metadata:     e.node.Meta,
	}
}
