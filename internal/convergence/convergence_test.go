package convergence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/pipestream/registryhub/internal/discovery"
)

type stubLister struct {
	calls     int
	responses []func() ([]discovery.HealthyNode, error)
}

func (s *stubLister) HealthyNodes(ctx context.Context, serviceName string) ([]discovery.HealthyNode, error) {
	i := s.calls
	s.calls++
	if i >= len(s.responses) {
		return nil, nil
	}
	return s.responses[i]()
}

func noSleep(time.Duration) {}

func TestWaitForHealthySucceedsFirstTry(t *testing.T) {
	lister := &stubLister{responses: []func() ([]discovery.HealthyNode, error){
		func() ([]discovery.HealthyNode, error) {
			return []discovery.HealthyNode{{ServiceID: "svc-localhost-8080"}}, nil
		},
	}}
	w := New(lister, zap.NewNop())
	w.sleep = noSleep

	assert.True(t, w.WaitForHealthy(context.Background(), "svc-localhost-8080"))
	assert.Equal(t, 1, lister.calls)
}

func TestWaitForHealthyRetriesThenSucceeds(t *testing.T) {
	lister := &stubLister{responses: []func() ([]discovery.HealthyNode, error){
		func() ([]discovery.HealthyNode, error) { return nil, errors.New("transient") },
		func() ([]discovery.HealthyNode, error) { return []discovery.HealthyNode{{ServiceID: "other"}}, nil },
		func() ([]discovery.HealthyNode, error) {
			return []discovery.HealthyNode{{ServiceID: "svc-localhost-8080"}}, nil
		},
	}}
	w := New(lister, zap.NewNop())
	w.sleep = noSleep

	assert.True(t, w.WaitForHealthy(context.Background(), "svc-localhost-8080"))
	assert.Equal(t, 3, lister.calls)
}

func TestWaitForHealthyExhausts(t *testing.T) {
	lister := &stubLister{}
	w := New(lister, zap.NewNop())
	w.sleep = noSleep

	assert.False(t, w.WaitForHealthy(context.Background(), "svc-localhost-8080"))
	assert.Equal(t, maxAttempts, lister.calls)
}

func TestWaitForHealthyMalformedIDNoDashes(t *testing.T) {
	lister := &stubLister{}
	w := New(lister, zap.NewNop())

	assert.False(t, w.WaitForHealthy(context.Background(), "nodashesatall"))
	assert.Equal(t, 0, lister.calls)
}
