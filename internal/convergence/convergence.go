// Package convergence polls the discovery client until a newly registered
// instance reports healthy, or gives up.
package convergence

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pipestream/registryhub/internal/discovery"
	"github.com/pipestream/registryhub/internal/model"
)

// maxAttempts bounds the polling loop; linear backoff between attempts caps
// at 10s, so the worst case is roughly 69s wall clock.
const maxAttempts = 10

// NodeLister is the subset of the discovery client this package depends
// on.
type NodeLister interface {
	HealthyNodes(ctx context.Context, serviceName string) ([]discovery.HealthyNode, error)
}

// Waiter polls a NodeLister until a given service id shows up healthy.
type Waiter struct {
	nodes NodeLister
	log   *zap.Logger
	sleep func(time.Duration)
}

// New builds a Waiter over nodes.
func New(nodes NodeLister, log *zap.Logger) *Waiter {
	return &Waiter{nodes: nodes, log: log, sleep: time.Sleep}
}

// SetSleeper overrides the between-attempt delay function; tests use this
// to avoid real sleeps.
func (w *Waiter) SetSleeper(sleep func(time.Duration)) {
	w.sleep = sleep
}

// WaitForHealthy polls up to maxAttempts times for serviceID to appear
// among serviceName's healthy nodes, sleeping min(3+attempt, 10) seconds
// between attempts. A malformed serviceID returns false immediately.
func (w *Waiter) WaitForHealthy(ctx context.Context, serviceID string) bool {
	serviceName, ok := model.SplitServiceID(serviceID)
	if !ok {
		w.log.Error("malformed service id in health convergence", zap.String("serviceId", serviceID))
		return false
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		nodes, err := w.nodes.HealthyNodes(ctx, serviceName)
		if err != nil {
			w.log.Warn("health convergence query failed, retrying",
				zap.String("serviceId", serviceID), zap.Int("attempt", attempt), zap.Error(err))
		} else {
			for _, n := range nodes {
				if n.ServiceID == serviceID {
					return true
				}
			}
		}

		if attempt == maxAttempts {
			break
		}

		delay := attempt + 3
		if delay > 10 {
			delay = 10
		}

		select {
		case <-ctx.Done():
			return false
		default:
			w.sleep(time.Duration(delay) * time.Second)
		}
	}

	return false
}
