package health

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// HealthChecker is implemented by component-level checkers (store backends).
type HealthChecker interface {
	Name() string
	IsHealthy() bool
	Start(ctx context.Context, interval time.Duration)
}

// Report is a point-in-time view of service health.
type Report struct {
	Healthy    bool            `json:"healthy"`
	Components map[string]bool `json:"components"`
}

// ServiceHealthChecker aggregates component checkers into a single service health flag.
type ServiceHealthChecker struct {
	healthy atomic.Int32
	deps    []HealthChecker
	log     zerolog.Logger

	mu    sync.RWMutex
	state map[string]bool
}

func NewServiceHealthChecker(log zerolog.Logger, deps ...HealthChecker) *ServiceHealthChecker {
	h := &ServiceHealthChecker{deps: deps, log: log, state: make(map[string]bool, len(deps))}
	h.healthy.Store(0)
	return h
}

// IsHealthy returns cached service health.
func (h *ServiceHealthChecker) IsHealthy() bool { return h.healthy.Load() == 1 }

// Report returns the cached per-component state from the last evaluation.
func (h *ServiceHealthChecker) Report() Report {
	h.mu.RLock()
	defer h.mu.RUnlock()
	comps := make(map[string]bool, len(h.state))
	for k, v := range h.state {
		comps[k] = v
	}
	return Report{Healthy: h.IsHealthy(), Components: comps}
}

// Start periodically evaluates dependency health and updates the service flag.
func (h *ServiceHealthChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	h.evaluate()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.evaluate()
		}
	}
}

func (h *ServiceHealthChecker) evaluate() {
	all := true
	h.mu.Lock()
	for _, c := range h.deps {
		up := c.IsHealthy()
		if prev, seen := h.state[c.Name()]; !seen || prev != up {
			h.log.Debug().Str("component", c.Name()).Bool("healthy", up).Msg("component health changed")
		}
		h.state[c.Name()] = up
		all = all && up
	}
	h.mu.Unlock()

	next := int32(0)
	if all {
		next = 1
	}
	if h.healthy.Swap(next) != next {
		if all {
			h.log.Info().Msg("service health: UP")
		} else {
			h.log.Error().Stack().Msg("service health: DOWN")
		}
	}
}
