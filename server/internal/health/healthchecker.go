// Package health aggregates component health into one service verdict.
package health

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// HealthChecker is implemented by component-level checkers such as the store.
type HealthChecker interface {
	Name() string
	IsHealthy() bool
	Start(ctx context.Context, interval time.Duration)
}

// ServiceHealthChecker polls its components and caches which of them are failing.
// The service is healthy once every component is; it starts unhealthy.
type ServiceHealthChecker struct {
	mu      sync.RWMutex
	failing []string
	checked bool

	deps []HealthChecker
	log  zerolog.Logger
}

func NewServiceHealthChecker(log zerolog.Logger, deps ...HealthChecker) *ServiceHealthChecker {
	return &ServiceHealthChecker{deps: deps, log: log}
}

// IsHealthy returns cached service health.
func (h *ServiceHealthChecker) IsHealthy() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.checked && len(h.failing) == 0
}

// Failing returns the names of unhealthy components, sorted.
func (h *ServiceHealthChecker) Failing() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]string(nil), h.failing...)
}

// Start periodically evaluates dependency health until ctx is done.
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
	var failing []string
	for _, c := range h.deps {
		if !c.IsHealthy() {
			failing = append(failing, c.Name())
		}
	}
	sort.Strings(failing)

	h.mu.Lock()
	wasHealthy := h.checked && len(h.failing) == 0
	prev := strings.Join(h.failing, ",")
	h.failing = failing
	h.checked = true
	h.mu.Unlock()

	switch {
	case len(failing) == 0 && !wasHealthy:
		h.log.Info().Msg("service health: UP")
	case len(failing) > 0 && strings.Join(failing, ",") != prev:
		h.log.Error().Strs("failing", failing).Msg("service health: DOWN")
	}
}
