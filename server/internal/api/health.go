package api

import (
	"context"
	"net/http"
	"time"

	respond "github.com/kachalmers/tuiter/server/internal/api/respond"
	"github.com/kachalmers/tuiter/server/internal/store"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	store   store.Store
	monitor Monitor
}

// Monitor is a cached health verdict, typically *health.ServiceHealthChecker.
type Monitor interface {
	IsHealthy() bool
	Failing() []string
}

// NewHealthHandler creates a new health handler. With a non-nil monitor its
// cached verdict is reported; otherwise every request pings the store.
func NewHealthHandler(s store.Store, monitor Monitor) *HealthHandler {
	return &HealthHandler{store: s, monitor: monitor}
}

// CheckHealth handles GET /api/health.
// Returns 200 {"status":"UP"} when healthy, 503 {"status":"DOWN"} otherwise.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	if h.monitor != nil {
		if !h.monitor.IsHealthy() {
			respond.WriteJSON(w, http.StatusServiceUnavailable, map[string]any{
				"status":  "DOWN",
				"failing": h.monitor.Failing(),
			})
			return
		}
		respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "UP"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		respond.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "DOWN",
			"error":  err.Error(),
		})
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "UP"})
}
