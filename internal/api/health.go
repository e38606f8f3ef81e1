package api

import (
	"net/http"
	"time"

	respond "github.com/tradejournal/tradejournal-server/internal/api/respond"
	"github.com/tradejournal/tradejournal-server/internal/health"
)

const (
	apiTitle   = "TradeJournal API"
	apiVersion = "1.0.0"
)

// HealthReporter is satisfied by *health.ServiceHealthChecker.
type HealthReporter interface {
	Report() health.Report
}

type alwaysHealthy struct{}

func (alwaysHealthy) Report() health.Report { return health.Report{Healthy: true} }

// HealthHandler handles the unauthenticated liveness endpoints.
type HealthHandler struct {
	reporter HealthReporter
}

// NewHealthHandler reports through r; nil means always healthy.
func NewHealthHandler(r HealthReporter) *HealthHandler {
	if r == nil {
		r = alwaysHealthy{}
	}
	return &HealthHandler{reporter: r}
}

// Root handles GET /
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]string{
		"message": apiTitle + " is running",
		"version": apiVersion,
	})
}

// CheckHealth handles GET /health
// Always returns 200; body reports healthy/unhealthy. 500 indicates handler failure only.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	rep := h.reporter.Report()
	status := "unhealthy"
	if rep.Healthy {
		status = "healthy"
	}
	response := map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
	}
	if len(rep.Components) > 0 {
		response["components"] = rep.Components
	}
	respond.WriteJSON(w, http.StatusOK, response)
}
