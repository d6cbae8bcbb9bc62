package handlers

import (
	"net/http"
	"strconv"

	"github.com/cordial-cms/cordial-cms/api"
	"github.com/cordial-cms/cordial-cms/models"
)

// defaultRecentTraces is how many traces the metrics endpoint returns without a limit
const defaultRecentTraces = 50

// Metrics serves the health and metrics endpoints
type Metrics struct {
	Collector *api.MetricsCollector
	Health    StatusSource
}

// HealthCheckHandler reports liveness and the last backend ping
func (h Metrics) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthCheckResponse{Alive: true}
	if h.Health != nil {
		resp.Backend = h.Health.Status()
	}
	api.WriteJSON(w, http.StatusOK, resp)
}

// MetricsHandler returns the request metrics summary
func (h Metrics) MetricsHandler(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentTraces
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	api.WriteJSON(w, http.StatusOK, h.Collector.GetSummary(limit))
}
