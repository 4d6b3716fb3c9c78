package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/ringclock/pkg/metrics"
)

// HealthHandler handles liveness and metrics requests.
type HealthHandler struct {
	frames FrameSource
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(frames FrameSource) *HealthHandler {
	return &HealthHandler{frames: frames}
}

type healthResponse struct {
	Status  string `json:"status"`
	Visible bool   `json:"visible"`
}

// HandleHealth handles GET /healthz requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Visible: h.frames.Latest().Visible})
}

// MetricsHandler serves the custom metrics registry.
func (h *HealthHandler) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})
}
