package api

import (
	"net/http"
	"time"
)

const healthVersion = "1.0.0"

var startTime = time.Now()

// HealthCheck reports service liveness and dataset size.
//
//	GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "healthy",
		"version":  healthVersion,
		"uptime":   time.Since(startTime).Round(time.Second).String(),
		"accounts": h.engine.Dataset().Len(),
		"cache":    h.scoreCache != nil,
	})
}
