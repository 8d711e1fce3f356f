package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

// HealthHandler provides health check endpoint
type HealthHandler struct {
	upstreams map[string]bool
	logger    *slog.Logger
}

// NewHealthHandler creates a new health handler.
// upstreams maps each proxied API to whether its credentials are configured.
func NewHealthHandler(upstreams map[string]bool, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		upstreams: upstreams,
		logger:    logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status     string          `json:"status"`
	Timestamp  time.Time       `json:"timestamp"`
	Version    string          `json:"version"`
	Configured map[string]bool `json:"configured"`
}

// ServeHTTP handles health check requests.
// Missing credentials degrade the status but still answer 200.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	for _, ok := range h.upstreams {
		if !ok {
			status = "degraded"
			break
		}
	}

	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:     status,
		Timestamp:  time.Now().UTC(),
		Version:    "1.0.0",
		Configured: h.upstreams,
	}, h.logger)
}
