package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all statistics routes.
// Registered as a flat path so it can sit next to the Prometheus GET /metrics.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/metrics/quantstats", h.HandleQuantStats)
}
