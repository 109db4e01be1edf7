package server

import (
	"net/http"

	"github.com/aristath/indicator-service/internal/transport"
)

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status string `json:"status"`
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	transport.Write(w, r, http.StatusOK, HealthResponse{Status: "ok"}, s.log)
}
