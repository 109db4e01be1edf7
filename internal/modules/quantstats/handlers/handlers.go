// Package handlers provides HTTP handlers for portfolio statistics.
package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aristath/indicator-service/internal/domain"
	"github.com/aristath/indicator-service/internal/metrics"
	"github.com/aristath/indicator-service/internal/modules/quantstats"
	"github.com/aristath/indicator-service/internal/transport"
	"github.com/aristath/indicator-service/internal/utils"
)

// Handler handles statistics HTTP requests
type Handler struct {
	service      *quantstats.Service
	metrics      *metrics.Metrics
	maxBodyBytes int64
	log          zerolog.Logger
}

// NewHandler creates a new statistics handler
func NewHandler(service *quantstats.Service, m *metrics.Metrics, maxBodyBytes int64, log zerolog.Logger) *Handler {
	return &Handler{
		service:      service,
		metrics:      m,
		maxBodyBytes: maxBodyBytes,
		log:          log.With().Str("handler", "quantstats").Logger(),
	}
}

// MetricsResponse is the body of a successful POST /metrics/quantstats
type MetricsResponse struct {
	Metrics quantstats.Report `json:"metrics"`
}

// HandleQuantStats handles POST /metrics/quantstats
func (h *Handler) HandleQuantStats(w http.ResponseWriter, r *http.Request) {
	req := quantstats.DefaultRequest()
	if err := transport.Decode(w, r, &req, h.maxBodyBytes); err != nil {
		transport.WriteError(w, r, err, h.log)
		return
	}

	timer := utils.NewTimer("quantstats", h.log)
	analysis, err := h.service.Compute(req)
	elapsed := timer.StopWithContext(map[string]interface{}{
		"sample_size": analysis.SampleSize,
		"unavailable": len(analysis.Unavailable),
	})

	if h.metrics != nil {
		h.metrics.ObserveStats(outcome(err), analysis.SampleSize, analysis.Unavailable, elapsed)
	}
	if err != nil {
		transport.WriteError(w, r, err, h.log)
		return
	}

	transport.Write(w, r, http.StatusOK, MetricsResponse{Metrics: analysis.Report}, h.log)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case domain.IsClientError(err):
		return metrics.OutcomeClientError
	default:
		return metrics.OutcomeError
	}
}
