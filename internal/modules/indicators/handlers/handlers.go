// Package handlers provides HTTP handlers for indicator computation.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/indicator-service/internal/domain"
	"github.com/aristath/indicator-service/internal/metrics"
	"github.com/aristath/indicator-service/internal/modules/indicators"
	"github.com/aristath/indicator-service/internal/transport"
	"github.com/aristath/indicator-service/internal/utils"
)

// Handler handles indicator HTTP requests
type Handler struct {
	service      *indicators.Service
	metrics      *metrics.Metrics
	maxBodyBytes int64
	log          zerolog.Logger
}

// NewHandler creates a new indicator handler
func NewHandler(service *indicators.Service, m *metrics.Metrics, maxBodyBytes int64, log zerolog.Logger) *Handler {
	return &Handler{
		service:      service,
		metrics:      m,
		maxBodyBytes: maxBodyBytes,
		log:          log.With().Str("handler", "indicators").Logger(),
	}
}

// IndicatorResponse is the body of a successful POST /indicator
type IndicatorResponse struct {
	Values []*float64 `json:"values"`
}

// RSIRequest is the body of the legacy POST /rsi
type RSIRequest struct {
	Values transport.Floats `json:"values"`
	Period int              `json:"period"`
}

// RSIResponse is the body of a successful POST /rsi
type RSIResponse struct {
	RSI []*float64 `json:"rsi"`
}

// CatalogueResponse is the body of GET /indicators
type CatalogueResponse struct {
	Indicators map[string][]string `json:"indicators"`
}

// HandleIndicator handles POST /indicator
func (h *Handler) HandleIndicator(w http.ResponseWriter, r *http.Request) {
	var req indicators.Request
	if err := transport.Decode(w, r, &req, h.maxBodyBytes); err != nil {
		transport.WriteError(w, r, err, h.log)
		return
	}

	timer := utils.NewTimer("indicator", h.log)
	res, err := h.service.Compute(req)
	elapsed := timer.StopWithContext(map[string]interface{}{"indicator": res.Indicator, "shape": res.Shape.String()})

	shape := res.Shape.String()
	var malformed *domain.MalformedRequestError
	if errors.As(err, &malformed) {
		shape = "unknown"
	}

	h.observe(res.Indicator, shape, outcome(err), len(res.Values), elapsed)
	if err != nil {
		transport.WriteError(w, r, err, h.log.With().Str("indicator", res.Indicator).Logger())
		return
	}

	transport.Write(w, r, http.StatusOK, IndicatorResponse{Values: res.Values}, h.log)
}

// HandleRSI handles POST /rsi
func (h *Handler) HandleRSI(w http.ResponseWriter, r *http.Request) {
	req := RSIRequest{Period: 14}
	if err := transport.Decode(w, r, &req, h.maxBodyBytes); err != nil {
		transport.WriteError(w, r, err, h.log)
		return
	}

	timer := utils.NewTimer("rsi", h.log)
	values, err := h.service.RSI(req.Values, req.Period)
	elapsed := timer.Stop()

	h.observe("RSI", indicators.ShapeCloseOnly.String(), outcome(err), len(values), elapsed)
	if err != nil {
		transport.WriteError(w, r, err, h.log)
		return
	}

	transport.Write(w, r, http.StatusOK, RSIResponse{RSI: values}, h.log)
}

// HandleCatalogue handles GET /indicators
func (h *Handler) HandleCatalogue(w http.ResponseWriter, r *http.Request) {
	transport.Write(w, r, http.StatusOK, CatalogueResponse{Indicators: indicators.Catalogue()}, h.log)
}

func (h *Handler) observe(name, shape, outcome string, length int, elapsed time.Duration) {
	if h.metrics == nil {
		return
	}

	// Unknown names collapse into one label value
	if !indicators.Supported(name) {
		name = "unsupported"
	}
	h.metrics.ObserveIndicator(name, shape, outcome, length, elapsed)
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
