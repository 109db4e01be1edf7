package server

import (
	"net/http"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/indicator-service/internal/metrics"
	"github.com/aristath/indicator-service/internal/transport"
)

// HostSampler provides the latest host reading
type HostSampler interface {
	Latest() metrics.HostSample
}

// SystemHandlers serves process and host status
type SystemHandlers struct {
	sampler    HostSampler
	instanceID string
	startedAt  time.Time
	now        func() time.Time
	log        zerolog.Logger
}

// NewSystemHandlers creates system handlers. The instance id is fixed for the process lifetime.
func NewSystemHandlers(sampler HostSampler, log zerolog.Logger) *SystemHandlers {
	return &SystemHandlers{
		sampler:    sampler,
		instanceID: uuid.NewString(),
		startedAt:  time.Now(),
		now:        time.Now,
		log:        log.With().Str("component", "system_handlers").Logger(),
	}
}

// SystemStatusResponse represents system status
type SystemStatusResponse struct {
	Status        string     `json:"status"`
	InstanceID    string     `json:"instance_id"`
	UptimeSeconds float64    `json:"uptime_seconds"`
	CPUPercent    float64    `json:"cpu_percent"`
	MemoryPercent float64    `json:"memory_percent"`
	GoRoutines    int        `json:"go_routines"`
	SampledAt     *time.Time `json:"sampled_at"` // null until the first host sample
}

// HandleSystemStatus returns process and host status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting system status")

	response := SystemStatusResponse{
		Status:        "ok",
		InstanceID:    h.instanceID,
		UptimeSeconds: h.now().Sub(h.startedAt).Seconds(),
		GoRoutines:    runtime.NumGoroutine(),
	}

	if h.sampler != nil {
		sample := h.sampler.Latest()
		response.CPUPercent = sample.CPUPercent
		response.MemoryPercent = sample.MemoryPercent
		if !sample.SampledAt.IsZero() {
			sampledAt := sample.SampledAt.UTC()
			response.SampledAt = &sampledAt
		}
	}

	transport.Write(w, r, http.StatusOK, response, h.log)
}
