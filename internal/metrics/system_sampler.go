package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// cpuSampleWindow is how long each CPU reading measures.
const cpuSampleWindow = 200 * time.Millisecond

// HostSample is one CPU/memory reading.
type HostSample struct {
	CPUPercent    float64
	MemoryPercent float64
	SampledAt     time.Time
}

// SystemSampler periodically reads host CPU and memory utilisation, keeps the
// latest reading and mirrors it into the host gauges. It is run as a
// scheduler job.
type SystemSampler struct {
	mu     sync.RWMutex
	latest HostSample

	metrics *Metrics
	log     zerolog.Logger

	readCPU    func() (float64, error)
	readMemory func() (float64, error)
	now        func() time.Time
}

// NewSystemSampler creates a sampler backed by gopsutil.
func NewSystemSampler(m *Metrics, log zerolog.Logger) *SystemSampler {
	return &SystemSampler{
		metrics:    m,
		log:        log.With().Str("component", "system_sampler").Logger(),
		readCPU:    readCPUPercent,
		readMemory: readMemoryPercent,
		now:        time.Now,
	}
}

// Name implements scheduler.Job.
func (s *SystemSampler) Name() string {
	return "host_sampler"
}

// Run takes one sample. A failed reading keeps the previous value for that
// field and is reported after the other field has been updated.
func (s *SystemSampler) Run() error {
	s.mu.RLock()
	sample := s.latest
	s.mu.RUnlock()

	var firstErr error

	cpuPct, err := s.readCPU()
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		firstErr = fmt.Errorf("cpu: %w", err)
	} else {
		sample.CPUPercent = cpuPct
	}

	memPct, err := s.readMemory()
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to get memory statistics")
		if firstErr == nil {
			firstErr = fmt.Errorf("memory: %w", err)
		}
	} else {
		sample.MemoryPercent = memPct
	}

	sample.SampledAt = s.now()

	s.mu.Lock()
	s.latest = sample
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.HostCPUPercent.Set(sample.CPUPercent)
		s.metrics.HostMemoryPercent.Set(sample.MemoryPercent)
	}

	return firstErr
}

// Latest returns the most recent sample. SampledAt is zero before the first run.
func (s *SystemSampler) Latest() HostSample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

func readCPUPercent() (float64, error) {
	pct, err := cpu.Percent(cpuSampleWindow, false)
	if err != nil {
		return 0, err
	}
	if len(pct) == 0 {
		return 0, fmt.Errorf("no cpu readings")
	}
	return pct[0], nil
}

func readMemoryPercent() (float64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.UsedPercent, nil
}
