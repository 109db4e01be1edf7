package testing

import (
	"sync"
	"time"

	"github.com/aristath/indicator-service/internal/metrics"
)

// MockHostSampler is a mock implementation of a host sampler for testing
type MockHostSampler struct {
	mu     sync.RWMutex
	sample metrics.HostSample
}

// NewMockHostSampler creates a mock sampler with no reading yet
func NewMockHostSampler() *MockHostSampler {
	return &MockHostSampler{}
}

// SetSample records the reading Latest will return
func (m *MockHostSampler) SetSample(cpuPercent, memoryPercent float64, sampledAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sample = metrics.HostSample{
		CPUPercent:    cpuPercent,
		MemoryPercent: memoryPercent,
		SampledAt:     sampledAt,
	}
}

// Latest returns the recorded reading
func (m *MockHostSampler) Latest() metrics.HostSample {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sample
}
