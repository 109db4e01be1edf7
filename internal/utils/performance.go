package utils

import (
	"time"

	"github.com/rs/zerolog"
)

// SlowComputeThreshold is the duration above which a computation is logged at warn level.
const SlowComputeThreshold = time.Second

// Timer is a simple performance timer for measuring operation duration
type Timer struct {
	start time.Time
	name  string
	log   zerolog.Logger
	now   func() time.Time
}

// NewTimer creates a new timer with the given name
func NewTimer(name string, log zerolog.Logger) *Timer {
	return &Timer{
		start: time.Now(),
		name:  name,
		log:   log,
		now:   time.Now,
	}
}

// Stop logs the duration at debug level, or warn above SlowComputeThreshold, and returns it.
func (t *Timer) Stop() time.Duration {
	return t.StopWithContext(nil)
}

// StopWithContext stops the timer and logs with additional context
func (t *Timer) StopWithContext(context map[string]interface{}) time.Duration {
	duration := t.now().Sub(t.start)

	event := t.log.Debug()
	if duration > SlowComputeThreshold {
		event = t.log.Warn()
	}

	event = event.
		Str("operation", t.name).
		Dur("duration_ms", duration)
	for key, value := range context {
		switch v := value.(type) {
		case string:
			event = event.Str(key, v)
		case int:
			event = event.Int(key, v)
		case float64:
			event = event.Float64(key, v)
		case bool:
			event = event.Bool(key, v)
		default:
			event = event.Interface(key, v)
		}
	}

	if duration > SlowComputeThreshold {
		event.Msg("Slow operation detected")
	} else {
		event.Msg("Performance measurement")
	}

	return duration
}
