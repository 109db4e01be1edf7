// Package testing provides deterministic series fixtures and mocks shared by tests.
package testing

import (
	"math"

	"github.com/rs/zerolog"
)

// NewPriceFixtures returns n positive prices with a drifting oscillation,
// enough structure for every indicator to produce non-trivial values.
func NewPriceFixtures(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + 10*math.Sin(float64(i)/3) + 0.5*float64(i)
	}
	return out
}

// NewHLCFixtures returns high/low/close arrays built around NewPriceFixtures.
// high > close > low holds for every bar.
func NewHLCFixtures(n int) (high, low, close []float64) {
	close = NewPriceFixtures(n)
	high = make([]float64, n)
	low = make([]float64, n)
	for i, c := range close {
		high[i] = c + 1 + 0.1*float64(i%3)
		low[i] = c - 1 - 0.1*float64(i%4)
	}
	return high, low, close
}

// NewVolumeFixtures returns n positive volumes.
func NewVolumeFixtures(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1000 + float64((i*37)%200)
	}
	return out
}

// NewReturnFixtures returns seven alternating periodic returns
// (four gains, three losses).
func NewReturnFixtures() []float64 {
	return []float64{0.012, -0.018, 0.025, -0.01, 0.017, -0.022, 0.03}
}

// NewEquityFixtures returns an eight point equity curve.
func NewEquityFixtures() []float64 {
	return []float64{100, 103, 101, 105, 108, 104, 109, 107}
}

// SilentLogger returns a logger that discards everything.
func SilentLogger() zerolog.Logger {
	return zerolog.New(nil).Level(zerolog.Disabled)
}
