package quantstats

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	testingpkg "github.com/aristath/indicator-service/internal/testing"
)

var alternating = testingpkg.NewReturnFixtures()

func dailySeries(r []float64) Series {
	return NewSeries(r, Daily, time.Date(2020, 1, 7, 0, 0, 0, 0, time.UTC))
}

func TestStats_AlternatingReturns(t *testing.T) {
	s := dailySeries(alternating)
	r := s.Returns

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"calmar", Calmar(s, 252), 133.11081401606052},
		{"omega", Omega(r), 1.68},
		{"tail ratio", TailRatio(r), 1.3701923076923077},
		{"common sense ratio", CommonSenseRatio(r), 2.301923076923077},
		{"value at risk", ValueAtRisk(r, 0.95), -0.030041009823918413},
		{"value at risk as percent", ValueAtRisk(r, 95), -0.030041009823918413},
		{"cvar", CVaR(r, 0.95), -0.030041009823918413},
		{"ulcer index", UlcerIndex(r), 0.012301761391497319},
		{"avg drawdown", AvgDrawdown(r), -0.01666666666666668},
		{"avg drawdown days", AvgDrawdownDays(s), 1},
		{"payoff ratio", PayoffRatio(r), 1.26},
		{"profit ratio", ProfitRatio(r), 0.945},
		{"gain to pain", GainToPainRatio(r), 0.68},
		{"skew", Skew(r), -0.20452807650678015},
		{"kurtosis", Kurtosis(r), -2.1053408765066397},
		{"win rate", WinRate(r), 4.0 / 7},
		{"loss rate", LossRate(r), 3.0 / 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.got, 1e-9)
		})
	}
}

func TestCalmar_ZeroDrawdownIsInfinite(t *testing.T) {
	r := make([]float64, 10)
	for i := range r {
		r[i] = 0.01
	}

	assert.True(t, math.IsInf(Calmar(dailySeries(r), 252), 1))
}

func TestCAGR_UsesCalendarSpan(t *testing.T) {
	s := Series{
		Returns: []float64{0.1, 0.1},
		Dates:   []time.Time{time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	// 365 days at 365 periods per year is exactly one year
	assert.InDelta(t, 0.21, CAGR(s, 365), 1e-12)
	assert.True(t, math.IsNaN(CAGR(Series{}, 252)))
}

func TestAvgDrawdownDays_MultiDayEpisode(t *testing.T) {
	// Under water on days 1..3, recovered on day 4
	s := dailySeries([]float64{0.05, -0.02, -0.01, 0.01, 0.05})

	assert.InDelta(t, 3.0, AvgDrawdownDays(s), 1e-12)

	weekly := NewSeries([]float64{0.05, -0.02, -0.01, 0.01, 0.05}, Weekly, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC))
	assert.InDelta(t, 15.0, AvgDrawdownDays(weekly), 1e-12)
}

func TestStats_Degenerate(t *testing.T) {
	gains := []float64{0.01, 0.02, 0.03}
	flat := []float64{0, 0, 0, 0}

	assert.True(t, math.IsNaN(Omega(gains)), "no losses")
	assert.True(t, math.IsInf(GainToPainRatio(gains), 1))
	assert.Equal(t, 0.0, AvgDrawdown(gains))
	assert.Equal(t, 0.0, AvgDrawdownDays(dailySeries(gains)))
	assert.Equal(t, 1.0, WinRate(gains))
	assert.Equal(t, 0.0, LossRate(gains))

	assert.Equal(t, 0.0, WinRate(flat))
	assert.Equal(t, 0.0, LossRate(flat))
	assert.True(t, math.IsNaN(ValueAtRisk(flat, 0.95)), "zero volatility")
	assert.True(t, math.IsNaN(CVaR(flat, 0.95)))
	assert.Equal(t, 0.0, Skew(flat))
	assert.True(t, math.IsNaN(Kurtosis([]float64{0.1, 0.2})))
	assert.True(t, math.IsNaN(ValueAtRisk(gains, 1)), "confidence of 1 has no finite quantile")
}
