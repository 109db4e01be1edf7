package quantstats

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/indicator-service/internal/domain"
)

func TestPrepareReturns(t *testing.T) {
	tests := []struct {
		name    string
		returns []float64
		equity  []float64
		want    []float64
	}{
		{"returns used as is", []float64{0.01, -0.02}, nil, []float64{0.01, -0.02}},
		{"non-finite returns dropped", []float64{0.01, math.NaN(), math.Inf(1), -0.02}, nil, []float64{0.01, -0.02}},
		{"returns win over equity", []float64{0.01, 0.02}, []float64{100, 50, 25}, []float64{0.01, 0.02}},
		{"equity fallback", []float64{0.01}, []float64{100, 110, 99}, []float64{0.1, -0.1}},
		{"equity zero denominator dropped", nil, []float64{100, 0, 50, 55}, []float64{-1, 0.1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PrepareReturns(tt.returns, tt.equity)
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-12)
			}
		})
	}
}

func TestPrepareReturns_Insufficient(t *testing.T) {
	tests := []struct {
		name    string
		returns []float64
		equity  []float64
	}{
		{"nothing", nil, nil},
		{"one return", []float64{0.01}, nil},
		{"all non-finite", []float64{math.NaN(), math.Inf(-1)}, nil},
		{"two equity points", nil, []float64{100, 101}},
		{"equity with zeros", nil, []float64{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PrepareReturns(tt.returns, tt.equity)

			var insufficient *domain.InsufficientReturnsError
			require.ErrorAs(t, err, &insufficient)
			assert.True(t, domain.IsClientError(err))
		})
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSyntheticIndex(t *testing.T) {
	// Wednesday afternoon
	now := time.Date(2024, 5, 15, 13, 30, 0, 0, time.UTC)

	tests := []struct {
		freq Frequency
		n    int
		want []time.Time
	}{
		{Daily, 3, []time.Time{date(2024, 5, 13), date(2024, 5, 14), date(2024, 5, 15)}},
		{Weekly, 2, []time.Time{date(2024, 5, 5), date(2024, 5, 12)}},
		{Monthly, 3, []time.Time{date(2024, 2, 29), date(2024, 3, 31), date(2024, 4, 30)}},
		{Quarterly, 2, []time.Time{date(2023, 12, 31), date(2024, 3, 31)}},
		{Yearly, 2, []time.Time{date(2022, 12, 31), date(2023, 12, 31)}},
		{Frequency("unknown"), 1, []time.Time{date(2024, 5, 15)}},
	}

	for _, tt := range tests {
		t.Run(string(tt.freq), func(t *testing.T) {
			assert.Equal(t, tt.want, SyntheticIndex(tt.n, tt.freq, now))
		})
	}
}

func TestSyntheticIndex_OnPeriodEnd(t *testing.T) {
	now := time.Date(2024, 6, 30, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, []time.Time{date(2024, 5, 31), date(2024, 6, 30)}, SyntheticIndex(2, Monthly, now))
	assert.Equal(t, []time.Time{date(2024, 3, 31), date(2024, 6, 30)}, SyntheticIndex(2, Quarterly, now))

	// Sunday anchors on itself
	sunday := time.Date(2024, 5, 12, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, []time.Time{date(2024, 5, 5), date(2024, 5, 12)}, SyntheticIndex(2, Weekly, sunday))
}

func TestSyntheticIndex_StrictlyIncreasing(t *testing.T) {
	now := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)

	for _, freq := range []Frequency{Daily, Weekly, Monthly, Quarterly, Yearly} {
		dates := SyntheticIndex(40, freq, now)
		require.Len(t, dates, 40)
		for i := 1; i < len(dates); i++ {
			assert.True(t, dates[i].After(dates[i-1]), "%s at %d", freq, i)
		}
	}

	assert.Empty(t, SyntheticIndex(0, Daily, now))
}

func TestCalendarDays(t *testing.T) {
	assert.Equal(t, 366, calendarDays(date(2024, 1, 1), date(2025, 1, 1)))
	assert.Equal(t, 0, calendarDays(date(2024, 1, 1), date(2024, 1, 1)))
	assert.Equal(t, 365243, calendarDays(date(1024, 1, 1), date(2024, 1, 1)))
}
