package formulas

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Mean calculates the arithmetic mean; NaN for an empty slice.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return math.NaN()
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the sample (n-1) standard deviation; NaN below two observations.
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return math.NaN()
	}
	return stat.StdDev(data, nil)
}

// Sum adds all values.
func Sum(data []float64) float64 {
	total := 0.0
	for _, v := range data {
		total += v
	}
	return total
}

// Skew calculates the bias-corrected sample skewness.
// NaN below three observations, 0 for a constant series.
func Skew(data []float64) float64 {
	if len(data) < 3 {
		return math.NaN()
	}
	if stat.Variance(data, nil) == 0 {
		return 0
	}
	return stat.Skew(data, nil)
}

// ExKurtosis calculates the bias-corrected sample excess kurtosis.
// NaN below four observations, 0 for a constant series.
func ExKurtosis(data []float64) float64 {
	if len(data) < 4 {
		return math.NaN()
	}
	if stat.Variance(data, nil) == 0 {
		return 0
	}
	return stat.ExKurtosis(data, nil)
}

// Quantile returns the p-quantile using linear interpolation between the
// closest ranks: h = (n-1)*p, Q = x[floor(h)] + (h-floor(h))*(x[floor(h)+1]-x[floor(h)]).
//
// gonum's stat.Quantile only offers the empirical and p*n interpolation
// variants, neither of which matches this estimator.
func Quantile(data []float64, p float64) float64 {
	if len(data) == 0 || p < 0 || p > 1 || math.IsNaN(p) {
		return math.NaN()
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	h := float64(len(sorted)-1) * p
	lo := int(math.Floor(h))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// NormalQuantile returns the quantile of a normal distribution with the given
// mean and standard deviation. NaN when sigma is not strictly positive.
func NormalQuantile(p, mu, sigma float64) float64 {
	if !(sigma > 0) || !IsFinite(mu) || p <= 0 || p >= 1 {
		return math.NaN()
	}
	return distuv.Normal{Mu: mu, Sigma: sigma}.Quantile(p)
}

// Filter returns the values for which keep is true.
func Filter(data []float64, keep func(float64) bool) []float64 {
	out := make([]float64, 0, len(data))
	for _, v := range data {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
