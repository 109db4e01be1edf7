package formulas

import "math"

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Sanitize converts a numeric series into a transport-safe series.
// Finite values are kept, NaN/±Inf become nil (JSON null).
// Length and order are preserved exactly.
func Sanitize(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i, v := range values {
		out[i] = SanitizeScalar(v)
	}
	return out
}

// SanitizeScalar returns a pointer to v when finite, nil otherwise.
func SanitizeScalar(v float64) *float64 {
	if !IsFinite(v) {
		return nil
	}
	value := v
	return &value
}

// DropNonFinite returns the finite values of data in their original order.
func DropNonFinite(data []float64) []float64 {
	out := make([]float64, 0, len(data))
	for _, v := range data {
		if IsFinite(v) {
			out = append(out, v)
		}
	}
	return out
}

// NaNSeries returns a series of length n filled with NaN.
func NaNSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
