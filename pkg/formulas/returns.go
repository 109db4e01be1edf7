package formulas

import "math"

// SimpleReturns converts prices to position-preserving simple returns.
// Returns[j] = Price[j+1]/Price[j] - 1, for j = 0..n-2.
//
// A zero or non-finite denominator yields NaN at that position so callers
// that depend on index alignment keep it.
func SimpleReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return []float64{}
	}

	returns := make([]float64, len(prices)-1)
	for j := 0; j < len(prices)-1; j++ {
		prev := prices[j]
		if prev == 0 || !IsFinite(prev) {
			returns[j] = math.NaN()
			continue
		}
		returns[j] = prices[j+1]/prev - 1
	}

	return returns
}

// EquityToReturns derives a clean return series from an equity curve.
// Non-finite equity points are removed first; observations with a zero
// denominator, or a non-finite result, are then dropped. Order is preserved.
func EquityToReturns(equity []float64) []float64 {
	return DropNonFinite(SimpleReturns(DropNonFinite(equity)))
}

// AnnualToPeriodicRate converts an annual rate to a per-period rate using
// compound conversion: (1 + annual)^(1/periods) - 1.
//
// Non-finite or zero rates convert to 0; non-positive periods are treated as 1.
func AnnualToPeriodicRate(annual float64, periods int) float64 {
	if !IsFinite(annual) || annual == 0 {
		return 0
	}
	if periods < 1 {
		periods = 1
	}
	return math.Pow(1+annual, 1/float64(periods)) - 1
}

// Compound returns the total compounded return: (1+r1)*(1+r2)*...*(1+rN) - 1
func Compound(returns []float64) float64 {
	total := 1.0
	for _, r := range returns {
		total *= 1 + r
	}
	return total - 1
}

// CompoundedPrices converts returns into a price path starting at base.
// Prices[i] = base * (1+r0)*...*(1+ri)
func CompoundedPrices(returns []float64, base float64) []float64 {
	prices := make([]float64, len(returns))
	level := base
	for i, r := range returns {
		level *= 1 + r
		prices[i] = level
	}
	return prices
}
