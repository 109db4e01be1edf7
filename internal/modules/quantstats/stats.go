package quantstats

import (
	"math"

	"github.com/aristath/indicator-service/pkg/formulas"
)

// The statistics below follow quantstats conventions: prices are compounded
// from the returns with no base prepended, quantiles interpolate linearly
// between closest ranks and moments are bias-corrected. Undefined results are NaN or ±Inf and are nulled by the
// aggregator.

// CAGR is the compound annual growth rate, with the year length measured as
// calendar days between the first and last date divided by periodsPerYear.
func CAGR(s Series, periodsPerYear int) float64 {
	if s.Len() == 0 || periodsPerYear <= 0 {
		return math.NaN()
	}
	years := float64(calendarDays(s.Dates[0], s.Dates[len(s.Dates)-1])) / float64(periodsPerYear)
	total := formulas.Compound(s.Returns)
	return math.Pow(math.Abs(total+1), 1/years) - 1
}

// Calmar is CAGR divided by the absolute maximum drawdown.
func Calmar(s Series, periodsPerYear int) float64 {
	return CAGR(s, periodsPerYear) / math.Abs(formulas.MaxDrawdown(s.Returns))
}

// Omega is the gain mass over the loss mass around a zero threshold.
func Omega(r []float64) float64 {
	if len(r) < 2 {
		return math.NaN()
	}
	gains, losses := 0.0, 0.0
	for _, v := range r {
		switch {
		case v > 0:
			gains += v
		case v < 0:
			losses -= v
		}
	}
	if losses <= 0 {
		return math.NaN()
	}
	return gains / losses
}

// TailRatio is |Q(0.95) / Q(0.05)|.
func TailRatio(r []float64) float64 {
	return math.Abs(formulas.Quantile(r, 0.95) / formulas.Quantile(r, 0.05))
}

// ProfitFactor is |Σ r≥0 / Σ r<0|.
func ProfitFactor(r []float64) float64 {
	wins := formulas.Sum(formulas.Filter(r, func(v float64) bool { return v >= 0 }))
	losses := formulas.Sum(formulas.Filter(r, func(v float64) bool { return v < 0 }))
	return math.Abs(wins / losses)
}

// CommonSenseRatio is profit factor times tail ratio.
func CommonSenseRatio(r []float64) float64 {
	return ProfitFactor(r) * TailRatio(r)
}

// ValueAtRisk is the parametric (normal) VaR at the given confidence.
// A confidence above 1 is read as a percentage.
func ValueAtRisk(r []float64, confidence float64) float64 {
	if confidence > 1 {
		confidence /= 100
	}
	return formulas.NormalQuantile(1-confidence, formulas.Mean(r), formulas.StdDev(r))
}

// CVaR is the mean of the returns strictly below VaR, or VaR itself when
// there are none.
func CVaR(r []float64, confidence float64) float64 {
	limit := ValueAtRisk(r, confidence)
	tail := formulas.Filter(r, func(v float64) bool { return v < limit })
	if len(tail) == 0 {
		return limit
	}
	return formulas.Mean(tail)
}

// UlcerIndex is sqrt(Σ dd² / (n-1)).
func UlcerIndex(r []float64) float64 {
	return formulas.UlcerIndex(r)
}

// AvgDrawdown is the mean depth of the drawdown episodes, 0 when there are none.
func AvgDrawdown(r []float64) float64 {
	episodes := formulas.DrawdownEpisodes(formulas.DrawdownSeries(r))
	if len(episodes) == 0 {
		return 0
	}
	total := 0.0
	for _, e := range episodes {
		total += e.MaxDrawdown
	}
	return total / float64(len(episodes))
}

// AvgDrawdownDays is the mean episode length in calendar days, counting both
// the first and last day under water. 0 when there are no episodes.
func AvgDrawdownDays(s Series) float64 {
	episodes := formulas.DrawdownEpisodes(formulas.DrawdownSeries(s.Returns))
	if len(episodes) == 0 {
		return 0
	}
	total := 0
	for _, e := range episodes {
		total += calendarDays(s.Dates[e.Start], s.Dates[e.End]) + 1
	}
	return float64(total) / float64(len(episodes))
}

// PayoffRatio is the average win over the absolute average loss.
func PayoffRatio(r []float64) float64 {
	avgWin := formulas.Mean(formulas.Filter(r, func(v float64) bool { return v > 0 }))
	avgLoss := formulas.Mean(formulas.Filter(r, func(v float64) bool { return v < 0 }))
	return avgWin / math.Abs(avgLoss)
}

// ProfitRatio compares the per-observation average win to the per-observation average loss.
func ProfitRatio(r []float64) float64 {
	wins := formulas.Filter(r, func(v float64) bool { return v >= 0 })
	losses := formulas.Filter(r, func(v float64) bool { return v < 0 })

	winRatio := math.Abs(formulas.Mean(wins) / float64(len(wins)))
	lossRatio := math.Abs(formulas.Mean(losses) / float64(len(losses)))
	return winRatio / lossRatio
}

// GainToPainRatio is Σ r over the absolute sum of losses.
func GainToPainRatio(r []float64) float64 {
	losses := formulas.Sum(formulas.Filter(r, func(v float64) bool { return v < 0 }))
	return formulas.Sum(r) / math.Abs(losses)
}

// Skew is the bias-corrected sample skewness.
func Skew(r []float64) float64 {
	return formulas.Skew(r)
}

// Kurtosis is the bias-corrected sample excess kurtosis.
func Kurtosis(r []float64) float64 {
	return formulas.ExKurtosis(r)
}

// WinRate is the share of non-zero returns that are positive.
func WinRate(r []float64) float64 {
	return nonZeroShare(r, func(v float64) bool { return v > 0 })
}

// LossRate is the share of non-zero returns that are negative.
func LossRate(r []float64) float64 {
	return nonZeroShare(r, func(v float64) bool { return v < 0 })
}

func nonZeroShare(r []float64, match func(float64) bool) float64 {
	nonZero, hits := 0, 0
	for _, v := range r {
		if v == 0 {
			continue
		}
		nonZero++
		if match(v) {
			hits++
		}
	}
	if nonZero == 0 {
		return 0
	}
	return float64(hits) / float64(nonZero)
}
