package quantstats

import (
	"time"

	"github.com/aristath/indicator-service/internal/domain"
	"github.com/aristath/indicator-service/pkg/formulas"
)

// minObservations is the fewest clean returns the battery accepts.
const minObservations = 2

// Series is a clean return series on a synthetic, strictly increasing date index.
// The dates only carry ordering and spacing.
type Series struct {
	Returns []float64
	Dates   []time.Time
}

// Len returns the number of observations.
func (s Series) Len() int { return len(s.Returns) }

// PrepareReturns picks the return series for a request. Raw returns win when
// at least two of them are finite; otherwise a non-empty equity curve is
// converted with pairwise relative change.
func PrepareReturns(returns, equity []float64) ([]float64, error) {
	clean := formulas.DropNonFinite(returns)
	if len(clean) < minObservations && len(equity) > 0 {
		clean = formulas.EquityToReturns(equity)
	}

	if len(clean) < minObservations {
		return nil, &domain.InsufficientReturnsError{Got: len(clean)}
	}
	return clean, nil
}

// NewSeries attaches a synthetic index ending at now to the returns.
func NewSeries(returns []float64, freq Frequency, now time.Time) Series {
	return Series{
		Returns: returns,
		Dates:   SyntheticIndex(len(returns), freq, now),
	}
}

// SyntheticIndex builds n UTC midnights spaced at freq, the last one being the
// latest on-frequency date not after now. Weekly dates fall on Sundays;
// monthly, quarterly and yearly dates are period ends.
func SyntheticIndex(n int, freq Frequency, now time.Time) []time.Time {
	if n <= 0 {
		return []time.Time{}
	}

	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dates := make([]time.Time, n)

	switch freq {
	case Weekly:
		anchor := today.AddDate(0, 0, -int(today.Weekday()))
		for i := range dates {
			dates[i] = anchor.AddDate(0, 0, -7*(n-1-i))
		}

	case Monthly, Quarterly, Yearly:
		step := monthsPerStep(freq)
		anchor := lastPeriodEnd(today, step)
		for i := range dates {
			k := n - 1 - i
			// Day 0 of the following month is the last day of the target month
			dates[i] = time.Date(anchor.Year(), anchor.Month()-time.Month(k*step)+1, 0, 0, 0, 0, 0, time.UTC)
		}

	default:
		for i := range dates {
			dates[i] = today.AddDate(0, 0, -(n - 1 - i))
		}
	}

	return dates
}

func monthsPerStep(freq Frequency) int {
	switch freq {
	case Quarterly:
		return 3
	case Yearly:
		return 12
	default:
		return 1
	}
}

// lastPeriodEnd returns the last month end not after today whose month is a
// multiple of step (every month, Mar/Jun/Sep/Dec, or Dec).
func lastPeriodEnd(today time.Time, step int) time.Time {
	end := time.Date(today.Year(), today.Month()+1, 0, 0, 0, 0, 0, time.UTC)
	if end.After(today) {
		end = time.Date(today.Year(), today.Month(), 0, 0, 0, 0, 0, time.UTC)
	}
	for int(end.Month())%step != 0 {
		end = time.Date(end.Year(), end.Month(), 0, 0, 0, 0, 0, time.UTC)
	}
	return end
}

// calendarDays returns the whole days between two UTC midnights.
func calendarDays(from, to time.Time) int {
	return int((to.Unix() - from.Unix()) / 86400)
}
