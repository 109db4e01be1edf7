package formulas

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// TradingDaysPerYear is the annualization factor used for daily price data.
const TradingDaysPerYear = 252

var (
	// ErrInsufficientData is returned when a series is too short for the calculation.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrZeroBasePrice is returned when a relative calculation has a zero base price.
	ErrZeroBasePrice = errors.New("first price must be non-zero")
	// ErrInvalidWindow is returned for rolling windows that cannot produce a sample statistic.
	ErrInvalidWindow = errors.New("invalid window")
)

// The functions in this file are point-in-time correct: the value stored at
// index i is computable from prices[0..i-1] only. A decision taken at the
// start of day i only knows the close of day i-1.

// CumulativeReturn calculates the lagged cumulative return of a price series.
//
// Result[0] = 0, Result[i] = Price[i-1]/Price[0] - 1 for i >= 1.
func CumulativeReturn(prices []float64) ([]float64, error) {
	if len(prices) < 1 {
		return nil, fmt.Errorf("%w: need at least 1 price, got 0", ErrInsufficientData)
	}
	if prices[0] == 0 {
		return nil, ErrZeroBasePrice
	}

	result := make([]float64, len(prices))
	result[0] = 0
	for i := 1; i < len(prices); i++ {
		result[i] = prices[i-1]/prices[0] - 1
	}

	return result, nil
}

// RollingStdDev calculates the trailing sample standard deviation over window
// observations. Result[j] covers data[j-window+1..j]; the first window-1
// entries are NaN.
func RollingStdDev(data []float64, window int) []float64 {
	out := NaNSeries(len(data))
	if window < 2 {
		return out
	}

	for j := window - 1; j < len(data); j++ {
		out[j] = stat.StdDev(data[j-window+1:j+1], nil)
	}
	return out
}

// RollingVolatility calculates lagged rolling volatility of simple returns.
//
// Returns d[j] = Price[j+1]/Price[j] - 1 live in a space one shorter than
// the prices. The trailing std dev sd[j] covers d[j-period+1..j] and therefore
// prices up to index j+1. Restricting Result[i] to prices through i-1 gives
// j = i-2, so Result[i] = sd[i-2], defined from i = period+1 onward.
//
// Args:
//
//	prices: Closing prices, oldest first
//	period: Rolling window measured in returns (>= 2)
//	annualize: Multiply by sqrt(252)
//
// Returns:
//
//	Series of len(prices); NaN where undefined.
func RollingVolatility(prices []float64, period int, annualize bool) ([]float64, error) {
	if period < 2 {
		return nil, fmt.Errorf("%w: period must be at least 2, got %d", ErrInvalidWindow, period)
	}
	if len(prices) < period+1 {
		return nil, fmt.Errorf("%w: need at least %d prices for volatility calculation, got %d",
			ErrInsufficientData, period+1, len(prices))
	}

	returns := SimpleReturns(prices)
	rolling := RollingStdDev(returns, period)

	scale := 1.0
	if annualize {
		scale = math.Sqrt(TradingDaysPerYear)
	}

	result := NaNSeries(len(prices))
	for i := period + 1; i < len(prices); i++ {
		result[i] = rolling[i-2] * scale
	}

	return result, nil
}
