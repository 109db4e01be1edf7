package indicators

import (
	"fmt"
	"math"

	"github.com/markcheno/go-talib"

	"github.com/aristath/indicator-service/internal/domain"
	"github.com/aristath/indicator-service/pkg/formulas"
)

// go-talib returns input-aligned slices with the warm-up region left at 0.
// TA-Lib proper reports that region as missing, so every library result is
// masked below its lookback before it leaves this package.

// maLookback mirrors TA_MA_Lookback for each moving-average type.
func maLookback(period int, maType talib.MaType) int {
	if period <= 1 {
		return 0
	}
	switch maType {
	case talib.SMA, talib.EMA, talib.WMA, talib.TRIMA:
		return period - 1
	case talib.DEMA:
		return 2 * (period - 1)
	case talib.TEMA:
		return 3 * (period - 1)
	case talib.KAMA:
		return period
	case talib.MAMA:
		return 32
	case talib.T3MA:
		return 6 * (period - 1)
	default:
		return period - 1
	}
}

// maTypeParam reads a TA-Lib moving-average type (0..8).
func maTypeParam(params Params, name string) (talib.MaType, error) {
	v, err := params.Int(name, 0)
	if err != nil {
		return 0, err
	}
	if v < int(talib.SMA) || v > int(talib.T3MA) {
		return 0, &domain.InvalidInputError{Field: name, Reason: fmt.Sprintf("must be between 0 and 8, got %d", v)}
	}
	return talib.MaType(v), nil
}

// runTalib invokes a library kernel for an input of length n and masks
// indices below lookback to NaN. Inputs not longer than lookback produce an
// all-missing series without touching the library.
func runTalib(indicator string, n, lookback int, kernel func() []float64) (out []float64, err error) {
	if n <= lookback {
		return formulas.NaNSeries(n), nil
	}

	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = &domain.InvalidInputError{
				Field:  indicator,
				Reason: fmt.Sprintf("calculation failed: %v", r),
			}
		}
	}()

	raw := kernel()
	return maskLookback(raw, n, lookback), nil
}

// maskLookback copies raw into a series of length n with NaN below lookback.
func maskLookback(raw []float64, n, lookback int) []float64 {
	out := formulas.NaNSeries(n)
	for i := lookback; i < n && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// emaOfDefined applies an EMA to the defined tail of a series that starts at
// begin, keeping alignment with the original index.
func emaOfDefined(series []float64, begin, period int) []float64 {
	n := len(series)
	out := formulas.NaNSeries(n)
	if begin < 0 || n-begin < period {
		return out
	}

	tail := talib.Ema(series[begin:], period)
	for k := period - 1; k < len(tail); k++ {
		out[begin+k] = tail[k]
	}
	return out
}

// subtract returns a-b elementwise, NaN where either side is missing.
func subtract(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			out[i] = math.NaN()
			continue
		}
		out[i] = a[i] - b[i]
	}
	return out
}
