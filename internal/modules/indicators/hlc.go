package indicators

import (
	"github.com/markcheno/go-talib"
)

type hlcHandler func(p HLC, params Params) ([]float64, error)

// hlcIndicators maps indicator names to handlers for high/low/close payloads.
var hlcIndicators = map[string]hlcHandler{
	"ADX":        adx,
	"STOCH_K":    stoch(true),
	"STOCH_D":    stoch(false),
	"AROON_UP":   aroon(true),
	"AROON_DOWN": aroon(false),
	"AROONOSC":   aroonOsc,
	"WILLR":      hlcPeriod("WILLR", 2, func(period int) int { return period - 1 }, talib.WillR),
	"CCI":        hlcPeriod("CCI", 2, func(period int) int { return period - 1 }, talib.Cci),
	"NATR":       hlcPeriod("NATR", 1, func(period int) int { return period }, talib.Natr),
}

// hlcPeriod builds a handler for kernels taking (high, low, close, period).
func hlcPeriod(name string, minPeriod int, lookback func(int) int, kernel func(h, l, c []float64, period int) []float64) hlcHandler {
	return func(p HLC, params Params) ([]float64, error) {
		period, err := params.Period("period", 14, minPeriod)
		if err != nil {
			return nil, err
		}
		return runTalib(name, p.Len(), lookback(period), func() []float64 {
			return kernel(p.High, p.Low, p.Close, period)
		})
	}
}

func adx(p HLC, params Params) ([]float64, error) {
	period, err := params.Period("period", 14, 2)
	if err != nil {
		return nil, err
	}
	return runTalib("ADX", p.Len(), 2*period-1, func() []float64 {
		return talib.Adx(p.High, p.Low, p.Close, period)
	})
}

func stoch(wantK bool) hlcHandler {
	return func(p HLC, params Params) ([]float64, error) {
		fastK, err := params.Period("fastk_period", 14, 1)
		if err != nil {
			return nil, err
		}
		slowK, err := params.Period("slowk_period", 3, 1)
		if err != nil {
			return nil, err
		}
		slowD, err := params.Period("slowd_period", 3, 1)
		if err != nil {
			return nil, err
		}
		slowKType, err := maTypeParam(params, "slowk_matype")
		if err != nil {
			return nil, err
		}
		slowDType, err := maTypeParam(params, "slowd_matype")
		if err != nil {
			return nil, err
		}

		lookback := fastK - 1 + maLookback(slowK, slowKType) + maLookback(slowD, slowDType)
		return runTalib("STOCH", p.Len(), lookback, func() []float64 {
			k, d := talib.Stoch(p.High, p.Low, p.Close, fastK, slowK, slowKType, slowD, slowDType)
			if wantK {
				return k
			}
			return d
		})
	}
}

func aroon(wantUp bool) hlcHandler {
	return func(p HLC, params Params) ([]float64, error) {
		period, err := params.Period("period", 14, 2)
		if err != nil {
			return nil, err
		}
		return runTalib("AROON", p.Len(), period, func() []float64 {
			down, up := talib.Aroon(p.High, p.Low, period)
			if wantUp {
				return up
			}
			return down
		})
	}
}

func aroonOsc(p HLC, params Params) ([]float64, error) {
	period, err := params.Period("period", 14, 2)
	if err != nil {
		return nil, err
	}
	return runTalib("AROONOSC", p.Len(), period, func() []float64 {
		return talib.AroonOsc(p.High, p.Low, period)
	})
}
