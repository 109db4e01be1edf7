package indicators

import (
	"errors"
	"fmt"

	"github.com/markcheno/go-talib"

	"github.com/aristath/indicator-service/internal/domain"
	"github.com/aristath/indicator-service/pkg/formulas"
)

type closeOnlyHandler func(p CloseOnly, params Params) ([]float64, error)

// closeOnlyIndicators maps indicator names to handlers for {"prices": [...]} payloads.
var closeOnlyIndicators = map[string]closeOnlyHandler{
	"CURRENT_PRICE": currentPrice,
	"PRICE":         currentPrice,
	"CLOSE":         currentPrice,
	"LAST":          currentPrice,

	"RSI": rsi,
	"SMA": movingAverage("SMA", talib.Sma),
	"EMA": movingAverage("EMA", talib.Ema),

	"MACD":        macd(macdHistogram),
	"MACD_HIST":   macd(macdHistogram),
	"MACD-HIST":   macd(macdHistogram),
	"MACD_LINE":   macd(macdLine),
	"MACD_SIGNAL": macd(macdSignal),

	"PPO":        ppo(ppoLine),
	"PPO_LINE":   ppo(ppoLine),
	"PPO_SIGNAL": ppo(ppoSignal),
	"PPO_HIST":   ppo(ppoHistogram),

	"BBANDS_UPPER":  bbands(bandUpper),
	"BBANDS_MIDDLE": bbands(bandMiddle),
	"BBANDS_LOWER":  bbands(bandLower),

	"CUMULATIVE_RETURN": cumulativeReturn,
	"VOLATILITY":        volatility,
}

func currentPrice(p CloseOnly, _ Params) ([]float64, error) {
	out := make([]float64, len(p.Prices))
	copy(out, p.Prices)
	return out, nil
}

func rsi(p CloseOnly, params Params) ([]float64, error) {
	period, err := params.Period("period", 14, 2)
	if err != nil {
		return nil, err
	}
	return computeRSI(p.Prices, period)
}

func computeRSI(prices []float64, period int) ([]float64, error) {
	if len(prices) < period {
		return nil, &domain.InsufficientDataError{
			Field:  "prices",
			Need:   period,
			Got:    len(prices),
			Detail: "prices length must be >= period",
		}
	}
	return runTalib("RSI", len(prices), period, func() []float64 {
		return talib.Rsi(prices, period)
	})
}

// legacyRSI backs /rsi, which answers a series shorter than the period with
// all nulls instead of an error.
func legacyRSI(values []float64, period int) ([]float64, error) {
	return runTalib("RSI", len(values), period, func() []float64 { return talib.Rsi(values, period) })
}

func movingAverage(name string, kernel func([]float64, int) []float64) closeOnlyHandler {
	return func(p CloseOnly, params Params) ([]float64, error) {
		period, err := params.Period("period", 14, 2)
		if err != nil {
			return nil, err
		}
		return runTalib(name, len(p.Prices), period-1, func() []float64 {
			return kernel(p.Prices, period)
		})
	}
}

type macdOutput int

const (
	macdLine macdOutput = iota
	macdSignal
	macdHistogram
)

func macd(output macdOutput) closeOnlyHandler {
	return func(p CloseOnly, params Params) ([]float64, error) {
		fast, err := params.Period("fastperiod", 12, 2)
		if err != nil {
			return nil, err
		}
		slow, err := params.Period("slowperiod", 26, 2)
		if err != nil {
			return nil, err
		}
		signal, err := params.Period("signalperiod", 9, 1)
		if err != nil {
			return nil, err
		}

		// TA-Lib swaps the periods when slow < fast
		lookback := max(fast, slow) - 1 + signal - 1
		return runTalib("MACD", len(p.Prices), lookback, func() []float64 {
			line, sig, hist := talib.Macd(p.Prices, fast, slow, signal)
			switch output {
			case macdLine:
				return line
			case macdSignal:
				return sig
			default:
				return hist
			}
		})
	}
}

type ppoOutput int

const (
	ppoLine ppoOutput = iota
	ppoSignal
	ppoHistogram
)

func ppo(output ppoOutput) closeOnlyHandler {
	return func(p CloseOnly, params Params) ([]float64, error) {
		fast, err := params.Period("fastperiod", 12, 2)
		if err != nil {
			return nil, err
		}
		slow, err := params.Period("slowperiod", 26, 2)
		if err != nil {
			return nil, err
		}
		maType, err := maTypeParam(params, "matype")
		if err != nil {
			return nil, err
		}

		lineLookback := maLookback(max(fast, slow), maType)
		line, err := runTalib("PPO", len(p.Prices), lineLookback, func() []float64 {
			return talib.Ppo(p.Prices, fast, slow, maType)
		})
		if err != nil || output == ppoLine {
			return line, err
		}

		signalPeriod, err := params.Period("signalperiod", 9, 2)
		if err != nil {
			return nil, err
		}
		signal, err := runTalib("PPO_SIGNAL", len(p.Prices), lineLookback+signalPeriod-1, func() []float64 {
			return emaOfDefined(line, lineLookback, signalPeriod)
		})
		if err != nil || output == ppoSignal {
			return signal, err
		}

		return subtract(line, signal), nil
	}
}

type band int

const (
	bandUpper band = iota
	bandMiddle
	bandLower
)

func bbands(output band) closeOnlyHandler {
	return func(p CloseOnly, params Params) ([]float64, error) {
		period, err := params.Period("period", 20, 2)
		if err != nil {
			return nil, err
		}
		devUp, err := params.Float("nbdevup", 2.0)
		if err != nil {
			return nil, err
		}
		devDown, err := params.Float("nbdevdn", 2.0)
		if err != nil {
			return nil, err
		}
		maType, err := maTypeParam(params, "matype")
		if err != nil {
			return nil, err
		}

		return runTalib("BBANDS", len(p.Prices), maLookback(period, maType), func() []float64 {
			upper, middle, lower := talib.BBands(p.Prices, period, devUp, devDown, maType)
			switch output {
			case bandUpper:
				return upper
			case bandMiddle:
				return middle
			default:
				return lower
			}
		})
	}
}

func cumulativeReturn(p CloseOnly, _ Params) ([]float64, error) {
	out, err := formulas.CumulativeReturn(p.Prices)
	if err != nil {
		return nil, &domain.InvalidInputError{Reason: "Invalid prices for cumulative return"}
	}
	return out, nil
}

func volatility(p CloseOnly, params Params) ([]float64, error) {
	period, err := params.Period("period", 20, 2)
	if err != nil {
		return nil, err
	}
	annualize, err := params.Bool("annualize", true)
	if err != nil {
		return nil, err
	}

	out, err := formulas.RollingVolatility(p.Prices, period, annualize)
	switch {
	case errors.Is(err, formulas.ErrInsufficientData):
		return nil, &domain.InsufficientDataError{
			Field:  "prices",
			Need:   period + 1,
			Got:    len(p.Prices),
			Detail: fmt.Sprintf("Need at least %d prices for volatility calculation", period+1),
		}
	case err != nil:
		return nil, &domain.InvalidInputError{Field: "period", Reason: err.Error()}
	}
	return out, nil
}
