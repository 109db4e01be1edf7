package indicators

import (
	"github.com/markcheno/go-talib"
)

type hlcvHandler func(p HLCV, params Params) ([]float64, error)

// hlcvIndicators maps indicator names to handlers for high/low/close/volume payloads.
var hlcvIndicators = map[string]hlcvHandler{
	"MFI":   mfi,
	"AD":    ad,
	"ADOSC": adOsc,
}

func mfi(p HLCV, params Params) ([]float64, error) {
	period, err := params.Period("period", 14, 2)
	if err != nil {
		return nil, err
	}
	return runTalib("MFI", p.Len(), period, func() []float64 {
		return talib.Mfi(p.High, p.Low, p.Close, p.Volume, period)
	})
}

func ad(p HLCV, _ Params) ([]float64, error) {
	return runTalib("AD", p.Len(), 0, func() []float64 {
		return talib.Ad(p.High, p.Low, p.Close, p.Volume)
	})
}

func adOsc(p HLCV, params Params) ([]float64, error) {
	fast, err := params.Period("fastperiod", 3, 2)
	if err != nil {
		return nil, err
	}
	slow, err := params.Period("slowperiod", 10, 2)
	if err != nil {
		return nil, err
	}
	return runTalib("ADOSC", p.Len(), max(fast, slow)-1, func() []float64 {
		return talib.AdOsc(p.High, p.Low, p.Close, p.Volume, fast, slow)
	})
}
