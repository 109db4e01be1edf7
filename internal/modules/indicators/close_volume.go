package indicators

import (
	"github.com/markcheno/go-talib"
)

type closeVolumeHandler func(p CloseVolume, params Params) ([]float64, error)

// closeVolumeIndicators maps indicator names to handlers for close/volume payloads.
var closeVolumeIndicators = map[string]closeVolumeHandler{
	"OBV": obv,
}

func obv(p CloseVolume, _ Params) ([]float64, error) {
	return runTalib("OBV", p.Len(), 0, func() []float64 {
		return talib.Obv(p.Close, p.Volume)
	})
}
