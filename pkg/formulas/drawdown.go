package formulas

import "math"

// DrawdownEpisode is a maximal run of consecutive observations below the
// running peak.
type DrawdownEpisode struct {
	Start       int     `json:"start"`        // First index below the peak
	End         int     `json:"end"`          // Last index below the peak
	MaxDrawdown float64 `json:"max_drawdown"` // Deepest drawdown in the run (negative)
}

// DrawdownSeries converts returns to a drawdown series.
//
// Formula:
//
//	Price[i]    = (1+r0)*...*(1+ri)
//	Drawdown[i] = Price[i] / max(Price[0..i]) - 1
//
// Values are <= 0; non-finite or negative-zero results are reported as 0.
func DrawdownSeries(returns []float64) []float64 {
	prices := CompoundedPrices(returns, 1)
	dd := make([]float64, len(prices))

	peak := math.Inf(-1)
	for i, p := range prices {
		if p > peak {
			peak = p
		}
		v := p/peak - 1
		if !IsFinite(v) || v == 0 {
			v = 0
		}
		dd[i] = v
	}

	return dd
}

// MaxDrawdown returns the deepest drawdown of the return series (negative or 0).
func MaxDrawdown(returns []float64) float64 {
	if len(returns) == 0 {
		return math.NaN()
	}

	worst := 0.0
	for _, v := range DrawdownSeries(returns) {
		if v < worst {
			worst = v
		}
	}
	return worst
}

// DrawdownEpisodes splits a drawdown series into its episodes.
func DrawdownEpisodes(drawdowns []float64) []DrawdownEpisode {
	var episodes []DrawdownEpisode

	inDrawdown := false
	var current DrawdownEpisode
	for i, v := range drawdowns {
		if v < 0 {
			if !inDrawdown {
				inDrawdown = true
				current = DrawdownEpisode{Start: i, MaxDrawdown: v}
			}
			current.End = i
			if v < current.MaxDrawdown {
				current.MaxDrawdown = v
			}
			continue
		}
		if inDrawdown {
			episodes = append(episodes, current)
			inDrawdown = false
		}
	}
	if inDrawdown {
		episodes = append(episodes, current)
	}

	return episodes
}

// UlcerIndex measures depth and duration of drawdowns: sqrt(Σ dd² / (n-1)).
func UlcerIndex(returns []float64) float64 {
	if len(returns) < 2 {
		return math.NaN()
	}

	sumSquared := 0.0
	for _, v := range DrawdownSeries(returns) {
		sumSquared += v * v
	}
	return math.Sqrt(sumSquared / float64(len(returns)-1))
}
