// Package quantstats computes a fixed battery of portfolio risk/return
// statistics from a returns series or an equity curve.
package quantstats

import (
	"math"
	"strconv"
	"strings"
)

// Frequency is the spacing of the synthetic date index.
type Frequency string

const (
	Daily     Frequency = "D"
	Weekly    Frequency = "W"
	Monthly   Frequency = "M"
	Quarterly Frequency = "Q"
	Yearly    Frequency = "Y"
)

// Period pairs a sampling frequency with the number of periods per year
// used for annualization.
type Period struct {
	Frequency      Frequency
	PeriodsPerYear int
}

// DefaultPeriod is used for absent or unrecognized labels.
var DefaultPeriod = Period{Frequency: Daily, PeriodsPerYear: 252}

var periodLabels = map[string]Period{
	"daily":     {Daily, 252},
	"day":       {Daily, 252},
	"1d":        {Daily, 252},
	"weekly":    {Weekly, 52},
	"week":      {Weekly, 52},
	"1w":        {Weekly, 52},
	"monthly":   {Monthly, 12},
	"month":     {Monthly, 12},
	"1m":        {Monthly, 12},
	"quarterly": {Quarterly, 4},
	"quarter":   {Quarterly, 4},
	"1q":        {Quarterly, 4},
	"yearly":    {Yearly, 1},
	"annual":    {Yearly, 1},
	"1y":        {Yearly, 1},
}

// ResolvePeriod maps a label ("daily", "1w", ...) or a bare positive number of
// periods per year to a Period. It never fails: anything else resolves to
// DefaultPeriod. Numbers are truncated, so "52.9" means 52 daily-spaced periods.
func ResolvePeriod(label any) Period {
	switch v := label.(type) {
	case nil:
		return DefaultPeriod
	case string:
		return resolveString(v)
	default:
		if f, ok := number(v); ok {
			return fromCount(f)
		}
		return DefaultPeriod
	}
}

func resolveString(label string) Period {
	key := strings.ToLower(strings.TrimSpace(label))
	if key == "" {
		return DefaultPeriod
	}
	if p, ok := periodLabels[key]; ok {
		return p
	}
	f, err := strconv.ParseFloat(key, 64)
	if err != nil {
		return DefaultPeriod
	}
	return fromCount(f)
}

func fromCount(f float64) Period {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return DefaultPeriod
	}
	n := math.Trunc(f)
	if n <= 0 || n > math.MaxInt32 {
		return DefaultPeriod
	}
	return Period{Frequency: Daily, PeriodsPerYear: int(n)}
}

func number(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}
