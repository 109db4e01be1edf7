package quantstats

import (
	"fmt"

	"github.com/aristath/indicator-service/pkg/formulas"
)

// Metric is one named statistic, evaluated lazily.
type Metric struct {
	Name    string
	Compute func() float64
}

// Result is the outcome of one Metric: a finite value, or unavailable with a cause.
type Result struct {
	Name  string
	Value float64
	Err   error
}

// Available reports whether the metric produced a finite value.
func (r Result) Available() bool {
	return r.Err == nil
}

// Evaluate runs every metric in order. Each is isolated: a panic or a
// non-finite value marks that metric unavailable and the rest still run.
func Evaluate(metrics []Metric) []Result {
	results := make([]Result, len(metrics))
	for i, m := range metrics {
		results[i] = evaluate(m)
	}
	return results
}

func evaluate(m Metric) (res Result) {
	res.Name = m.Name

	defer func() {
		if r := recover(); r != nil {
			res.Value = 0
			res.Err = fmt.Errorf("%s panicked: %v", m.Name, r)
		}
	}()

	v := m.Compute()
	if !formulas.IsFinite(v) {
		res.Err = fmt.Errorf("%s is not finite (%v)", m.Name, v)
		return res
	}
	res.Value = v
	return res
}

// Report maps metric names to values; unavailable metrics map to nil and
// encode as null.
type Report map[string]*float64

// NewReport converts results into a Report.
func NewReport(results []Result) Report {
	report := make(Report, len(results))
	for _, r := range results {
		if !r.Available() {
			report[r.Name] = nil
			continue
		}
		v := r.Value
		report[r.Name] = &v
	}
	return report
}
