package quantstats

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/indicator-service/internal/domain"
	"github.com/aristath/indicator-service/internal/transport"
	"github.com/aristath/indicator-service/pkg/formulas"
)

// Request is the wire form of POST /metrics/quantstats.
type Request struct {
	Returns      transport.Floats `json:"returns,omitempty"`
	Equity       transport.Floats `json:"equity,omitempty"`
	RiskFreeRate float64          `json:"risk_free_rate"`
	Period       any              `json:"period"`
	Confidence   float64          `json:"confidence"`
}

// DefaultRequest returns a request pre-filled with the documented defaults.
// Decode into it so that omitted fields keep their default.
func DefaultRequest() Request {
	return Request{
		RiskFreeRate: 0,
		Period:       "daily",
		Confidence:   0.95,
	}
}

// Analysis is the outcome of one statistics request.
type Analysis struct {
	Report      Report
	SampleSize  int
	Period      Period
	Unavailable []string
}

// Service evaluates the statistic battery.
type Service struct {
	maxSeriesLength int
	now             func() time.Time
	log             zerolog.Logger
}

// NewService creates a statistics service. maxSeriesLength of 0 disables the length cap.
func NewService(maxSeriesLength int, log zerolog.Logger) *Service {
	return &Service{
		maxSeriesLength: maxSeriesLength,
		now:             time.Now,
		log:             log.With().Str("service", "quantstats").Logger(),
	}
}

// Compute prepares the return series and evaluates every statistic.
// Only input problems fail the request; a statistic that cannot be computed
// is reported as unavailable.
func (s *Service) Compute(req Request) (Analysis, error) {
	if err := s.checkLength("returns", req.Returns); err != nil {
		return Analysis{}, err
	}
	if err := s.checkLength("equity", req.Equity); err != nil {
		return Analysis{}, err
	}

	returns, err := PrepareReturns(req.Returns, req.Equity)
	if err != nil {
		return Analysis{}, err
	}

	period := ResolvePeriod(req.Period)
	series := NewSeries(returns, period.Frequency, s.now())
	excess := excessSeries(series, formulas.AnnualToPeriodicRate(req.RiskFreeRate, period.PeriodsPerYear))

	results := Evaluate(battery(series, excess, period, req.Confidence))

	analysis := Analysis{
		Report:     NewReport(results),
		SampleSize: series.Len(),
		Period:     period,
	}
	sampleSize := float64(series.Len())
	analysis.Report["qs_sample_size"] = &sampleSize

	for _, r := range results {
		if r.Available() {
			continue
		}
		analysis.Unavailable = append(analysis.Unavailable, r.Name)
		s.log.Debug().Str("metric", r.Name).Err(r.Err).Msg("Metric unavailable")
	}

	return analysis, nil
}

func (s *Service) checkLength(field string, values []float64) error {
	if s.maxSeriesLength > 0 && len(values) > s.maxSeriesLength {
		return &domain.InvalidInputError{
			Field:  field,
			Reason: fmt.Sprintf("length %d exceeds the maximum of %d", len(values), s.maxSeriesLength),
		}
	}
	return nil
}

// excessSeries subtracts a per-period risk-free rate. A zero rate returns the series itself.
func excessSeries(s Series, rate float64) Series {
	if rate == 0 {
		return s
	}
	out := make([]float64, len(s.Returns))
	for i, r := range s.Returns {
		out[i] = r - rate
	}
	return Series{Returns: out, Dates: s.Dates}
}

// battery lists the statistics in response order. Only Calmar sees the excess series.
func battery(s, excess Series, period Period, confidence float64) []Metric {
	r := s.Returns
	return []Metric{
		{"qs_calmar", func() float64 { return Calmar(excess, period.PeriodsPerYear) }},
		{"qs_omega", func() float64 { return Omega(r) }},
		{"qs_tail_ratio", func() float64 { return TailRatio(r) }},
		{"qs_common_sense_ratio", func() float64 { return CommonSenseRatio(r) }},
		{"qs_value_at_risk", func() float64 { return ValueAtRisk(r, confidence) }},
		{"qs_cvar", func() float64 { return CVaR(r, confidence) }},
		{"qs_ulcer_index", func() float64 { return UlcerIndex(r) }},
		{"qs_avg_drawdown", func() float64 { return AvgDrawdown(r) }},
		{"qs_avg_drawdown_days", func() float64 { return AvgDrawdownDays(s) }},
		{"qs_payoff_ratio", func() float64 { return PayoffRatio(r) }},
		{"qs_profit_ratio", func() float64 { return ProfitRatio(r) }},
		{"qs_gain_to_pain_ratio", func() float64 { return GainToPainRatio(r) }},
		{"qs_skew", func() float64 { return Skew(r) }},
		{"qs_kurtosis", func() float64 { return Kurtosis(r) }},
		{"qs_win_rate", func() float64 { return WinRate(r) }},
		{"qs_loss_rate", func() float64 { return LossRate(r) }},
	}
}
