package indicators

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aristath/indicator-service/internal/domain"
	"github.com/aristath/indicator-service/pkg/formulas"
)

// minCloseOnlyLength is the shortest prices array any close-only indicator accepts.
const minCloseOnlyLength = 2

// Result is the outcome of one indicator computation.
type Result struct {
	Indicator string
	Shape     Shape
	Values    []*float64
}

// Service dispatches indicator requests to the handler table for their payload shape.
type Service struct {
	maxSeriesLength int
	log             zerolog.Logger
}

// NewService creates an indicator service. maxSeriesLength of 0 disables the length cap.
func NewService(maxSeriesLength int, log zerolog.Logger) *Service {
	return &Service{
		maxSeriesLength: maxSeriesLength,
		log:             log.With().Str("service", "indicators").Logger(),
	}
}

// NormalizeName upper-cases and trims an indicator name.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Compute parses the request payload and evaluates the named indicator.
// The returned Result carries the resolved name and shape even on error,
// once they are known.
func (s *Service) Compute(req Request) (Result, error) {
	res := Result{Indicator: NormalizeName(req.Indicator)}

	payload, err := ParsePayload(req, s.maxSeriesLength)
	if err != nil {
		return res, err
	}
	res.Shape = payload.Shape()

	raw, err := dispatch(res.Indicator, payload, req.Params)
	if err != nil {
		return res, err
	}

	res.Values = formulas.Sanitize(raw)
	s.log.Debug().
		Str("indicator", res.Indicator).
		Str("shape", res.Shape.String()).
		Int("length", payload.Len()).
		Msg("Indicator computed")
	return res, nil
}

// RSI computes the relative strength index for the legacy /rsi endpoint.
func (s *Service) RSI(values []float64, period int) ([]*float64, error) {
	if len(values) < minCloseOnlyLength {
		return nil, &domain.InsufficientDataError{Field: "values", Need: minCloseOnlyLength, Got: len(values)}
	}
	if period < 2 {
		return nil, &domain.InvalidInputError{Field: "period", Reason: "must be >= 2"}
	}
	if s.maxSeriesLength > 0 && len(values) > s.maxSeriesLength {
		return nil, &domain.InvalidInputError{Field: "values", Reason: "length exceeds the configured maximum"}
	}

	raw, err := legacyRSI(values, period)
	if err != nil {
		return nil, err
	}
	return formulas.Sanitize(raw), nil
}

func dispatch(name string, payload Payload, params Params) ([]float64, error) {
	unsupported := &domain.UnsupportedIndicatorError{Indicator: name, Shape: payload.Shape().String()}

	switch p := payload.(type) {
	case CloseOnly:
		if len(p.Prices) < minCloseOnlyLength {
			return nil, &domain.InsufficientDataError{Field: "prices", Need: minCloseOnlyLength, Got: len(p.Prices)}
		}
		handler, ok := closeOnlyIndicators[name]
		if !ok {
			return nil, unsupported
		}
		return handler(p, params)

	case HLC:
		handler, ok := hlcIndicators[name]
		if !ok {
			return nil, unsupported
		}
		return handler(p, params)

	case HLCV:
		handler, ok := hlcvIndicators[name]
		if !ok {
			return nil, unsupported
		}
		return handler(p, params)

	case CloseVolume:
		handler, ok := closeVolumeIndicators[name]
		if !ok {
			return nil, unsupported
		}
		return handler(p, params)

	default:
		return nil, &domain.MalformedRequestError{}
	}
}

// Catalogue lists the supported indicator names per payload shape, sorted.
func Catalogue() map[string][]string {
	return map[string][]string{
		ShapeCloseOnly.String():   sortedKeys(closeOnlyIndicators),
		ShapeHLC.String():         sortedKeys(hlcIndicators),
		ShapeHLCV.String():        sortedKeys(hlcvIndicators),
		ShapeCloseVolume.String(): sortedKeys(closeVolumeIndicators),
	}
}

// Supported reports whether any payload shape accepts the normalized name.
func Supported(name string) bool {
	_, a := closeOnlyIndicators[name]
	_, b := hlcIndicators[name]
	_, c := hlcvIndicators[name]
	_, d := closeVolumeIndicators[name]
	return a || b || c || d
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
