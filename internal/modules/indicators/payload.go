// Package indicators computes technical-analysis indicators from caller
// supplied price and volume arrays.
//
// An incoming request is parsed once into one of four payload variants
// (close-only, HLC, HLCV, close+volume). Each variant dispatches through its
// own table of named handlers, so adding an indicator is a table entry.
package indicators

import (
	"fmt"

	"github.com/aristath/indicator-service/internal/domain"
	"github.com/aristath/indicator-service/internal/transport"
)

// Shape identifies which price/volume fields a payload carries.
type Shape int

const (
	ShapeCloseOnly Shape = iota
	ShapeHLC
	ShapeHLCV
	ShapeCloseVolume
)

// String returns the label used in error messages and metrics.
func (s Shape) String() string {
	switch s {
	case ShapeCloseOnly:
		return "close-only"
	case ShapeHLC:
		return "HLC"
	case ShapeHLCV:
		return "HLCV"
	case ShapeCloseVolume:
		return "Close+Volume"
	default:
		return "unknown"
	}
}

// Request is the wire form of POST /indicator.
// Pointer slices distinguish an absent field from an empty array.
type Request struct {
	Indicator string            `json:"indicator"`
	Prices    *transport.Floats `json:"prices,omitempty"`
	High      *transport.Floats `json:"high,omitempty"`
	Low       *transport.Floats `json:"low,omitempty"`
	Close     *transport.Floats `json:"close,omitempty"`
	Volume    *transport.Floats `json:"volume,omitempty"`
	Params    Params            `json:"params,omitempty"`
}

// Payload is one of CloseOnly, HLC, HLCV or CloseVolume.
type Payload interface {
	Shape() Shape
	Len() int
}

// CloseOnly carries closing prices only.
type CloseOnly struct {
	Prices []float64
}

func (p CloseOnly) Shape() Shape { return ShapeCloseOnly }
func (p CloseOnly) Len() int     { return len(p.Prices) }

// HLC carries high, low and close arrays.
type HLC struct {
	High, Low, Close []float64
}

func (p HLC) Shape() Shape { return ShapeHLC }
func (p HLC) Len() int     { return len(p.Close) }

// HLCV carries high, low, close and volume arrays.
type HLCV struct {
	High, Low, Close, Volume []float64
}

func (p HLCV) Shape() Shape { return ShapeHLCV }
func (p HLCV) Len() int     { return len(p.Close) }

// CloseVolume carries close and volume arrays.
type CloseVolume struct {
	Close, Volume []float64
}

func (p CloseVolume) Shape() Shape { return ShapeCloseVolume }
func (p CloseVolume) Len() int     { return len(p.Close) }

// ParsePayload classifies the request into exactly one payload variant.
//
// Precedence: prices; high+low+close without volume; high+low+close+volume;
// close+volume without high. Anything else is malformed. All arrays of the
// chosen variant must share one length, and none may exceed maxLen (0 = no limit).
func ParsePayload(req Request, maxLen int) (Payload, error) {
	var (
		payload Payload
		fields  []namedSeries
	)

	switch {
	case req.Prices != nil:
		payload = CloseOnly{Prices: *req.Prices}
		fields = []namedSeries{{"prices", *req.Prices}}

	case req.High != nil && req.Low != nil && req.Close != nil && req.Volume == nil:
		payload = HLC{High: *req.High, Low: *req.Low, Close: *req.Close}
		fields = []namedSeries{{"high", *req.High}, {"low", *req.Low}, {"close", *req.Close}}

	case req.High != nil && req.Low != nil && req.Close != nil && req.Volume != nil:
		payload = HLCV{High: *req.High, Low: *req.Low, Close: *req.Close, Volume: *req.Volume}
		fields = []namedSeries{{"high", *req.High}, {"low", *req.Low}, {"close", *req.Close}, {"volume", *req.Volume}}

	case req.Close != nil && req.Volume != nil && req.High == nil:
		payload = CloseVolume{Close: *req.Close, Volume: *req.Volume}
		fields = []namedSeries{{"close", *req.Close}, {"volume", *req.Volume}}

	default:
		return nil, &domain.MalformedRequestError{}
	}

	if err := validateSeries(fields, maxLen); err != nil {
		return nil, err
	}
	return payload, nil
}

type namedSeries struct {
	name   string
	values []float64
}

func validateSeries(fields []namedSeries, maxLen int) error {
	want := len(fields[0].values)
	for _, f := range fields {
		if maxLen > 0 && len(f.values) > maxLen {
			return &domain.InvalidInputError{
				Field:  f.name,
				Reason: fmt.Sprintf("length %d exceeds the maximum of %d", len(f.values), maxLen),
			}
		}
		if len(f.values) != want {
			return &domain.InvalidInputError{
				Field:  f.name,
				Reason: fmt.Sprintf("length %d does not match %s length %d", len(f.values), fields[0].name, want),
			}
		}
	}
	return nil
}
