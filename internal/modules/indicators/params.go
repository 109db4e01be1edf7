package indicators

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aristath/indicator-service/internal/domain"
)

// Params holds per-indicator parameters as decoded from the request.
// Values may be numbers (from JSON or MessagePack) or numeric strings.
type Params map[string]any

// Float returns the named parameter or def when absent.
func (p Params) Float(name string, def float64) (float64, error) {
	raw, ok := p[name]
	if !ok || raw == nil {
		return def, nil
	}

	v, ok := toFloat(raw)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &domain.InvalidInputError{Field: name, Reason: fmt.Sprintf("expected a number, got %v", raw)}
	}
	return v, nil
}

// Int returns the named parameter truncated to an integer, or def when absent.
func (p Params) Int(name string, def int) (int, error) {
	v, err := p.Float(name, float64(def))
	if err != nil {
		return 0, err
	}
	return int(math.Trunc(v)), nil
}

// Period returns an integer parameter that must be at least min.
func (p Params) Period(name string, def, min int) (int, error) {
	v, err := p.Int(name, def)
	if err != nil {
		return 0, err
	}
	if v < min {
		return 0, &domain.InvalidInputError{Field: name, Reason: fmt.Sprintf("must be >= %d, got %d", min, v)}
	}
	return v, nil
}

// Bool returns the named flag. Strings "true"/"false" (any case) are accepted.
func (p Params) Bool(name string, def bool) (bool, error) {
	raw, ok := p[name]
	if !ok || raw == nil {
		return def, nil
	}

	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		// Anything other than "true" is false
		return strings.EqualFold(strings.TrimSpace(v), "true"), nil
	default:
		return false, &domain.InvalidInputError{Field: name, Reason: fmt.Sprintf("expected a boolean, got %v", raw)}
	}
}

func toFloat(raw any) (float64, bool) {
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
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
