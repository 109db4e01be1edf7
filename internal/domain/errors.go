// Package domain holds the error kinds shared by the indicator and metrics modules.
package domain

import (
	"errors"
	"fmt"
)

// ClientError is implemented by errors caused by the caller's payload.
// They surface as 400-class responses and are never retried.
type ClientError interface {
	error
	ClientError() bool
}

// IsClientError reports whether err (or anything it wraps) is a ClientError.
func IsClientError(err error) bool {
	var ce ClientError
	return errors.As(err, &ce) && ce.ClientError()
}

// MalformedRequestError is returned when no recognizable payload shape is present.
type MalformedRequestError struct {
	Reason string
}

func (e *MalformedRequestError) Error() string {
	if e.Reason == "" {
		return "Malformed request: missing required fields"
	}
	return "Malformed request: " + e.Reason
}

func (e *MalformedRequestError) ClientError() bool { return true }

// UnsupportedIndicatorError is returned when the payload shape is valid but
// the indicator is not available for it.
type UnsupportedIndicatorError struct {
	Indicator string
	Shape     string
}

func (e *UnsupportedIndicatorError) Error() string {
	return fmt.Sprintf("Unsupported %s indicator '%s'", e.Shape, e.Indicator)
}

func (e *UnsupportedIndicatorError) ClientError() bool { return true }

// InsufficientDataError is returned when an array is shorter than the
// indicator's minimum.
type InsufficientDataError struct {
	Field  string
	Need   int
	Got    int
	Detail string
}

func (e *InsufficientDataError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("%s must contain at least %d values, got %d", e.Field, e.Need, e.Got)
}

func (e *InsufficientDataError) ClientError() bool { return true }

// InvalidInputError is returned for values that make a calculation undefined
// (zero base price, out-of-range parameter, ragged arrays).
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) ClientError() bool { return true }

// InsufficientReturnsError is returned when fewer than two clean return
// observations can be derived for the metrics battery.
type InsufficientReturnsError struct {
	Got int
}

func (e *InsufficientReturnsError) Error() string {
	return "Provide at least two clean return observations or equity points."
}

func (e *InsufficientReturnsError) ClientError() bool { return true }
