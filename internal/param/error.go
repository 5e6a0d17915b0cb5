package param

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter is matched by every Error returned from the validators below.
var ErrInvalidParameter = errors.New("invalid parameter")

// Error describes a single out-of-range or malformed parameter.
type Error struct {
	Name   string  // Parameter name as exposed to the caller
	Value  float64 // Offending value
	Reason string  // Human readable constraint, e.g. "must be > 0"
}

func NewError(name string, value float64, reason string) *Error {
	return &Error{Name: name, Value: value, Reason: reason}
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid parameter %s=%g: %s", e.Name, e.Value, e.Reason)
}

func (e *Error) Unwrap() error {
	return ErrInvalidParameter
}

// Positive requires a finite value strictly greater than zero.
func Positive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NewError(name, v, "must be finite")
	}
	if v <= 0 {
		return NewError(name, v, "must be > 0")
	}
	return nil
}

// NonNegative requires a finite value greater than or equal to zero.
func NonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NewError(name, v, "must be finite")
	}
	if v < 0 {
		return NewError(name, v, "must be >= 0")
	}
	return nil
}

// Finite rejects NaN and infinities.
func Finite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NewError(name, v, "must be finite")
	}
	return nil
}

// HalfOpenUnit requires v in (0, 1].
func HalfOpenUnit(name string, v float64) error {
	if math.IsNaN(v) || v <= 0 || v > 1 {
		return NewError(name, v, "must be in (0, 1]")
	}
	return nil
}

// Between requires v in [lo, hi].
func Between(name string, v, lo, hi float64) error {
	if math.IsNaN(v) || v < lo || v > hi {
		return NewError(name, v, fmt.Sprintf("must be in [%g, %g]", lo, hi))
	}
	return nil
}

// AtLeast requires an integer count of at least min.
func AtLeast(name string, v, min int) error {
	if v < min {
		return NewError(name, float64(v), fmt.Sprintf("must be >= %d", min))
	}
	return nil
}
