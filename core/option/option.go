package option

import (
	"math"
	"strconv"
)

// Float64T is an option type for float64. It is used for layout factors which
// may or may not be given by a client, e.g. ruby offset and ruby scale.
// An unset value is represented as NaN.
type Float64T float64

// SomeFloat64 creates an optional float64 with an initial value of x.
func SomeFloat64(x float64) Float64T {
	return Float64T(x)
}

// Float64 creates an optional float64 without an initial value.
func Float64() Float64T {
	return Float64T(math.NaN())
}

// Unwrap returns the float value. For unset options it returns NaN.
func (o Float64T) Unwrap() float64 {
	return float64(o)
}

// Get returns the float value and true, or 0 and false if o is unset.
func (o Float64T) Get() (float64, bool) {
	if o.IsNone() {
		return 0, false
	}
	return float64(o), true
}

// IsNone returns true if o is unset.
func (o Float64T) IsNone() bool {
	return math.IsNaN(float64(o))
}

// Equals is true if both options are unset or both hold the same value.
func (o Float64T) Equals(other Float64T) bool {
	if o.IsNone() || other.IsNone() {
		return o.IsNone() == other.IsNone()
	}
	return o == other
}

// OrElse returns o if it is set, alt otherwise.
func (o Float64T) OrElse(alt Float64T) Float64T {
	if o.IsNone() {
		return alt
	}
	return o
}

func (o Float64T) String() string {
	if o.IsNone() {
		return "Float64.None"
	}
	return strconv.FormatFloat(float64(o), 'g', -1, 64)
}
