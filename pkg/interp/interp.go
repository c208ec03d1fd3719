// Package interp implements the linear table lookups behind the stability
// engine.
//
// Two lookups are provided: Linear, a 1D piecewise-linear interpolation over
// a strictly increasing axis, and CrossCurve, a separable bilinear lookup
// over a displacement axis and a set of heel-angle columns. Both refuse to
// extrapolate: a query outside the tabulated domain returns an
// [*OutOfRangeError] rather than a clamped value.
//
// The package is deliberately free of domain types; callers own axis
// validation (strictly increasing, aligned lengths) at table construction
// time so queries never re-check it.
package interp

import "fmt"

// Axis names used in OutOfRangeError, matching the table dimension that a
// query fell outside of.
const (
	AxisX            = "x"
	AxisDisplacement = "displacement"
	AxisAngle        = "angle"
)

// OutOfRangeError reports a lookup outside the tabulated domain.
// Values are never clamped or extrapolated.
type OutOfRangeError struct {
	Axis     string  // which axis the value fell outside of
	Value    float64 // the attempted value
	Min, Max float64 // the valid bounds
}

// Error implements the error interface.
func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s %g is outside valid range [%g, %g]", e.Axis, e.Value, e.Min, e.Max)
}

// Linear interpolates y at x over the tabulated points (xs, ys).
//
// xs must be strictly increasing with len(xs) == len(ys) >= 2; this is the
// caller's invariant and is not re-validated here. An exact hit on a
// tabulated x returns that row's y with no arithmetic. Queries outside
// [xs[0], xs[len-1]] fail with *OutOfRangeError on AxisX.
func Linear(x float64, xs, ys []float64) (float64, error) {
	last := len(xs) - 1
	if x < xs[0] || x > xs[last] {
		return 0, &OutOfRangeError{Axis: AxisX, Value: x, Min: xs[0], Max: xs[last]}
	}

	// Find the bracketing pair. Tables here are tens of rows, so a linear
	// scan beats binary search bookkeeping.
	for i, xi := range xs {
		if x == xi {
			return ys[i], nil
		}
		if x < xi {
			t := (x - xs[i-1]) / (xi - xs[i-1])
			return ys[i-1] + t*(ys[i]-ys[i-1]), nil
		}
	}
	return ys[last], nil // unreachable given the bounds check
}

// CrossCurve performs a separable bilinear lookup of KN at (displacement,
// angle).
//
// axis is the strictly increasing displacement axis; angles is the ascending
// list of tabulated heel angles; columns[i] holds the KN values for
// angles[i], aligned to axis. The scheme brackets the angle, runs Linear
// along the displacement axis on each bracketing column, then blends by the
// fractional angle position. An exact angle match uses that column verbatim
// with no cross-angle blending.
//
// Queries outside the angle or displacement bounds fail with
// *OutOfRangeError naming the offending axis.
func CrossCurve(displacement, angle float64, axis, angles []float64, columns [][]float64) (float64, error) {
	last := len(angles) - 1
	if angle < angles[0] || angle > angles[last] {
		return 0, &OutOfRangeError{Axis: AxisAngle, Value: angle, Min: angles[0], Max: angles[last]}
	}

	// Bracket the angle: low is the greatest tabulated angle <= angle,
	// high the least tabulated angle >= angle.
	lo, hi := 0, last
	for i, a := range angles {
		if a <= angle {
			lo = i
		}
		if a >= angle {
			hi = i
			break
		}
	}

	knLow, err := Linear(displacement, axis, columns[lo])
	if err != nil {
		return 0, displacementRange(err)
	}
	if lo == hi {
		return knLow, nil
	}

	knHigh, err := Linear(displacement, axis, columns[hi])
	if err != nil {
		return 0, displacementRange(err)
	}

	t := (angle - angles[lo]) / (angles[hi] - angles[lo])
	return knLow + t*(knHigh-knLow), nil
}

// displacementRange relabels a Linear range failure as a displacement-axis
// failure so callers see the table dimension, not the generic x axis.
func displacementRange(err error) error {
	if oor, ok := err.(*OutOfRangeError); ok {
		return &OutOfRangeError{Axis: AxisDisplacement, Value: oor.Value, Min: oor.Min, Max: oor.Max}
	}
	return err
}
