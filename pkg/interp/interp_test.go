package interp

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-12

func TestLinear(t *testing.T) {
	xs := []float64{2.0, 4.0, 6.0, 8.0}
	ys := []float64{100, 200, 400, 800}

	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{"exact first row", 2.0, 100},
		{"exact middle row", 6.0, 400},
		{"exact last row", 8.0, 800},
		{"midpoint is arithmetic mean", 3.0, 150},
		{"quarter position", 4.5, 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Linear(tt.x, xs, ys)
			if err != nil {
				t.Fatalf("Linear(%v) error: %v", tt.x, err)
			}
			if math.Abs(got-tt.want) > eps {
				t.Errorf("Linear(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestLinearOutOfRange(t *testing.T) {
	xs := []float64{2.0, 4.0}
	ys := []float64{10, 20}

	for _, x := range []float64{1.999, 4.001, -5, 100} {
		_, err := Linear(x, xs, ys)
		if err == nil {
			t.Errorf("Linear(%v) should fail outside [2, 4]", x)
			continue
		}
		var oor *OutOfRangeError
		if !errors.As(err, &oor) {
			t.Errorf("Linear(%v) error type = %T, want *OutOfRangeError", x, err)
			continue
		}
		if oor.Value != x || oor.Min != 2.0 || oor.Max != 4.0 {
			t.Errorf("Linear(%v) error = %+v, want value and bounds carried", x, oor)
		}
	}
}

func TestLinearBoundariesSucceed(t *testing.T) {
	xs := []float64{2.0, 4.0}
	ys := []float64{10, 20}

	if got, err := Linear(2.0, xs, ys); err != nil || got != 10 {
		t.Errorf("Linear at min bound = %v, %v; want 10, nil", got, err)
	}
	if got, err := Linear(4.0, xs, ys); err != nil || got != 20 {
		t.Errorf("Linear at max bound = %v, %v; want 20, nil", got, err)
	}
}

func crossCurveFixture() (axis, angles []float64, columns [][]float64) {
	axis = []float64{1000, 2000, 3000}
	angles = []float64{10, 20, 30}
	columns = [][]float64{
		{0.5, 1.0, 1.5}, // 10 deg
		{1.0, 2.0, 3.0}, // 20 deg
		{1.5, 3.0, 4.5}, // 30 deg
	}
	return
}

func TestCrossCurveExactAngleMatch(t *testing.T) {
	axis, angles, columns := crossCurveFixture()

	// Exact angle match must use the column verbatim, independent of the
	// neighbouring columns' values.
	got, err := CrossCurve(1500, 20, axis, angles, columns)
	if err != nil {
		t.Fatalf("CrossCurve error: %v", err)
	}
	if math.Abs(got-1.5) > eps {
		t.Errorf("CrossCurve(1500, 20) = %v, want 1.5", got)
	}

	// Corrupt the neighbouring columns; an exact match must not change.
	columns[0] = []float64{999, 999, 999}
	columns[2] = []float64{-999, -999, -999}
	got, err = CrossCurve(1500, 20, axis, angles, columns)
	if err != nil {
		t.Fatalf("CrossCurve error: %v", err)
	}
	if math.Abs(got-1.5) > eps {
		t.Errorf("CrossCurve with corrupted neighbours = %v, want 1.5 (no blending)", got)
	}
}

func TestCrossCurveAngleBlend(t *testing.T) {
	axis, angles, columns := crossCurveFixture()

	// Halfway between the 10 and 20 degree columns at an exact axis point.
	got, err := CrossCurve(2000, 15, axis, angles, columns)
	if err != nil {
		t.Fatalf("CrossCurve error: %v", err)
	}
	if math.Abs(got-1.5) > eps {
		t.Errorf("CrossCurve(2000, 15) = %v, want 1.5", got)
	}

	// Off both axes: displacement 1500 -> columns give 0.75 and 1.5; at a
	// quarter of the way from 10 to 20 degrees the blend is 0.9375.
	got, err = CrossCurve(1500, 12.5, axis, angles, columns)
	if err != nil {
		t.Fatalf("CrossCurve error: %v", err)
	}
	if math.Abs(got-0.9375) > eps {
		t.Errorf("CrossCurve(1500, 12.5) = %v, want 0.9375", got)
	}
}

func TestCrossCurveOutOfRange(t *testing.T) {
	axis, angles, columns := crossCurveFixture()

	tests := []struct {
		name         string
		displacement float64
		angle        float64
		wantAxis     string
	}{
		{"angle below", 2000, 5, AxisAngle},
		{"angle above", 2000, 35, AxisAngle},
		{"displacement below", 500, 20, AxisDisplacement},
		{"displacement above", 5000, 20, AxisDisplacement},
		{"displacement above with blended angle", 5000, 15, AxisDisplacement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CrossCurve(tt.displacement, tt.angle, axis, angles, columns)
			var oor *OutOfRangeError
			if !errors.As(err, &oor) {
				t.Fatalf("error = %v, want *OutOfRangeError", err)
			}
			if oor.Axis != tt.wantAxis {
				t.Errorf("Axis = %q, want %q", oor.Axis, tt.wantAxis)
			}
		})
	}
}
