package stability

import (
	"math"
	"testing"

	"github.com/marinetools/loadicator/pkg/errors"
	"github.com/marinetools/loadicator/pkg/hydro"
)

const eps = 1e-12

// testModel builds a small model with a 0° column so the gz == kn identity
// at zero heel can be exercised.
func testModel(t *testing.T) *hydro.TableModel {
	t.Helper()

	ht, err := hydro.NewHydrostaticTable(
		[]float64{2.0, 4.0, 6.0, 8.0},
		[]float64{10000, 20000, 32000, 46000},
	)
	if err != nil {
		t.Fatalf("NewHydrostaticTable: %v", err)
	}

	ct, err := hydro.NewCrossCurveTable(
		[]float64{10000, 30000, 50000},
		[]float64{0, 10, 20, 30},
		[][]float64{
			{0.2, 0.4, 0.6},
			{0.5, 1.0, 1.5},
			{1.0, 2.0, 3.0},
			{1.4, 2.8, 4.2},
		},
	)
	if err != nil {
		t.Fatalf("NewCrossCurveTable: %v", err)
	}

	return hydro.NewTableModel(hydro.Particulars{"Ship Name": "MV Test"}, ht, ct)
}

func TestEstimateKG(t *testing.T) {
	e := NewEngine(testModel(t), KGConfig{})

	tests := []struct {
		name   string
		loadKg float64
		draftM float64
		want   float64
	}{
		{"no load", 0, 6.0, 2.7},
		{"500 tonnes", 500_000, 5.5, 2.5},
		{"2000 tonnes", 2_000_000, 4.0, 1.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.EstimateKG(tt.loadKg, tt.draftM)
			if math.Abs(got-tt.want) > eps {
				t.Errorf("EstimateKG(%v, %v) = %v, want %v", tt.loadKg, tt.draftM, got, tt.want)
			}
		})
	}
}

func TestEstimateKGCustomConfig(t *testing.T) {
	e := NewEngine(testModel(t), KGConfig{BaseFactor: 0.5, LoadAdjustment: 0.1})
	got := e.EstimateKG(1_000_000, 6.0)
	if math.Abs(got-3.1) > eps {
		t.Errorf("EstimateKG with custom config = %v, want 3.1", got)
	}
}

func TestBuildGZCurveZeroHeel(t *testing.T) {
	e := NewEngine(testModel(t), KGConfig{})

	// At 0° heel sin is zero, so gz must equal kn for any draft/KG pair.
	for _, kg := range []float64{0.5, 2.0, 7.5} {
		curve, displacement, err := e.BuildGZCurve(4.0, kg, nil)
		if err != nil {
			t.Fatalf("BuildGZCurve: %v", err)
		}
		kn, err := e.Model().KNAt(displacement, 0)
		if err != nil {
			t.Fatalf("KNAt: %v", err)
		}
		if math.Abs(curve[0].GZ-kn) > eps {
			t.Errorf("kg=%v: gz at 0° = %v, want kn %v", kg, curve[0].GZ, kn)
		}
	}
}

func TestBuildGZCurve(t *testing.T) {
	e := NewEngine(testModel(t), KGConfig{})

	kg := 2.0
	curve, displacement, err := e.BuildGZCurve(4.0, kg, nil)
	if err != nil {
		t.Fatalf("BuildGZCurve: %v", err)
	}
	if displacement != 20000 {
		t.Errorf("displacement = %v, want 20000", displacement)
	}
	if len(curve) != 4 {
		t.Fatalf("curve length = %d, want 4", len(curve))
	}

	// Points follow the model's ascending angle order and the GZ identity.
	wantAngles := []float64{0, 10, 20, 30}
	for i, p := range curve {
		if p.HeelAngle != wantAngles[i] {
			t.Errorf("point %d angle = %v, want %v", i, p.HeelAngle, wantAngles[i])
		}
		kn, err := e.Model().KNAt(displacement, p.HeelAngle)
		if err != nil {
			t.Fatalf("KNAt: %v", err)
		}
		want := kn - kg*math.Sin(p.HeelAngle*math.Pi/180)
		if math.Abs(p.GZ-want) > eps {
			t.Errorf("point %d gz = %v, want %v", i, p.GZ, want)
		}
	}
}

func TestBuildGZCurvePreservesSuppliedAngleOrder(t *testing.T) {
	e := NewEngine(testModel(t), KGConfig{})

	curve, _, err := e.BuildGZCurve(4.0, 2.0, []float64{20, 0, 30})
	if err != nil {
		t.Fatalf("BuildGZCurve: %v", err)
	}
	got := []float64{curve[0].HeelAngle, curve[1].HeelAngle, curve[2].HeelAngle}
	if got[0] != 20 || got[1] != 0 || got[2] != 30 {
		t.Errorf("angle order = %v, want [20 0 30]", got)
	}
}

func TestBuildGZCurveRangeFailures(t *testing.T) {
	e := NewEngine(testModel(t), KGConfig{})

	if curve, _, err := e.BuildGZCurve(9.0, 2.0, nil); !errors.Is(err, errors.ErrCodeRangeDraft) || curve != nil {
		t.Errorf("draft out of range: curve=%v err=%v, want nil curve and RANGE_DRAFT", curve, err)
	}
	if curve, _, err := e.BuildGZCurve(4.0, 2.0, []float64{45}); !errors.Is(err, errors.ErrCodeRangeAngle) || curve != nil {
		t.Errorf("angle out of range: curve=%v err=%v, want nil curve and RANGE_ANGLE", curve, err)
	}
}

func TestEvaluate(t *testing.T) {
	e := NewEngine(testModel(t), KGConfig{})

	res, err := e.Evaluate(LoadingCondition{DraftM: 4.0, LoadKg: 500_000}, nil)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if res.ShipName != "MV Test" {
		t.Errorf("ShipName = %q", res.ShipName)
	}
	if res.Displacement != 20000 {
		t.Errorf("Displacement = %v, want 20000", res.Displacement)
	}
	wantKG := 0.45*4.0 + 0.5*0.05
	if math.Abs(res.KG-wantKG) > eps {
		t.Errorf("KG = %v, want %v", res.KG, wantKG)
	}
	if len(res.Curve) != 4 {
		t.Errorf("curve length = %d, want 4", len(res.Curve))
	}
	if res.Summary.Displacement != res.Displacement || res.Summary.KG != res.KG {
		t.Errorf("summary not derived from result values: %+v", res.Summary)
	}
}

func TestEvaluateValidatesFirst(t *testing.T) {
	e := NewEngine(testModel(t), KGConfig{})

	res, err := e.Evaluate(LoadingCondition{DraftM: 1.0, LoadKg: 0}, nil)
	if res != nil {
		t.Error("no result may be returned when validation fails")
	}
	if !errors.Is(err, errors.ErrCodeValidation) {
		t.Errorf("error = %v, want VALIDATION_INPUT", err)
	}
}

func TestFeetToMeters(t *testing.T) {
	if got := FeetToMeters(1); got != 0.3048 {
		t.Errorf("FeetToMeters(1) = %v, want 0.3048", got)
	}
	if got := FeetToMeters(10); math.Abs(got-3.048) > eps {
		t.Errorf("FeetToMeters(10) = %v, want 3.048", got)
	}
	if got := FeetToMeters(0); got != 0 {
		t.Errorf("FeetToMeters(0) = %v, want 0", got)
	}
}
