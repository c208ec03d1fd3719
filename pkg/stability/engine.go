// Package stability computes righting-arm (GZ) curves and summary stability
// metrics from a loaded [hydro.TableModel].
//
// The computation is pure and synchronous: given a draft and a cargo load it
// estimates KG, reads KN values from the cross curves, and produces
// GZ = KN − KG·sin(heel) per tabulated heel angle. Either the full curve and
// summary are produced or an error is returned before any point is emitted;
// there are no partial results. An [Engine] holds only read-only state and
// may be shared across goroutines.
package stability

import (
	"math"

	"github.com/marinetools/loadicator/pkg/hydro"
)

// metersPerFoot is the exact international foot conversion factor.
const metersPerFoot = 0.3048

// KGConfig holds the constants of the simplified vertical center of gravity
// estimate. Real KG requires compartment-level moment accounting; this proxy
// is a documented behavioral contract of the tool, not a hidden shortcut.
type KGConfig struct {
	// BaseFactor is the base KG as a fraction of draft. Typical KG for a
	// cargo ship sits around 0.45-0.55 of the draft.
	BaseFactor float64

	// LoadAdjustment is the KG increase in meters per 1000 tonnes of cargo,
	// assuming cargo stowed relatively low in the ship.
	LoadAdjustment float64
}

// DefaultKGConfig returns the standard constants of the KG estimate.
func DefaultKGConfig() KGConfig {
	return KGConfig{BaseFactor: 0.45, LoadAdjustment: 0.05}
}

// LoadingCondition is the per-request input: a draft and a cargo load.
type LoadingCondition struct {
	DraftM float64 // draft in meters
	LoadKg float64 // cargo load in kilograms
}

// GZPoint is one point of a righting-arm curve.
type GZPoint struct {
	HeelAngle float64 `json:"heel_angle"` // degrees
	GZ        float64 `json:"gz"`         // meters
}

// GZCurve is an ordered righting-arm curve, one point per heel angle in the
// order the angles were supplied (ascending when defaulted from the table).
type GZCurve []GZPoint

// Result bundles everything one evaluation produces, sufficient for a chart
// and a tabular report with no further computation.
type Result struct {
	Condition    LoadingCondition `json:"condition"`
	ShipName     string           `json:"ship_name"`
	Displacement float64          `json:"displacement_tonnes"`
	KG           float64          `json:"kg_meters"`
	Curve        GZCurve          `json:"curve"`
	Summary      Summary          `json:"summary"`
}

// Engine computes GZ curves against one table model. It holds no mutable
// state; one Engine can serve concurrent evaluations.
type Engine struct {
	model *hydro.TableModel
	kg    KGConfig
}

// NewEngine creates an engine over a loaded model. A zero KGConfig selects
// the defaults.
func NewEngine(model *hydro.TableModel, cfg KGConfig) *Engine {
	if cfg == (KGConfig{}) {
		cfg = DefaultKGConfig()
	}
	return &Engine{model: model, kg: cfg}
}

// Model returns the table model the engine computes against.
func (e *Engine) Model() *hydro.TableModel { return e.model }

// EstimateKG estimates the vertical center of gravity in meters from the
// cargo load and draft: KG = BaseFactor·draft + (load/1e6)·LoadAdjustment.
func (e *Engine) EstimateKG(loadKg, draftM float64) float64 {
	return e.kg.BaseFactor*draftM + (loadKg/1_000_000)*e.kg.LoadAdjustment
}

// BuildGZCurve computes the righting arm at each heel angle for the given
// draft and KG. A nil angles slice defaults to the model's tabulated angles.
// The returned displacement is the interpolated value used for the KN
// lookups. Any range failure aborts the build with no partial curve.
func (e *Engine) BuildGZCurve(draftM, kg float64, angles []float64) (GZCurve, float64, error) {
	displacement, err := e.model.DisplacementAt(draftM)
	if err != nil {
		return nil, 0, err
	}
	if len(angles) == 0 {
		angles = e.model.HeelAngles()
	}

	curve := make(GZCurve, 0, len(angles))
	for _, angle := range angles {
		kn, err := e.model.KNAt(displacement, angle)
		if err != nil {
			return nil, 0, err
		}
		gz := kn - kg*math.Sin(angle*math.Pi/180)
		curve = append(curve, GZPoint{HeelAngle: angle, GZ: gz})
	}
	return curve, displacement, nil
}

// Evaluate runs the full computation for one loading condition: estimate KG,
// validate, build the curve, and summarize. angles may be nil to use the
// model's tabulated set.
func (e *Engine) Evaluate(cond LoadingCondition, angles []float64) (*Result, error) {
	kg := e.EstimateKG(cond.LoadKg, cond.DraftM)
	if err := ValidateInput(e.model, cond.DraftM, kg); err != nil {
		return nil, err
	}

	curve, displacement, err := e.BuildGZCurve(cond.DraftM, kg, angles)
	if err != nil {
		return nil, err
	}

	return &Result{
		Condition:    cond,
		ShipName:     e.model.ShipName(),
		Displacement: displacement,
		KG:           kg,
		Curve:        curve,
		Summary:      Summarize(curve, displacement, kg),
	}, nil
}

// FeetToMeters converts a draft entered in feet.
func FeetToMeters(feet float64) float64 {
	return feet * metersPerFoot
}
