package stability

import "gonum.org/v1/gonum/floats"

// areaIntegrationLimitDeg is the upper heel angle of the righting-energy
// integral. The IMO criterion references the area under the GZ curve up to
// 30 degrees of heel.
const areaIntegrationLimitDeg = 30.0

// Summary holds the derived scalar metrics of one GZ curve.
type Summary struct {
	Displacement float64 `json:"displacement_tonnes"`
	KG           float64 `json:"kg_meters"`
	MaxGZ        float64 `json:"max_gz_meters"`
	MaxGZAngle   float64 `json:"max_gz_angle_degrees"`

	// AreaUnder30Deg is the trapezoidal integral of GZ in meter-degrees over
	// consecutive angle pairs whose BOTH endpoints are at most 30°. Segments
	// straddling 30° are excluded entirely, not clipped; this boundary
	// policy is a behavioral contract carried over from the source data.
	AreaUnder30Deg float64 `json:"area_under_curve_30deg"`

	// VanishingAngle is the first tabulated angle, scanning the curve in
	// order, whose GZ is negative - a lower-bound estimate limited by the
	// discrete angle set, not a root of GZ=0. Nil when the curve never goes
	// negative within its domain.
	VanishingAngle *float64 `json:"vanishing_angle_degrees,omitempty"`
}

// Summarize derives the summary metrics from a computed curve. The curve
// must be non-empty; displacement and kg are recorded as-is for reporting.
func Summarize(curve GZCurve, displacement, kg float64) Summary {
	gz := make([]float64, len(curve))
	for i, p := range curve {
		gz[i] = p.GZ
	}

	// First occurrence wins on ties.
	maxIdx := floats.MaxIdx(gz)

	s := Summary{
		Displacement: displacement,
		KG:           kg,
		MaxGZ:        curve[maxIdx].GZ,
		MaxGZAngle:   curve[maxIdx].HeelAngle,
	}

	for _, p := range curve {
		if p.GZ < 0 {
			angle := p.HeelAngle
			s.VanishingAngle = &angle
			break
		}
	}

	for i := 0; i < len(curve)-1; i++ {
		a, b := curve[i], curve[i+1]
		if a.HeelAngle <= areaIntegrationLimitDeg && b.HeelAngle <= areaIntegrationLimitDeg {
			s.AreaUnder30Deg += (a.GZ + b.GZ) / 2 * (b.HeelAngle - a.HeelAngle)
		}
	}

	return s
}
