// Package hydro holds the validated, immutable hydrostatic datasets that the
// stability engine computes against.
//
// A [TableModel] bundles three tables loaded from a ship data workbook: the
// ship particulars (display metadata), the draft to displacement table, and
// the KN cross-curve grid. All structural invariants - strictly increasing
// axes, aligned column lengths, distinct heel angles - are enforced once at
// construction, so lookups are pure reads. A loaded model is safe to share
// across concurrent computations without locking.
package hydro

import (
	"math"
	"slices"

	"github.com/marinetools/loadicator/pkg/errors"
	"github.com/marinetools/loadicator/pkg/interp"
)

// UnknownShipName is reported when the particulars carry no "Ship Name" row.
const UnknownShipName = "Unknown"

// shipNameParameter is the particulars row holding the vessel's display name.
const shipNameParameter = "Ship Name"

// =============================================================================
// Particulars
// =============================================================================

// Particulars maps parameter names to their values as read from the ship
// particulars sheet. It is display metadata only; nothing is computed from it.
type Particulars map[string]string

// ShipName returns the vessel name, or [UnknownShipName] if absent.
func (p Particulars) ShipName() string {
	if name, ok := p[shipNameParameter]; ok && name != "" {
		return name
	}
	return UnknownShipName
}

// Get returns the value for a named parameter.
func (p Particulars) Get(name string) (string, bool) {
	v, ok := p[name]
	return v, ok
}

// Names returns the parameter names in sorted order.
func (p Particulars) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// =============================================================================
// HydrostaticTable
// =============================================================================

// HydrostaticTable is the draft to displacement table: ordered (draft,
// displacement) pairs with a strictly increasing draft axis. Immutable after
// construction.
type HydrostaticTable struct {
	drafts        []float64 // meters, strictly increasing
	displacements []float64 // tonnes, aligned to drafts
}

// NewHydrostaticTable validates and builds a hydrostatic table. The input
// slices are copied; drafts must be strictly increasing with at least two
// rows and displacements must align.
func NewHydrostaticTable(drafts, displacements []float64) (*HydrostaticTable, error) {
	if len(drafts) < 2 {
		return nil, errors.New(errors.ErrCodeSchemaBadTable,
			"displacement table needs at least 2 rows, got %d", len(drafts))
	}
	if len(drafts) != len(displacements) {
		return nil, errors.New(errors.ErrCodeSchemaBadTable,
			"displacement table misaligned: %d drafts vs %d displacements",
			len(drafts), len(displacements))
	}
	if err := checkStrictlyIncreasing(drafts, "draft"); err != nil {
		return nil, err
	}
	return &HydrostaticTable{
		drafts:        slices.Clone(drafts),
		displacements: slices.Clone(displacements),
	}, nil
}

// DraftRange returns the valid [min, max] draft bounds in meters.
func (t *HydrostaticTable) DraftRange() (min, max float64) {
	return t.drafts[0], t.drafts[len(t.drafts)-1]
}

// DisplacementAt interpolates the displacement in tonnes for a draft in
// meters. Drafts outside the table's range fail with a RANGE_DRAFT error;
// there is no extrapolation.
func (t *HydrostaticTable) DisplacementAt(draft float64) (float64, error) {
	d, err := interp.Linear(draft, t.drafts, t.displacements)
	if err != nil {
		min, max := t.DraftRange()
		return 0, errors.New(errors.ErrCodeRangeDraft,
			"draft %gm is outside valid range [%g, %g]m", draft, min, max)
	}
	return d, nil
}

// Len returns the number of rows in the table.
func (t *HydrostaticTable) Len() int { return len(t.drafts) }

// =============================================================================
// CrossCurveTable
// =============================================================================

// CrossCurveTable is the KN grid: a strictly increasing displacement axis
// and one KN column per tabulated heel angle. Columns are held in ascending
// angle order regardless of the order they were supplied in. Immutable after
// construction.
type CrossCurveTable struct {
	displacements []float64   // tonnes, strictly increasing
	angles        []float64   // degrees, ascending, distinct
	columns       [][]float64 // columns[i] is KN for angles[i], aligned to displacements
}

// NewCrossCurveTable validates and builds a cross-curve table. Angles must be
// distinct and non-empty; every column must align with the displacement axis.
// Columns are sorted into ascending angle order.
func NewCrossCurveTable(displacements, angles []float64, columns [][]float64) (*CrossCurveTable, error) {
	if len(angles) == 0 {
		return nil, errors.New(errors.ErrCodeSchemaBadTable, "KN curves have no heel angle columns")
	}
	if len(angles) != len(columns) {
		return nil, errors.New(errors.ErrCodeSchemaBadTable,
			"KN curves misaligned: %d angles vs %d columns", len(angles), len(columns))
	}
	if len(displacements) < 2 {
		return nil, errors.New(errors.ErrCodeSchemaBadTable,
			"KN displacement axis needs at least 2 rows, got %d", len(displacements))
	}
	if err := checkStrictlyIncreasing(displacements, "displacement"); err != nil {
		return nil, err
	}
	for i, col := range columns {
		if len(col) != len(displacements) {
			return nil, errors.New(errors.ErrCodeSchemaBadTable,
				"KN column for %g° has %d values, displacement axis has %d",
				angles[i], len(col), len(displacements))
		}
	}

	t := &CrossCurveTable{
		displacements: slices.Clone(displacements),
		angles:        slices.Clone(angles),
		columns:       make([][]float64, len(columns)),
	}
	for i, col := range columns {
		t.columns[i] = slices.Clone(col)
	}

	// Keep columns in ascending angle order so lookups never sort.
	order := make([]int, len(t.angles))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		switch {
		case t.angles[a] < t.angles[b]:
			return -1
		case t.angles[a] > t.angles[b]:
			return 1
		default:
			return 0
		}
	})
	sortedAngles := make([]float64, len(order))
	sortedColumns := make([][]float64, len(order))
	for i, idx := range order {
		sortedAngles[i] = t.angles[idx]
		sortedColumns[i] = t.columns[idx]
	}
	t.angles = sortedAngles
	t.columns = sortedColumns

	for i := 1; i < len(t.angles); i++ {
		if t.angles[i] == t.angles[i-1] {
			return nil, errors.New(errors.ErrCodeSchemaBadTable,
				"duplicate heel angle column %g°", t.angles[i])
		}
	}
	return t, nil
}

// Angles returns the tabulated heel angles in ascending order.
func (t *CrossCurveTable) Angles() []float64 {
	return slices.Clone(t.angles)
}

// DisplacementRange returns the valid [min, max] displacement bounds in tonnes.
func (t *CrossCurveTable) DisplacementRange() (min, max float64) {
	return t.displacements[0], t.displacements[len(t.displacements)-1]
}

// KNAt looks up a KN value in meters for a displacement in tonnes and a heel
// angle in degrees. Queries outside the displacement or angle bounds fail
// with the matching RANGE_* error.
func (t *CrossCurveTable) KNAt(displacement, angle float64) (float64, error) {
	kn, err := interp.CrossCurve(displacement, angle, t.displacements, t.angles, t.columns)
	if err != nil {
		if oor, ok := err.(*interp.OutOfRangeError); ok {
			code := errors.ErrCodeRangeDisplacement
			unit := "t"
			if oor.Axis == interp.AxisAngle {
				code = errors.ErrCodeRangeAngle
				unit = "°"
			}
			return 0, errors.New(code, "%s %g%s is outside valid range [%g, %g]%s",
				oor.Axis, oor.Value, unit, oor.Min, oor.Max, unit)
		}
		return 0, err
	}
	return kn, nil
}

// =============================================================================
// TableModel
// =============================================================================

// TableModel is the immutable bundle of all three loaded tables. It is the
// explicit, caller-held handle that every computation runs against; there is
// no process-wide "current data file".
type TableModel struct {
	particulars Particulars
	hydrostatic *HydrostaticTable
	crossCurves *CrossCurveTable
}

// NewTableModel assembles a model from validated tables.
func NewTableModel(p Particulars, h *HydrostaticTable, c *CrossCurveTable) *TableModel {
	if p == nil {
		p = Particulars{}
	}
	return &TableModel{particulars: p, hydrostatic: h, crossCurves: c}
}

// ShipName returns the vessel name from the particulars, or "Unknown".
func (m *TableModel) ShipName() string { return m.particulars.ShipName() }

// Particulars returns the ship metadata.
func (m *TableModel) Particulars() Particulars { return m.particulars }

// DraftRange returns the valid [min, max] draft bounds in meters.
func (m *TableModel) DraftRange() (min, max float64) { return m.hydrostatic.DraftRange() }

// DisplacementAt interpolates displacement in tonnes for a draft in meters.
func (m *TableModel) DisplacementAt(draft float64) (float64, error) {
	return m.hydrostatic.DisplacementAt(draft)
}

// HeelAngles returns the tabulated heel angles in ascending order.
func (m *TableModel) HeelAngles() []float64 { return m.crossCurves.Angles() }

// DisplacementRange returns the [min, max] displacement bounds in tonnes
// covered by the cross curves.
func (m *TableModel) DisplacementRange() (min, max float64) {
	return m.crossCurves.DisplacementRange()
}

// KNAt looks up KN in meters at a displacement and heel angle.
func (m *TableModel) KNAt(displacement, angle float64) (float64, error) {
	return m.crossCurves.KNAt(displacement, angle)
}

// =============================================================================
// Helpers
// =============================================================================

// checkStrictlyIncreasing validates an axis for table construction.
func checkStrictlyIncreasing(xs []float64, name string) error {
	for i := 1; i < len(xs); i++ {
		if math.IsNaN(xs[i]) || xs[i] <= xs[i-1] {
			return errors.New(errors.ErrCodeSchemaBadTable,
				"%s axis must be strictly increasing: row %d (%g) after %g",
				name, i, xs[i], xs[i-1])
		}
	}
	if math.IsNaN(xs[0]) {
		return errors.New(errors.ErrCodeSchemaBadTable, "%s axis starts with NaN", name)
	}
	return nil
}
