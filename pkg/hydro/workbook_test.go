package hydro

import (
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/marinetools/loadicator/pkg/errors"
)

// buildWorkbook assembles an in-memory xlsx from per-sheet rows, in the shape
// the loader expects. Sheets map iteration order doesn't matter to the loader.
func buildWorkbook(t *testing.T, sheets map[string][][]any) *excelize.File {
	t.Helper()
	f := excelize.NewFile()

	first := true
	for name, rows := range sheets {
		if first {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
			first = false
		} else if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("new sheet %q: %v", name, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			r := row
			if err := f.SetSheetRow(name, cell, &r); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}
	return f
}

// loadFromFile round-trips an excelize file through the byte loader.
func loadFromFile(t *testing.T, f *excelize.File) (*TableModel, error) {
	t.Helper()
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("serialize workbook: %v", err)
	}
	return LoadWorkbook(buf)
}

// validSheets returns a minimal well-formed workbook definition that tests
// mutate to produce specific failures.
func validSheets(knLabels []string) map[string][][]any {
	knHeader := []any{"Displacement (tonnes)"}
	for _, l := range knLabels {
		knHeader = append(knHeader, l)
	}
	return map[string][][]any{
		SheetParticulars: {
			{"Parameter", "Value", "Unit"},
			{"Ship Name", "MV Fixture", ""},
			{"Breadth", "20.0", "m"},
		},
		SheetDisplacement: {
			{"Draft (m)", "Displacement (tonnes)"},
			{2.0, 10000.0},
			{4.0, 20000.0},
			{6.0, 32000.0},
		},
		SheetKNCurves: {
			knHeader,
			{10000.0, 0.5, 1.0},
			{30000.0, 1.0, 2.0},
		},
	}
}

func TestLoadWorkbook(t *testing.T) {
	f := buildWorkbook(t, validSheets([]string{"KN at 10°", "KN at 20°"}))
	m, err := loadFromFile(t, f)
	if err != nil {
		t.Fatalf("LoadWorkbook: %v", err)
	}

	if m.ShipName() != "MV Fixture" {
		t.Errorf("ShipName = %q", m.ShipName())
	}
	if min, max := m.DraftRange(); min != 2.0 || max != 6.0 {
		t.Errorf("DraftRange = (%v, %v), want (2, 6)", min, max)
	}
	angles := m.HeelAngles()
	if len(angles) != 2 || angles[0] != 10 || angles[1] != 20 {
		t.Errorf("HeelAngles = %v, want [10 20]", angles)
	}
	if kn, err := m.KNAt(10000, 20); err != nil || kn != 1.0 {
		t.Errorf("KNAt(10000, 20) = %v, %v; want 1, nil", kn, err)
	}
}

func TestLoadWorkbookLabelConventionsEquivalent(t *testing.T) {
	prefixed := buildWorkbook(t, validSheets([]string{"KN at 10°", "KN at 20°"}))
	bare := buildWorkbook(t, validSheets([]string{"10°", "20°"}))

	mp, err := loadFromFile(t, prefixed)
	if err != nil {
		t.Fatalf("prefixed convention: %v", err)
	}
	mb, err := loadFromFile(t, bare)
	if err != nil {
		t.Fatalf("bare convention: %v", err)
	}

	ap, ab := mp.HeelAngles(), mb.HeelAngles()
	if len(ap) != len(ab) {
		t.Fatalf("angle counts differ: %v vs %v", ap, ab)
	}
	for i := range ap {
		if ap[i] != ab[i] {
			t.Errorf("angle %d differs: %v vs %v", i, ap[i], ab[i])
		}
	}
}

func TestLoadWorkbookSchemaErrors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(map[string][][]any)
		wantCode errors.Code
	}{
		{
			"missing KN sheet",
			func(s map[string][][]any) { delete(s, SheetKNCurves) },
			errors.ErrCodeSchemaMissingSheet,
		},
		{
			"missing displacement sheet",
			func(s map[string][][]any) { delete(s, SheetDisplacement) },
			errors.ErrCodeSchemaMissingSheet,
		},
		{
			"missing draft column",
			func(s map[string][][]any) { s[SheetDisplacement][0][0] = "Depth (m)" },
			errors.ErrCodeSchemaMissingColumn,
		},
		{
			"missing KN displacement column",
			func(s map[string][][]any) { s[SheetKNCurves][0][0] = "Tonnage" },
			errors.ErrCodeSchemaMissingColumn,
		},
		{
			"unparsable angle label",
			func(s map[string][][]any) { s[SheetKNCurves][0][1] = "KN at x°" },
			errors.ErrCodeSchemaBadLabel,
		},
		{
			"non-numeric draft",
			func(s map[string][][]any) { s[SheetDisplacement][1][0] = "two" },
			errors.ErrCodeSchemaBadValue,
		},
		{
			"non-numeric KN value",
			func(s map[string][][]any) { s[SheetKNCurves][2][2] = "n/a" },
			errors.ErrCodeSchemaBadValue,
		},
		{
			"non-increasing draft axis",
			func(s map[string][][]any) { s[SheetDisplacement][2][0] = 2.0 },
			errors.ErrCodeSchemaBadTable,
		},
		{
			"duplicate angle after normalization",
			func(s map[string][][]any) { s[SheetKNCurves][0][2] = "10°" },
			errors.ErrCodeSchemaBadTable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheets := validSheets([]string{"KN at 10°", "KN at 20°"})
			tt.mutate(sheets)
			f := buildWorkbook(t, sheets)
			m, err := loadFromFile(t, f)
			if m != nil {
				t.Error("no partial model may be returned on schema failure")
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("error = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestLoadWorkbookDefaultsShipName(t *testing.T) {
	sheets := validSheets([]string{"KN at 10°", "KN at 20°"})
	sheets[SheetParticulars] = [][]any{{"Parameter", "Value", "Unit"}}
	f := buildWorkbook(t, sheets)
	m, err := loadFromFile(t, f)
	if err != nil {
		t.Fatalf("LoadWorkbook: %v", err)
	}
	if m.ShipName() != UnknownShipName {
		t.Errorf("ShipName = %q, want %q", m.ShipName(), UnknownShipName)
	}
}

func TestSampleWorkbookRoundTrip(t *testing.T) {
	f, err := SampleWorkbook()
	if err != nil {
		t.Fatalf("SampleWorkbook: %v", err)
	}
	m, err := loadFromFile(t, f)
	if err != nil {
		t.Fatalf("LoadWorkbook(sample): %v", err)
	}

	if m.ShipName() != "MV Del Monte" {
		t.Errorf("ShipName = %q, want MV Del Monte", m.ShipName())
	}
	if min, max := m.DraftRange(); min != 2.0 || max != 14.0 {
		t.Errorf("DraftRange = (%v, %v), want (2, 14)", min, max)
	}
	angles := m.HeelAngles()
	if len(angles) != 11 || angles[0] != 10 || angles[len(angles)-1] != 60 {
		t.Errorf("HeelAngles = %v, want 10..60 step 5", angles)
	}

	// A mid-range condition must be computable end to end.
	disp, err := m.DisplacementAt(5.5)
	if err != nil {
		t.Fatalf("DisplacementAt(5.5): %v", err)
	}
	if _, err := m.KNAt(disp, 30); err != nil {
		t.Errorf("KNAt(%v, 30): %v", disp, err)
	}
}

func TestWriteSampleWorkbookFile(t *testing.T) {
	path := t.TempDir() + "/ship.xlsx"
	if err := WriteSampleWorkbook(path); err != nil {
		t.Fatalf("WriteSampleWorkbook: %v", err)
	}
	m, err := LoadWorkbookFile(path)
	if err != nil {
		t.Fatalf("LoadWorkbookFile: %v", err)
	}
	if m.ShipName() != "MV Del Monte" {
		t.Errorf("ShipName = %q", m.ShipName())
	}
}
