package hydro

import (
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/marinetools/loadicator/pkg/errors"
)

// Sheet and column names the loader expects in a ship data workbook.
const (
	SheetParticulars  = "Ship Particulars"
	SheetDisplacement = "Displacement Table"
	SheetKNCurves     = "KN Curves"

	columnDraft        = "Draft (m)"
	columnDisplacement = "Displacement (tonnes)"

	// The KN sheet's displacement column is matched by substring, as the
	// two workbook conventions name it slightly differently.
	displacementColumnMarker = "Displacement"
)

// LoadWorkbookFile loads a ship data workbook from an xlsx file on disk.
func LoadWorkbookFile(path string) (*TableModel, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSchemaBadTable, err, "open workbook %s", path)
	}
	defer f.Close()
	return loadWorkbook(f)
}

// LoadWorkbook loads a ship data workbook from an xlsx stream, e.g. an
// uploaded file. The whole stream is read before parsing.
func LoadWorkbook(r io.Reader) (*TableModel, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSchemaBadTable, err, "open workbook stream")
	}
	defer f.Close()
	return loadWorkbook(f)
}

// loadWorkbook parses all three sheets. Any failure aborts the load; no
// partial model is ever returned.
func loadWorkbook(f *excelize.File) (*TableModel, error) {
	particulars, err := loadParticulars(f)
	if err != nil {
		return nil, err
	}
	hydrostatic, err := loadDisplacementTable(f)
	if err != nil {
		return nil, err
	}
	crossCurves, err := loadKNCurves(f)
	if err != nil {
		return nil, err
	}
	return NewTableModel(particulars, hydrostatic, crossCurves), nil
}

// loadParticulars reads the parameter/value rows of the particulars sheet.
// Rows with an empty parameter or value are skipped, as is the header row.
func loadParticulars(f *excelize.File) (Particulars, error) {
	rows, err := sheetRows(f, SheetParticulars)
	if err != nil {
		return nil, err
	}

	p := Particulars{}
	for i, row := range rows {
		name := cell(row, 0)
		value := cell(row, 1)
		if i == 0 && strings.EqualFold(name, "Parameter") {
			continue
		}
		if name == "" || value == "" {
			continue
		}
		p[name] = value
	}
	return p, nil
}

// loadDisplacementTable reads the draft/displacement sheet into a validated
// HydrostaticTable.
func loadDisplacementTable(f *excelize.File) (*HydrostaticTable, error) {
	rows, err := sheetRows(f, SheetDisplacement)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeSchemaBadTable, "sheet %q is empty", SheetDisplacement)
	}

	header := rows[0]
	draftIdx := findColumn(header, columnDraft)
	dispIdx := findColumn(header, columnDisplacement)
	if draftIdx < 0 {
		return nil, errors.New(errors.ErrCodeSchemaMissingColumn,
			"sheet %q is missing column %q", SheetDisplacement, columnDraft)
	}
	if dispIdx < 0 {
		return nil, errors.New(errors.ErrCodeSchemaMissingColumn,
			"sheet %q is missing column %q", SheetDisplacement, columnDisplacement)
	}

	var drafts, displacements []float64
	for i, row := range rows[1:] {
		if rowEmpty(row) {
			continue
		}
		draft, err := numericCell(row, draftIdx, SheetDisplacement, i+2)
		if err != nil {
			return nil, err
		}
		disp, err := numericCell(row, dispIdx, SheetDisplacement, i+2)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, draft)
		displacements = append(displacements, disp)
	}
	return NewHydrostaticTable(drafts, displacements)
}

// loadKNCurves reads the KN sheet into a validated CrossCurveTable. Column
// labels are normalized to numeric angles here, once; the resulting table is
// indexed by angle and never re-parses a label.
func loadKNCurves(f *excelize.File) (*CrossCurveTable, error) {
	rows, err := sheetRows(f, SheetKNCurves)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeSchemaBadTable, "sheet %q is empty", SheetKNCurves)
	}

	header := rows[0]
	dispIdx := -1
	var angleIdx []int
	var angles []float64
	for i, label := range header {
		label = strings.TrimSpace(label)
		switch {
		case strings.Contains(label, displacementColumnMarker):
			if dispIdx < 0 {
				dispIdx = i
			}
		case label == "":
			// ignore padding columns
		case IsAngleLabel(label):
			angle, err := ParseAngleLabel(label)
			if err != nil {
				return nil, err
			}
			angleIdx = append(angleIdx, i)
			angles = append(angles, angle)
		}
	}
	if dispIdx < 0 {
		return nil, errors.New(errors.ErrCodeSchemaMissingColumn,
			"sheet %q has no column containing %q", SheetKNCurves, displacementColumnMarker)
	}
	if len(angleIdx) == 0 {
		return nil, errors.New(errors.ErrCodeSchemaMissingColumn,
			"sheet %q has no heel angle columns", SheetKNCurves)
	}

	var displacements []float64
	columns := make([][]float64, len(angleIdx))
	for i, row := range rows[1:] {
		if rowEmpty(row) {
			continue
		}
		disp, err := numericCell(row, dispIdx, SheetKNCurves, i+2)
		if err != nil {
			return nil, err
		}
		displacements = append(displacements, disp)
		for c, idx := range angleIdx {
			kn, err := numericCell(row, idx, SheetKNCurves, i+2)
			if err != nil {
				return nil, err
			}
			columns[c] = append(columns[c], kn)
		}
	}
	return NewCrossCurveTable(displacements, angles, columns)
}

// =============================================================================
// Sheet helpers
// =============================================================================

// sheetRows fetches a sheet's rows, mapping a missing sheet to a schema error.
func sheetRows(f *excelize.File, sheet string) ([][]string, error) {
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		return nil, errors.New(errors.ErrCodeSchemaMissingSheet, "workbook has no sheet %q", sheet)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSchemaBadTable, err, "read sheet %q", sheet)
	}
	return rows, nil
}

// cell returns the trimmed cell at idx, tolerating the ragged rows excelize
// produces when trailing cells are empty.
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// numericCell parses the cell at idx as a float64, failing with a schema
// error naming the sheet and 1-based row.
func numericCell(row []string, idx int, sheet string, rowNum int) (float64, error) {
	s := cell(row, idx)
	if s == "" {
		return 0, errors.New(errors.ErrCodeSchemaBadValue,
			"sheet %q row %d: empty numeric cell", sheet, rowNum)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeSchemaBadValue,
			"sheet %q row %d: %q is not numeric", sheet, rowNum, s)
	}
	return v, nil
}

// findColumn returns the index of the header cell equal to name, or -1.
func findColumn(header []string, name string) int {
	for i, label := range header {
		if strings.TrimSpace(label) == name {
			return i
		}
	}
	return -1
}

// rowEmpty reports whether every cell in the row is blank.
func rowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
