package hydro

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/marinetools/loadicator/pkg/errors"
)

// Sample dataset for the MV Del Monte, a 120 m cargo vessel. The
// displacement table is real hydrostatic data; the KN grid is simulated with
// KN = 0.015 · disp^0.4 · sin(heel), which rises with both displacement and
// angle the way real cross curves do. Useful for demos and as a loader
// fixture.

var sampleParticulars = [][]any{
	{"Parameter", "Value", "Unit"},
	{"Ship Name", "MV Del Monte", ""},
	{"Length Overall (LOA)", "120.0", "m"},
	{"Length Between Perpendiculars (LBP)", "115.0", "m"},
	{"Breadth", "20.0", "m"},
	{"Depth", "10.0", "m"},
	{"Design Draft", "6.0", "m"},
	{"Lightship Weight", "2500", "tonnes"},
	{"Deadweight", "5000", "tonnes"},
}

var (
	sampleDrafts = []float64{
		2.0, 2.5, 3.0, 3.5, 4.0, 4.5, 5.0, 5.5, 6.0, 6.5, 7.0, 7.5, 8.0,
		8.5, 9.0, 9.5, 10.0, 10.5, 11.0, 11.5, 12.0, 12.5, 13.0, 13.5, 14.0,
	}
	sampleDisplacements = []float64{
		10497, 13135, 16107, 19413, 23052, 27025, 31331, 35971, 40944,
		46251, 51891, 57865, 64172, 70813, 77787, 85094, 92735, 100710,
		109018, 117659, 126634, 135943, 145585, 155560, 165869,
	}
)

const (
	sampleKNPoints = 50    // displacement points in the simulated KN grid
	sampleKNFactor = 0.015 // base factor of the simulated KN formula
)

// sampleHeelAngles are the tabulated angles of the sample KN grid, degrees.
var sampleHeelAngles = []float64{10, 15, 20, 25, 30, 35, 40, 45, 50, 55, 60}

// SampleWorkbook builds the MV Del Monte ship data workbook in memory.
// The KN sheet uses the prefixed "KN at {n}°" label convention.
func SampleWorkbook() (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetParticulars); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "rename particulars sheet")
	}
	for i, row := range sampleParticulars {
		if err := setRow(f, SheetParticulars, i+1, row); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(SheetDisplacement); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create displacement sheet")
	}
	if err := setRow(f, SheetDisplacement, 1, []any{columnDraft, columnDisplacement}); err != nil {
		return nil, err
	}
	for i := range sampleDrafts {
		if err := setRow(f, SheetDisplacement, i+2, []any{sampleDrafts[i], sampleDisplacements[i]}); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(SheetKNCurves); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create KN sheet")
	}
	header := []any{columnDisplacement}
	for _, angle := range sampleHeelAngles {
		header = append(header, fmt.Sprintf("KN at %g°", angle))
	}
	if err := setRow(f, SheetKNCurves, 1, header); err != nil {
		return nil, err
	}

	minDisp := sampleDisplacements[0]
	maxDisp := sampleDisplacements[len(sampleDisplacements)-1]
	for i := 0; i < sampleKNPoints; i++ {
		disp := minDisp + (maxDisp-minDisp)*float64(i)/float64(sampleKNPoints-1)
		row := []any{disp}
		for _, angle := range sampleHeelAngles {
			kn := sampleKNFactor * math.Pow(disp, 0.4) * math.Sin(angle*math.Pi/180)
			row = append(row, kn)
		}
		if err := setRow(f, SheetKNCurves, i+2, row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// WriteSampleWorkbook writes the sample workbook to an xlsx file at path.
func WriteSampleWorkbook(path string) error {
	f, err := SampleWorkbook()
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "save sample workbook %s", path)
	}
	return nil
}

// WriteSampleWorkbookTo streams the sample workbook as xlsx bytes.
func WriteSampleWorkbookTo(w io.Writer) error {
	f, err := SampleWorkbook()
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write sample workbook")
	}
	return nil
}

// setRow writes one sheet row starting at column A.
func setRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "cell name for row %d", rowNum)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write sheet %q row %d", sheet, rowNum)
	}
	return nil
}
