// Package render turns computed stability results into output artifacts.
//
// Two sinks are provided: [Chart], which draws the GZ curve as a PNG or SVG
// image, and [Report], which serializes the full result as JSON for
// downstream consumers. Sinks are configured with functional options and
// return raw bytes; callers decide where they go.
package render

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/marinetools/loadicator/pkg/errors"
	"github.com/marinetools/loadicator/pkg/stability"
)

// Chart image formats.
const (
	ChartPNG = "png"
	ChartSVG = "svg"
)

// Default chart dimensions, chosen to match the 12x8 inch report figures the
// tool has always produced.
const (
	defaultChartWidth  = 12 * vg.Inch
	defaultChartHeight = 8 * vg.Inch
)

var (
	curveColor  = color.RGBA{R: 31, G: 119, B: 180, A: 255} // blue
	markerColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}  // red
)

// ChartOption configures chart rendering via [Chart].
type ChartOption func(*chartRenderer)

type chartRenderer struct {
	format        string
	width, height vg.Length
}

// WithChartFormat selects the image format: [ChartPNG] (default) or [ChartSVG].
func WithChartFormat(format string) ChartOption {
	return func(r *chartRenderer) { r.format = format }
}

// WithChartSize overrides the chart dimensions in inches.
func WithChartSize(widthIn, heightIn float64) ChartOption {
	return func(r *chartRenderer) {
		r.width = vg.Length(widthIn) * vg.Inch
		r.height = vg.Length(heightIn) * vg.Inch
	}
}

// Chart renders the GZ curve of a stability result: the curve with point
// markers, a dashed zero line, and a highlighted maximum-GZ marker, titled
// with the ship name, draft, and displacement.
func Chart(res *stability.Result, opts ...ChartOption) ([]byte, error) {
	r := &chartRenderer{
		format: ChartPNG,
		width:  defaultChartWidth,
		height: defaultChartHeight,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.format != ChartPNG && r.format != ChartSVG {
		return nil, errors.New(errors.ErrCodeInternal, "unsupported chart format %q", r.format)
	}
	if len(res.Curve) == 0 {
		return nil, errors.New(errors.ErrCodeInternal, "cannot chart an empty curve")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("GZ Stability Curve - %s\nDraft: %.2fm | Displacement: %.2f tonnes",
		res.ShipName, res.Condition.DraftM, res.Displacement)
	p.X.Label.Text = "Heel Angle (degrees)"
	p.Y.Label.Text = "GZ - Righting Lever (meters)"
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(res.Curve))
	for i, pt := range res.Curve {
		xys[i].X = pt.HeelAngle
		xys[i].Y = pt.GZ
	}

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build curve plotters")
	}
	line.Color = curveColor
	line.Width = vg.Points(2)
	points.Shape = draw.CircleGlyph{}
	points.Color = curveColor
	points.Radius = vg.Points(3)
	p.Add(line, points)
	p.Legend.Add("GZ Curve", line)

	if zero, err := zeroLine(res.Curve); err == nil {
		p.Add(zero)
	}

	if marker, label, err := maxMarker(res); err == nil {
		p.Add(marker)
		p.Legend.Add(label, marker)
	}

	p.Legend.Top = true

	wt, err := p.WriterTo(r.width, r.height, r.format)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s chart", r.format)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write %s chart", r.format)
	}
	return buf.Bytes(), nil
}

// zeroLine builds the dashed GZ=0 reference line spanning the curve's angles.
func zeroLine(curve stability.GZCurve) (*plotter.Line, error) {
	zero, err := plotter.NewLine(plotter.XYs{
		{X: curve[0].HeelAngle, Y: 0},
		{X: curve[len(curve)-1].HeelAngle, Y: 0},
	})
	if err != nil {
		return nil, err
	}
	zero.Color = markerColor
	zero.Width = vg.Points(1)
	zero.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	return zero, nil
}

// maxMarker builds the highlighted maximum-GZ point and its legend label.
func maxMarker(res *stability.Result) (*plotter.Scatter, string, error) {
	marker, err := plotter.NewScatter(plotter.XYs{
		{X: res.Summary.MaxGZAngle, Y: res.Summary.MaxGZ},
	})
	if err != nil {
		return nil, "", err
	}
	marker.Shape = draw.CircleGlyph{}
	marker.Color = markerColor
	marker.Radius = vg.Points(5)
	label := fmt.Sprintf("Max GZ: %.3fm at %.1f°", res.Summary.MaxGZ, res.Summary.MaxGZAngle)
	return marker, label, nil
}
