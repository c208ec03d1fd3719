package render

import (
	"encoding/json"

	"github.com/marinetools/loadicator/pkg/errors"
	"github.com/marinetools/loadicator/pkg/stability"
)

// ReportOption configures JSON report rendering via [Report].
type ReportOption func(*reportRenderer)

type reportRenderer struct {
	indent bool
}

// WithReportIndent produces human-readable indented JSON. The default is
// compact output for machine consumers.
func WithReportIndent() ReportOption {
	return func(r *reportRenderer) { r.indent = true }
}

// Report serializes a stability result - condition, displacement, KG, the
// full curve, and the summary - as JSON. The output is sufficient for a
// downstream renderer to produce a chart and tabular report without further
// computation.
func Report(res *stability.Result, opts ...ReportOption) ([]byte, error) {
	r := &reportRenderer{}
	for _, opt := range opts {
		opt(r)
	}

	var (
		data []byte
		err  error
	)
	if r.indent {
		data, err = json.MarshalIndent(res, "", "  ")
	} else {
		data, err = json.Marshal(res)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode report")
	}
	return data, nil
}
