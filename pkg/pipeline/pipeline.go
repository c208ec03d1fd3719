// Package pipeline provides the core computation pipeline for loadicator.
//
// This package implements the complete load → compute → render pipeline that
// is shared by the CLI and the HTTP server. Centralizing it keeps behavior
// identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: parse and validate the ship data workbook into a table model
//  2. Compute: evaluate the GZ curve and summary for a loading condition
//  3. Render: produce artifacts (PNG/SVG chart, JSON report)
//
// Each stage can be run independently or as part of the complete pipeline;
// the server loads a model once and computes against it per request.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    Workbook: "data/ship.xlsx",
//	    Draft:    5.5,
//	    LoadKg:   500000,
//	    Formats:  []string{pipeline.FormatPNG, pipeline.FormatJSON},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts[pipeline.FormatPNG]
package pipeline

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/marinetools/loadicator/pkg/hydro"
	"github.com/marinetools/loadicator/pkg/stability"
)

// Format constants for output artifacts.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported artifact formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatSVG:  true,
	FormatJSON: true,
}

// Draft input units.
const (
	DraftUnitMeters = "meters"
	DraftUnitFeet   = "feet"
)

// ValidDraftUnits is the set of accepted draft units.
var ValidDraftUnits = map[string]bool{
	DraftUnitMeters: true,
	DraftUnitFeet:   true,
}

// Options contains all configuration for one pipeline run. The struct
// supports JSON serialization for HTTP requests.
type Options struct {
	// Load options. Exactly one of Workbook (a path) or WorkbookData (raw
	// xlsx bytes, e.g. an upload) must be set.
	Workbook     string `json:"workbook,omitempty"`
	WorkbookData []byte `json:"-"`

	// Compute options
	Draft     float64   `json:"draft"`
	DraftUnit string    `json:"draft_unit,omitempty"` // meters (default) or feet
	LoadKg    float64   `json:"load_kg"`
	Angles    []float64 `json:"angles,omitempty"` // nil = the model's tabulated angles

	// Render options
	Formats []string `json:"formats,omitempty"`
	Refresh bool     `json:"refresh,omitempty"` // bypass the artifact cache

	// Runtime options (not serialized)
	KG     stability.KGConfig `json:"-"`
	Logger *log.Logger        `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Model is the loaded table model.
	Model *hydro.TableModel

	// WorkbookHash is the content hash of the workbook, used in cache keys.
	WorkbookHash string

	// Stability is the computed curve and summary.
	Stability *stability.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which artifacts came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	CurvePoints int
	LoadTime    time.Duration
	ComputeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks artifact cache hits by format.
type CacheInfo struct {
	Hits map[string]bool
}

// AllHits reports whether every requested artifact came from cache.
func (ci CacheInfo) AllHits() bool {
	if len(ci.Hits) == 0 {
		return false
	}
	for _, hit := range ci.Hits {
		if !hit {
			return false
		}
	}
	return true
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: png, svg, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults. The
// method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Workbook == "" && len(o.WorkbookData) == 0 {
		return fmt.Errorf("workbook is required")
	}
	if o.DraftUnit == "" {
		o.DraftUnit = DraftUnitMeters
	}
	if !ValidDraftUnits[o.DraftUnit] {
		return fmt.Errorf("invalid draft_unit: %q (must be meters or feet)", o.DraftUnit)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// DraftMeters returns the draft converted to meters.
func (o *Options) DraftMeters() float64 {
	if o.DraftUnit == DraftUnitFeet {
		return stability.FeetToMeters(o.Draft)
	}
	return o.Draft
}

// Condition returns the loading condition for the run.
func (o *Options) Condition() stability.LoadingCondition {
	return stability.LoadingCondition{DraftM: o.DraftMeters(), LoadKg: o.LoadKg}
}
