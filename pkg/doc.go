// Package pkg provides the core libraries for loadicator stability estimation.
//
// # Overview
//
// Loadicator estimates a vessel's GZ righting-arm curve from its hydrostatic
// tables and KN cross curves. The pkg directory is organized into these areas:
//
//  1. [hydro] - Ship data model (workbook loading, hydrostatic and KN tables)
//  2. [interp] - Linear and cross-curve interpolation primitives
//  3. [stability] - The GZ engine (KG estimation, curve building, summary)
//  4. [render] - Chart and report sinks (PNG, SVG, JSON)
//  5. [pipeline] - Orchestration (load → compute → render) with caching
//  6. [cache] - Artifact cache backends (file, memory, redis)
//  7. [errors] - The shared error taxonomy
//  8. [observability] - Optional instrumentation hooks
//
// # Architecture
//
// The typical data flow through loadicator:
//
//	Ship Data Workbook (.xlsx)
//	         ↓
//	    [hydro] package (parse + validate tables)
//	         ↓
//	    [stability] package (displacement, KG, GZ = KN − KG·sin φ)
//	         ↓
//	    [render] package (chart + report)
//	         ↓
//	    PNG/SVG/JSON output
//
// # Quick Start
//
// Compute a curve and render a chart:
//
//	import (
//	    "context"
//	    "github.com/marinetools/loadicator/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Workbook: "ship_data.xlsx",
//	    Draft:    5.5,
//	    LoadKg:   500000,
//	    Formats:  []string{pipeline.FormatPNG},
//	})
package pkg
