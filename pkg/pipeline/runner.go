package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/marinetools/loadicator/pkg/cache"
	"github.com/marinetools/loadicator/pkg/hydro"
	"github.com/marinetools/loadicator/pkg/observability"
	"github.com/marinetools/loadicator/pkg/render"
	"github.com/marinetools/loadicator/pkg/stability"
)

// Runner encapsulates pipeline execution with artifact caching. It is
// stateless except for the cache and logger; multiple goroutines can safely
// share one Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil logger
// uses the default.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Close releases the runner's cache resources.
func (r *Runner) Close() error { return r.Cache.Close() }

// Execute runs the complete load → compute → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)

	observability.Pipeline().OnLoadStart(ctx, opts.Workbook)
	loadStart := time.Now()
	model, workbookHash, err := r.Load(ctx, opts)
	loadTime := time.Since(loadStart)
	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, opts.Workbook, "", loadTime, err)
		return nil, fmt.Errorf("load: %w", err)
	}
	observability.Pipeline().OnLoadComplete(ctx, opts.Workbook, model.ShipName(), loadTime, nil)

	logger.Info("loaded ship data",
		"ship", model.ShipName(),
		"angles", len(model.HeelAngles()),
		"duration", loadTime)

	result, err := r.Compute(ctx, model, workbookHash, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = loadTime
	return result, nil
}

// Load parses and validates the workbook into a table model and returns its
// content hash.
func (r *Runner) Load(ctx context.Context, opts Options) (*hydro.TableModel, string, error) {
	data := opts.WorkbookData
	if len(data) == 0 {
		var err error
		data, err = os.ReadFile(opts.Workbook)
		if err != nil {
			return nil, "", fmt.Errorf("read workbook %s: %w", opts.Workbook, err)
		}
	}
	model, err := hydro.LoadWorkbook(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	return model, cache.Hash(data), nil
}

// Compute evaluates the loading condition against an already-loaded model
// and renders the requested artifacts. The server uses this directly with
// its long-lived model; workbookHash scopes the artifact cache to the
// model's source data.
func (r *Runner) Compute(ctx context.Context, model *hydro.TableModel, workbookHash string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)

	observability.Pipeline().OnComputeStart(ctx, opts.DraftMeters(), opts.LoadKg)
	computeStart := time.Now()
	engine := stability.NewEngine(model, opts.KG)
	stab, err := engine.Evaluate(opts.Condition(), opts.Angles)
	computeTime := time.Since(computeStart)
	if err != nil {
		observability.Pipeline().OnComputeComplete(ctx, 0, computeTime, err)
		return nil, fmt.Errorf("compute: %w", err)
	}
	observability.Pipeline().OnComputeComplete(ctx, len(stab.Curve), computeTime, nil)

	logger.Info("computed GZ curve",
		"points", len(stab.Curve),
		"displacement", stab.Displacement,
		"kg", stab.KG,
		"duration", computeTime)

	result := &Result{
		Model:        model,
		WorkbookHash: workbookHash,
		Stability:    stab,
		Artifacts:    make(map[string][]byte, len(opts.Formats)),
		CacheInfo:    CacheInfo{Hits: make(map[string]bool, len(opts.Formats))},
	}
	result.Stats.ComputeTime = computeTime
	result.Stats.CurvePoints = len(stab.Curve)

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	renderStart := time.Now()
	for _, format := range opts.Formats {
		artifact, hit, err := r.renderArtifact(ctx, stab, workbookHash, format, opts)
		if err != nil {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		result.Artifacts[format] = artifact
		result.CacheInfo.Hits[format] = hit
	}
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, nil)

	logger.Info("rendered artifacts",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// renderArtifact produces one artifact, consulting the cache first. Cache
// failures are not fatal; the artifact is recomputed.
func (r *Runner) renderArtifact(ctx context.Context, stab *stability.Result, workbookHash, format string, opts Options) ([]byte, bool, error) {
	key := cache.ArtifactKey(cache.ArtifactKeyOpts{
		WorkbookHash: workbookHash,
		DraftM:       opts.DraftMeters(),
		LoadKg:       opts.LoadKg,
		Angles:       opts.Angles,
		Format:       format,
	})

	if !opts.Refresh && workbookHash != "" {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, format)
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, format)
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatPNG:
		data, err = render.Chart(stab, render.WithChartFormat(render.ChartPNG))
	case FormatSVG:
		data, err = render.Chart(stab, render.WithChartFormat(render.ChartSVG))
	case FormatJSON:
		data, err = render.Report(stab, render.WithReportIndent())
	default:
		return nil, false, fmt.Errorf("invalid format: %q", format)
	}
	if err != nil {
		return nil, false, err
	}

	if workbookHash != "" {
		if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
			r.Logger.Debug("artifact cache write failed", "format", format, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, format, len(data))
		}
	}
	return data, false, nil
}

// logger returns the per-run logger, falling back to the runner's.
func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
