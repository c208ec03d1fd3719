package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marinetools/loadicator/pkg/pipeline"
	"github.com/marinetools/loadicator/pkg/stability"
)

// calcOpts holds the command-line flags for the calc command.
type calcOpts struct {
	data    string  // ship data workbook path
	unit    string  // draft unit: meters or feet
	load    float64 // cargo load in kilograms
	angles  string  // comma-separated heel angles (empty = tabulated)
	formats string  // comma-separated output formats
	output  string  // output file or base path
	noCache bool    // disable the artifact cache
	refresh bool    // recompute even when cached
}

// calcCommand creates the calc command for computing GZ curves.
//
// The draft can be given as a positional argument; without it the command
// prompts interactively for the loading condition.
func (c *CLI) calcCommand() *cobra.Command {
	opts := calcOpts{unit: pipeline.DraftUnitMeters}

	cmd := &cobra.Command{
		Use:   "calc [draft]",
		Short: "Compute the GZ curve for a loading condition",
		Long: `Compute the GZ righting-arm curve and stability summary for a vessel at a
given draft and cargo load.

Examples:
  loadicator calc 5.5                        # draft in meters, no cargo
  loadicator calc 18 --unit feet --load 2e6  # feet, 2000 t of cargo
  loadicator calc 5.5 -f png,svg,json -o out # all artifact formats
  loadicator calc                            # interactive prompt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var draft float64
			if len(args) == 1 {
				v, err := strconv.ParseFloat(args[0], 64)
				if err != nil {
					return fmt.Errorf("invalid draft %q: %w", args[0], err)
				}
				draft = v
			} else {
				cond, ok, err := promptCondition(opts.unit)
				if err != nil {
					return err
				}
				if !ok {
					return nil // user aborted
				}
				draft = cond.draft
				opts.load = cond.load
			}
			return c.runCalc(cmd.Context(), draft, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.data, "data", "d", "", "ship data workbook (default from config)")
	cmd.Flags().StringVarP(&opts.unit, "unit", "u", opts.unit, "draft unit: meters or feet")
	cmd.Flags().Float64VarP(&opts.load, "load", "l", 0, "cargo load in kilograms")
	cmd.Flags().StringVar(&opts.angles, "angles", "", "heel angles in degrees (comma-separated, default from workbook)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): png (default), svg, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute artifacts even when cached")

	return cmd
}

// runCalc executes the pipeline and presents the results.
func (c *CLI) runCalc(ctx context.Context, draft float64, opts *calcOpts) error {
	workbook := opts.data
	if workbook == "" {
		workbook = c.Config.Data
	}
	if workbook == "" {
		printError("No ship data workbook configured")
		printNextStep("Generate sample data", appName+" sample")
		return fmt.Errorf("no workbook: pass --data or set data in %s", configFileName)
	}

	angles, err := parseAngles(opts.angles)
	if err != nil {
		return fmt.Errorf("invalid angles: %w", err)
	}

	runner := c.newRunner(opts.noCache)
	defer runner.Close()

	pipeOpts := pipeline.Options{
		Workbook:  workbook,
		Draft:     draft,
		DraftUnit: opts.unit,
		LoadKg:    opts.load,
		Angles:    angles,
		Formats:   parseFormats(opts.formats),
		Refresh:   opts.refresh,
		KG: stability.KGConfig{
			BaseFactor:     c.Config.KG.BaseFactor,
			LoadAdjustment: c.Config.KG.LoadAdjustment,
		},
		Logger: c.Logger,
	}
	if err := pipeOpts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Computing stability curve...")
	spinner.Start()
	result, err := runner.Execute(ctx, pipeOpts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return ctx.Err()
		}
		spinner.StopWithError(err.Error())
		return err
	}
	spinner.Stop()

	printStability(result)

	return writeArtifacts(result, pipeOpts.Formats, opts.output)
}

// printStability prints the summary block for a computed curve.
func printStability(result *pipeline.Result) {
	stab := result.Stability
	sum := stab.Summary

	printNewline()
	fmt.Println(StyleTitle.Render("GZ Stability Curve") + StyleDim.Render(" — ") + StyleHighlight.Render(stab.ShipName))
	printNewline()

	printKeyValue("Draft", fmt.Sprintf("%.2f m", stab.Condition.DraftM))
	printKeyValue("Cargo load", fmt.Sprintf("%.0f kg", stab.Condition.LoadKg))
	printKeyValue("Displacement", fmt.Sprintf("%.1f t", stab.Displacement))
	printKeyValue("Estimated KG", fmt.Sprintf("%.3f m", stab.KG))
	printKeyValue("Max GZ", fmt.Sprintf("%.3f m at %.1f°", sum.MaxGZ, sum.MaxGZAngle))
	if sum.VanishingAngle != nil {
		printKeyValue("Vanishing angle", fmt.Sprintf("%.1f°", *sum.VanishingAngle))
	} else {
		printKeyValue("Vanishing angle", "none within range")
	}
	printKeyValue("Area to 30°", fmt.Sprintf("%.3f m·deg", sum.AreaUnder30Deg))

	curve := stab.Curve
	printStats(len(curve), curve[0].HeelAngle, curve[len(curve)-1].HeelAngle, result.CacheInfo.AllHits())
	printNewline()
}

// writeArtifacts writes the rendered artifacts to disk. A single format with
// an explicit --output goes to exactly that path; otherwise each format goes
// to <base>.<format>.
func writeArtifacts(result *pipeline.Result, formats []string, output string) error {
	base := output
	if base == "" {
		base = "gz_curve"
	}

	for _, format := range formats {
		path := base + "." + format
		if output != "" && len(formats) == 1 && filepath.Ext(output) != "" {
			path = output
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}
