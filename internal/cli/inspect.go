package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marinetools/loadicator/pkg/hydro"
)

// inspectCommand creates the inspect command for examining a workbook.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show the tables inside a ship data workbook",
		Long: `Load and validate a ship data workbook, then print the vessel particulars
and the ranges covered by the hydrostatic and KN cross-curve tables. Without
an argument the configured data path is inspected.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.Config.Data
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no workbook: pass a file or set data in %s", configFileName)
			}
			return runInspect(cmd.Context(), path)
		},
	}
}

func runInspect(ctx context.Context, path string) error {
	prog := newProgress(loggerFromContext(ctx))
	model, err := hydro.LoadWorkbookFile(path)
	if err != nil {
		printError("Workbook failed validation")
		printDetail("%v", err)
		return err
	}
	prog.done(fmt.Sprintf("Loaded %s", path))

	printSuccess("Workbook is valid")
	printNewline()

	fmt.Println(StyleTitle.Render("Ship Particulars"))
	particulars := model.Particulars()
	for _, name := range particulars.Names() {
		value, _ := particulars.Get(name)
		printKeyValue(name, value)
	}
	printNewline()

	fmt.Println(StyleTitle.Render("Table Coverage"))
	minDraft, maxDraft := model.DraftRange()
	printKeyValue("Draft", fmt.Sprintf("%.2f – %.2f m", minDraft, maxDraft))

	minDisp, maxDisp := model.DisplacementRange()
	printKeyValue("Displacement", fmt.Sprintf("%.0f – %.0f t", minDisp, maxDisp))

	angles := model.HeelAngles()
	printKeyValue("Heel angles", formatAngles(angles))
	printNewline()

	printNextStep("Compute a curve", fmt.Sprintf("%s calc %.1f --data %s", appName, (minDraft+maxDraft)/2, path))
	return nil
}

// formatAngles renders the tabulated heel angles as a compact list.
func formatAngles(angles []float64) string {
	parts := make([]string, len(angles))
	for i, a := range angles {
		parts[i] = fmt.Sprintf("%g°", a)
	}
	return strings.Join(parts, ", ")
}
